package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

var _ validation.Translator = (*i18n.Bundle)(nil)

func TestDefaultBundle_Locales(t *testing.T) {
	got := i18n.Default().Locales()
	if diff := cmp.Diff([]string{"en", "es"}, got); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultBundle_CoversBuiltinMessages(t *testing.T) {
	bundle := i18n.Default()
	for code, format := range validation.DefaultMessages() {
		for _, locale := range bundle.Locales() {
			if _, ok := bundle.Message(locale, code); !ok {
				t.Errorf("locale %s missing %s", locale, code)
			}
		}
		if got, _ := bundle.Message("en", code); got != format {
			t.Errorf("en catalog drifted for %s: %q != %q", code, got, format)
		}
	}
}

func TestBundle_Match(t *testing.T) {
	bundle := i18n.Default()
	cases := map[string]string{
		"":                   "en",
		"es":                 "es",
		"es-MX":              "es",
		"fr-FR":              "en",
		"fr;q=0.9, es;q=0.8": "es",
		"not a locale!!!":    "en",
	}
	for in, want := range cases {
		if got := bundle.Match(in); got != want {
			t.Errorf("Match(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBundle_TranslateFormatsArgs(t *testing.T) {
	bundle := i18n.Default()

	got, err := bundle.Translate("es", validation.CodePasswordLength, 8)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "La contraseña debe tener al menos 8 caracteres" {
		t.Fatalf("unexpected translation %q", got)
	}

	got, err = bundle.Translate("en", validation.CodePasswordMatch)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Passwords do not match" {
		t.Fatalf("unexpected translation %q", got)
	}

	if _, err := bundle.Translate("es", "unknown.key"); !errors.Is(err, i18n.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", err)
	}
}

func TestBundle_FallsBackToBaseLocale(t *testing.T) {
	bundle, err := i18n.NewBundle(
		i18n.Messages("en", map[string]string{"greeting": "Hello", "farewell": "Bye"}),
		i18n.Messages("de", map[string]string{"greeting": "Hallo"}),
	)
	if err != nil {
		t.Fatalf("new bundle: %v", err)
	}
	if got, _ := bundle.Translate("de", "greeting"); got != "Hallo" {
		t.Fatalf("expected german greeting, got %q", got)
	}
	if got, _ := bundle.Translate("de", "farewell"); got != "Bye" {
		t.Fatalf("expected base fallback, got %q", got)
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  hi: Hi\n")},
		"locales/pt.yaml": {Data: []byte("locale: pt\nmessages:\n  hi: Olá\n")},
	}
	bundle, err := i18n.LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := bundle.Translate("pt-BR", "hi"); got != "Olá" {
		t.Fatalf("expected portuguese, got %q", got)
	}

	if _, err := i18n.LoadFromFS(fstest.MapFS{
		"locales/pt.yaml": {Data: []byte("locale: pt\nmessages:\n  hi: Olá\n")},
	}); err == nil {
		t.Fatalf("expected error without base locale")
	}
}

func TestValidatorWithBundle(t *testing.T) {
	v := validation.New(validation.WithTranslator(i18n.Default()))
	got := v.Validate("confirmPassword", "a", validation.Context{
		Related: validation.Values{"password": "b"},
		Locale:  "es-ES",
	})
	if got.Message != "Las contraseñas no coinciden" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}
