package formcheck_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formcheck "github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		value   string
		related map[string]string
		want    validation.Result
	}{
		{name: "valid email", field: "email", value: "a@b.co", want: validation.Result{Valid: true}},
		{name: "mismatched confirmation", field: "confirmPassword", value: "Secret12", related: map[string]string{"password": "Secret13"}, want: validation.Result{Valid: false, Message: "Passwords do not match", Code: validation.CodePasswordMatch}},
		{name: "unknown field", field: "nickname", value: "", want: validation.Result{Valid: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formcheck.Validate(tc.field, tc.value, tc.related)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := formcheck.GenerateHTML(context.Background(), "login", map[string]string{"email": "nope"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`name="email"`, "input-error", "Please enter a valid email address"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.ReadFile(formcheck.EmbeddedTemplates(), "templates/form.tpl"); err != nil {
		t.Fatalf("template not embedded: %v", err)
	}
	data, err := fs.ReadFile(formcheck.StylesheetFS(), "formcheck.css")
	if err != nil {
		t.Fatalf("stylesheet not embedded: %v", err)
	}
	if !strings.Contains(string(data), ".input-error") {
		t.Fatalf("stylesheet missing feedback classes")
	}
}
