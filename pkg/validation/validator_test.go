package validation_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

var ignoreArgs = cmpopts.IgnoreFields(validation.Result{}, "Args")

func TestValidate_BuiltinRules(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		value   string
		related validation.Values
		want    validation.Result
	}{
		{
			name:  "valid email",
			field: "email",
			value: "user@example.com",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "invalid email",
			field: "email",
			value: "not-an-email",
			want: validation.Result{
				Message: "Please enter a valid email address",
				Code:    validation.CodeEmail,
			},
		},
		{
			name:  "email is trimmed",
			field: "email",
			value: "  user@example.com ",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "short password",
			field: "password",
			value: "short1A",
			want: validation.Result{
				Message: "Password must be at least 8 characters long",
				Code:    validation.CodePasswordLength,
			},
		},
		{
			name:  "password without lowercase",
			field: "password",
			value: "LONGENOUGH1",
			want: validation.Result{
				Message: "Password must contain at least one lowercase letter",
				Code:    validation.CodePasswordLower,
			},
		},
		{
			name:  "password without uppercase",
			field: "password",
			value: "longenough1",
			want: validation.Result{
				Message: "Password must contain at least one uppercase letter",
				Code:    validation.CodePasswordUpper,
			},
		},
		{
			name:  "password without digit",
			field: "password",
			value: "LongEnough",
			want: validation.Result{
				Message: "Password must contain at least one number",
				Code:    validation.CodePasswordDigit,
			},
		},
		{
			name:  "strong password",
			field: "password",
			value: "LongEnough1",
			want:  validation.Result{Valid: true},
		},
		{
			name:    "confirm mismatch",
			field:   "confirmPassword",
			value:   "abc",
			related: validation.Values{"password": "xyz"},
			want: validation.Result{
				Message: "Passwords do not match",
				Code:    validation.CodePasswordMatch,
			},
		},
		{
			name:    "confirm match",
			field:   "confirmPassword",
			value:   "xyz",
			related: validation.Values{"password": "xyz"},
			want:    validation.Result{Valid: true},
		},
		{
			name:    "confirm against padded password",
			field:   "confirmPassword",
			value:   "xyz",
			related: validation.Values{"password": " xyz "},
			want: validation.Result{
				Message: "Passwords do not match",
				Code:    validation.CodePasswordMatch,
			},
		},
		{
			name:    "padded confirmation is trimmed",
			field:   "confirmPassword",
			value:   " xyz ",
			related: validation.Values{"password": "xyz"},
			want:    validation.Result{Valid: true},
		},
		{
			name:  "confirm without related field",
			field: "confirmPassword",
			value: "anything",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "single letter name",
			field: "name",
			value: "A",
			want: validation.Result{
				Message: "Name must be at least 2 characters long",
				Code:    validation.CodeNameLength,
			},
		},
		{
			name:  "name with digits",
			field: "name",
			value: "R2 D2",
			want: validation.Result{
				Message: "Name can only contain letters and spaces",
				Code:    validation.CodeNamePattern,
			},
		},
		{
			name:  "valid name",
			field: "name",
			value: "Ada Lovelace",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "valid phone",
			field: "phone",
			value: "+1 (555) 123-4567",
			want:  validation.Result{Valid: true},
		},
		{
			name:  "invalid phone",
			field: "phone",
			value: "call me",
			want: validation.Result{
				Message: "Please enter a valid phone number",
				Code:    validation.CodePhone,
			},
		},
		{
			name:  "unknown field passes",
			field: "nickname",
			value: "",
			want:  validation.Result{Valid: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validation.Validate(tc.field, tc.value, validation.Context{Related: tc.related})
			if diff := cmp.Diff(tc.want, got, ignoreArgs); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_IsPure(t *testing.T) {
	ctx := validation.Context{Related: validation.Values{"password": "xyz"}}
	first := validation.Validate("confirmPassword", "abc", ctx)
	second := validation.Validate("confirmPassword", "abc", ctx)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical results (-first +second):\n%s", diff)
	}
}

func TestValidateField_BaselineRunsFirst(t *testing.T) {
	v := validation.New()

	required := model.Field{Name: "email", Kind: model.FieldKindEmail, Required: true}
	got := v.ValidateField(required, "   ", validation.Context{})
	if got.Valid || got.Code != validation.CodeRequired {
		t.Fatalf("expected required failure, got %+v", got)
	}
	if got.Message != "This field is required" {
		t.Fatalf("unexpected message %q", got.Message)
	}

	bounded := model.Field{Name: "handle", MinLength: 3, MaxLength: 5}
	if got := v.ValidateField(bounded, "ab", validation.Context{}); got.Message != "Must be at least 3 characters" {
		t.Fatalf("expected min length message, got %q", got.Message)
	}
	if got := v.ValidateField(bounded, "abcdef", validation.Context{}); got.Message != "Must be at most 5 characters" {
		t.Fatalf("expected max length message, got %q", got.Message)
	}

	patterned := model.Field{Name: "code", Pattern: `[A-Z]{3}`}
	if got := v.ValidateField(patterned, "ABCD", validation.Context{}); got.Code != validation.CodePattern {
		t.Fatalf("expected anchored pattern failure, got %+v", got)
	}
	if got := v.ValidateField(patterned, "ABC", validation.Context{}); !got.Valid {
		t.Fatalf("expected pattern match, got %+v", got)
	}

	custom := model.Field{Name: "code", Pattern: `\d+`, PatternMessage: "Digits only"}
	if got := v.ValidateField(custom, "x1", validation.Context{}); got.Message != "Digits only" {
		t.Fatalf("expected custom pattern message, got %q", got.Message)
	}
}

func TestValidateField_EmptyOptionalStillRunsKindRule(t *testing.T) {
	field := model.Field{Name: "contact", Kind: model.FieldKindEmail}
	got := validation.Default().ValidateField(field, "", validation.Context{})
	if got.Valid || got.Code != validation.CodeEmail {
		t.Fatalf("expected email failure for empty value, got %+v", got)
	}
}

func TestValidateField_NameBeforeKind(t *testing.T) {
	v := validation.New(validation.WithRule("nickname", func(value string, _ validation.Lookup) validation.Result {
		if value == "root" {
			return validation.Invalid("nickname.reserved", "Nickname is reserved")
		}
		return validation.Pass()
	}))

	field := model.Field{Name: "nickname", Kind: model.FieldKindName}
	got := v.ValidateField(field, "root", validation.Context{})
	if got.Message != "Nickname is reserved" {
		t.Fatalf("expected name rule to win over kind rule, got %+v", got)
	}

	other := model.Field{Name: "alias", Kind: model.FieldKindName}
	if got := v.ValidateField(other, "x", validation.Context{}); got.Code != validation.CodeNameLength {
		t.Fatalf("expected kind rule for alias, got %+v", got)
	}
}

func TestValidateField_ConfirmUsesRelatedName(t *testing.T) {
	field := model.Field{Name: "repeatSecret", Kind: model.FieldKindConfirmPassword, Related: "secret"}
	ctx := validation.Context{Related: validation.Values{"secret": "Abcdefg1", "password": "other"}}

	if got := validation.Default().ValidateField(field, "Abcdefg1", ctx); !got.Valid {
		t.Fatalf("expected match against secret, got %+v", got)
	}
	if got := validation.Default().ValidateField(field, "other", ctx); got.Valid {
		t.Fatalf("expected mismatch against secret")
	}
}

func TestPatternRule(t *testing.T) {
	postal := regexp.MustCompile(`^\d{5}$`)
	v := validation.New(validation.WithRule("postalCode", validation.PatternRule(postal, "validation.postalCode", "Please enter a 5 digit postal code")))

	if got := v.Validate("postalCode", "1234", validation.Context{}); got.Message != "Please enter a 5 digit postal code" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got := v.Validate("postalCode", "12345", validation.Context{}); !got.Valid {
		t.Fatalf("expected valid postal code, got %+v", got)
	}
}

func TestWithoutBuiltins(t *testing.T) {
	v := validation.New(validation.WithoutBuiltins())
	if got := v.Validate("email", "nope", validation.Context{}); !got.Valid {
		t.Fatalf("expected pass-through without builtins, got %+v", got)
	}
}

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestValidate_Localized(t *testing.T) {
	v := validation.New(validation.WithTranslator(stubTranslator{
		validation.CodeEmail: "Introduce un correo válido",
	}))

	got := v.Validate("email", "nope", validation.Context{Locale: "es"})
	if got.Message != "Introduce un correo válido" {
		t.Fatalf("expected translated message, got %q", got.Message)
	}

	got = v.Validate("phone", "nope", validation.Context{Locale: "es"})
	if got.Message != "Please enter a valid phone number" {
		t.Fatalf("expected fallback message, got %q", got.Message)
	}

	got = v.Validate("email", "nope", validation.Context{})
	if got.Message != "Please enter a valid email address" {
		t.Fatalf("expected default message without locale, got %q", got.Message)
	}
}

func TestValidate_LookupFuncRelated(t *testing.T) {
	var asked []string
	lookup := validation.LookupFunc(func(name string) (string, bool) {
		asked = append(asked, name)
		return "Abcdefg1", name == "password"
	})

	got := validation.Validate("confirmPassword", "Abcdefg2", validation.Context{Related: lookup})
	if got.Code != validation.CodePasswordMatch {
		t.Fatalf("expected mismatch from lookup value, got %+v", got)
	}
	if diff := cmp.Diff([]string{"password"}, asked); diff != "" {
		t.Fatalf("lookups mismatch (-want +got):\n%s", diff)
	}

	if got := validation.Validate("confirmPassword", "Abcdefg2", validation.Context{}); !got.Valid {
		t.Fatalf("expected pass without a lookup, got %+v", got)
	}
}
