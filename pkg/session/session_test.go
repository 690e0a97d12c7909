package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/session"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func registerForm() model.FormModel {
	return model.FormModel{
		ID: "register",
		Fields: []model.Field{
			{Name: "name", Kind: model.FieldKindName, Required: true},
			{Name: "email", Kind: model.FieldKindEmail, Required: true},
			{Name: "password", Kind: model.FieldKindPassword, Required: true},
			{Name: "confirmPassword", Kind: model.FieldKindConfirmPassword, Required: true},
		},
	}
}

func TestOnChange_UntouchedDoesNotValidate(t *testing.T) {
	s := session.New(registerForm())

	if _, computed := s.OnChange("email", "nope"); computed {
		t.Fatalf("expected no validation before the field is touched")
	}
	if _, ok := s.Result("email"); ok {
		t.Fatalf("expected no stored result")
	}
	if got := s.Status("email"); got != session.StatusUntouched {
		t.Fatalf("expected untouched, got %s", got)
	}
	if v, _ := s.Value("email"); v != "nope" {
		t.Fatalf("expected value to be recorded, got %q", v)
	}
}

func TestOnBlur_ThenChangeRevalidates(t *testing.T) {
	s := session.New(registerForm())
	s.OnChange("email", "nope")

	result := s.OnBlur("email")
	if result.Valid || result.Message != "Please enter a valid email address" {
		t.Fatalf("unexpected blur result %+v", result)
	}
	if !s.Touched("email") || s.Status("email") != session.StatusInvalid {
		t.Fatalf("expected touched invalid field")
	}

	result, computed := s.OnChange("email", "user@example.com")
	if !computed || !result.Valid {
		t.Fatalf("expected revalidation to pass, got %+v (computed=%v)", result, computed)
	}
	if got := s.Status("email"); got != session.StatusValid {
		t.Fatalf("expected valid, got %s", got)
	}
}

func TestOnBlur_ValidatesRegardlessOfTouched(t *testing.T) {
	s := session.New(registerForm())
	result := s.OnBlur("name")
	if result.Valid || result.Code != validation.CodeRequired {
		t.Fatalf("expected required failure on first blur, got %+v", result)
	}
}

func TestValidateAll(t *testing.T) {
	s := session.New(registerForm(), session.WithInitialValues(map[string]string{
		"name":            "Ada Lovelace",
		"email":           "ada@example.com",
		"password":        "LongEnough1",
		"confirmPassword": "Different1",
	}))

	if s.Valid() {
		t.Fatalf("expected undetermined form to be reported as not valid")
	}
	if s.ValidateAll() {
		t.Fatalf("expected validation to fail on mismatched confirmation")
	}

	want := map[string]string{"confirmPassword": "Passwords do not match"}
	if diff := cmp.Diff(want, s.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	for _, name := range s.Fields() {
		if !s.Touched(name) {
			t.Fatalf("expected %s to be touched", name)
		}
	}

	s.OnChange("confirmPassword", "LongEnough1")
	if !s.ValidateAll() {
		t.Fatalf("expected all fields valid, errors: %v", s.Errors())
	}
	if s.HasErrors() || len(s.Errors()) != 0 {
		t.Fatalf("expected errors to be cleared, got %v", s.Errors())
	}
	if !s.Valid() || !s.Determined() {
		t.Fatalf("expected determined valid form")
	}
}

func TestValidateAll_ConfirmationMustMatchSubmittedPassword(t *testing.T) {
	s := session.New(registerForm(), session.WithInitialValues(map[string]string{
		"name":            "Ada Lovelace",
		"email":           "ada@example.com",
		"password":        "LongEnough1 ",
		"confirmPassword": "LongEnough1",
	}))

	if s.ValidateAll() {
		t.Fatalf("expected padded password to differ from its confirmation")
	}
	want := map[string]string{"confirmPassword": "Passwords do not match"}
	if diff := cmp.Diff(want, s.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	initial := map[string]string{"email": "start@example.com"}
	form := model.FormModel{
		ID: "login",
		Fields: []model.Field{
			{Name: "email", Kind: model.FieldKindEmail},
			{Name: "password", Kind: model.FieldKindPassword},
		},
	}
	s := session.New(form, session.WithInitialValues(initial))

	s.OnChange("email", "bad")
	s.OnBlur("email")
	s.OnChange("nickname", "extra")
	s.ValidateAll()

	s.Reset()

	wantValues := map[string]string{"email": "start@example.com", "password": ""}
	if diff := cmp.Diff(wantValues, s.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]bool{}, s.TouchedFields()); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}
	if len(s.Results()) != 0 {
		t.Fatalf("expected results cleared, got %v", s.Results())
	}
	if diff := cmp.Diff([]string{"email", "password"}, s.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := s.Status("email"); got != session.StatusUntouched {
		t.Fatalf("expected untouched after reset, got %s", got)
	}
}

func TestDependentsAreNotCascadedByDefault(t *testing.T) {
	s := session.New(registerForm())
	s.OnChange("password", "LongEnough1")
	s.OnChange("confirmPassword", "LongEnough1")
	if got := s.OnBlur("confirmPassword"); !got.Valid {
		t.Fatalf("expected confirmation to match, got %+v", got)
	}

	s.OnChange("password", "Changed123")
	if got, _ := s.Result("confirmPassword"); !got.Valid {
		t.Fatalf("expected stale valid confirmation without cascade")
	}
	if diff := cmp.Diff([]string{"confirmPassword"}, s.Dependents("password")); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestWithCascade(t *testing.T) {
	s := session.New(registerForm(), session.WithCascade())
	s.OnChange("password", "LongEnough1")
	s.OnChange("confirmPassword", "LongEnough1")
	s.OnBlur("confirmPassword")

	s.OnChange("password", "Changed123")
	got, _ := s.Result("confirmPassword")
	if got.Valid || got.Message != "Passwords do not match" {
		t.Fatalf("expected cascaded mismatch, got %+v", got)
	}
	if diff := cmp.Diff([]string{"confirmPassword"}, s.LastChanged()); diff != "" {
		t.Fatalf("last changed mismatch (-want +got):\n%s", diff)
	}

	s.OnBlur("password")
	if diff := cmp.Diff([]string{"password", "confirmPassword"}, s.LastChanged()); diff != "" {
		t.Fatalf("last changed mismatch (-want +got):\n%s", diff)
	}
}

func TestWithClearOnChange(t *testing.T) {
	s := session.New(registerForm(), session.WithClearOnChange())
	s.OnBlur("email")
	if s.Status("email") != session.StatusInvalid {
		t.Fatalf("expected invalid email after blur")
	}

	if _, computed := s.OnChange("email", "ada@example.com"); computed {
		t.Fatalf("expected change to clear rather than validate")
	}
	if got := s.Status("email"); got != session.StatusPending {
		t.Fatalf("expected pending, got %s", got)
	}
	if got := s.OnBlur("email"); !got.Valid {
		t.Fatalf("expected valid on blur, got %+v", got)
	}
}

func TestHandle(t *testing.T) {
	s := session.New(registerForm())

	if _, computed := s.Handle(session.Event{Kind: session.EventBlur, Name: "email"}); !computed {
		t.Fatalf("expected blur to compute a result")
	}
	result, computed := s.Handle(session.Event{Kind: session.EventChange, Name: "email", Value: "a@b.co"})
	if !computed || !result.Valid {
		t.Fatalf("expected change on touched field to validate, got %+v", result)
	}

	before := s.Values()
	result, computed = s.Handle(session.Event{Kind: "paste", Name: "email", Value: "zzz"})
	if computed || !result.Valid {
		t.Fatalf("expected permissive pass for unknown event, got %+v", result)
	}
	if diff := cmp.Diff(before, s.Values()); diff != "" {
		t.Fatalf("unknown event must not change values (-want +got):\n%s", diff)
	}
}

func TestMissingRelatedFieldPasses(t *testing.T) {
	form := model.FormModel{
		ID:     "orphan",
		Fields: []model.Field{{Name: "confirmPassword", Kind: model.FieldKindConfirmPassword}},
	}
	s := session.New(form)
	s.OnChange("confirmPassword", "whatever")
	if got := s.OnBlur("confirmPassword"); !got.Valid {
		t.Fatalf("expected pass without related field, got %+v", got)
	}
}

func TestUnknownFieldsValidateByName(t *testing.T) {
	s := session.New(model.FormModel{ID: "adhoc"})
	s.OnChange("phone", "call me")
	if got := s.OnBlur("phone"); got.Code != validation.CodePhone {
		t.Fatalf("expected phone rule from field name, got %+v", got)
	}
	if diff := cmp.Diff([]string{"phone"}, s.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFieldErrors(t *testing.T) {
	s := session.New(registerForm())
	unmapped := s.ApplyFieldErrors(map[string][]string{
		"email":   {"Email already registered", "second"},
		"captcha": {"Captcha expired"},
	})

	if diff := cmp.Diff([]string{"Captcha expired"}, unmapped); diff != "" {
		t.Fatalf("unmapped mismatch (-want +got):\n%s", diff)
	}
	got, _ := s.Result("email")
	if got.Valid || got.Message != "Email already registered" || got.Code != validation.CodeServer {
		t.Fatalf("unexpected server result %+v", got)
	}
}

func TestWithLocale(t *testing.T) {
	v := validation.New(validation.WithTranslator(i18n.Default()))
	s := session.New(registerForm(), session.WithValidator(v), session.WithLocale("es"))
	if got := s.OnBlur("email"); got.Message != "Este campo es obligatorio" {
		t.Fatalf("expected spanish required message, got %q", got.Message)
	}
}
