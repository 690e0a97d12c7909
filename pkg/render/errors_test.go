package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/session"
)

func signupForm() model.FormModel {
	return model.FormModel{
		ID: "register",
		Fields: []model.Field{
			{Name: "name", Kind: model.FieldKindName},
			{Name: "email", Kind: model.FieldKindEmail},
			{Name: "password", Kind: model.FieldKindPassword},
			{Name: "confirmPassword", Kind: model.FieldKindConfirmPassword},
		},
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/email":         {"Email already registered", " Email already registered "},
		"data.name":           {"Name is taken"},
		"$.request.password":  {"Password was found in a breach"},
		"fields[0].name":      {"Name is taken"},
		"non_field_errors":    {"Too many attempts"},
		"request/body/coupon": {"Coupon expired"},
		"":                    {"Unscoped error", "  "},
		"confirmPassword":     {},
	}

	mapped := render.MapErrorPayload(signupForm(), payload)

	wantFields := map[string][]string{
		"email":    {"Email already registered"},
		"name":     {"Name is taken"},
		"password": {"Password was found in a breach"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped error", "Too many attempts", "Coupon expired"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(signupForm(), nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestApplyErrorPayload(t *testing.T) {
	s := session.New(signupForm())
	formErrors := render.ApplyErrorPayload(s, map[string][]string{
		"body.email": {"Email already registered"},
		"form":       {"Please try again"},
	})

	if diff := cmp.Diff([]string{"Please try again"}, formErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if got := s.Errors()["email"]; got != "Email already registered" {
		t.Fatalf("expected server error on email, got %q", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
