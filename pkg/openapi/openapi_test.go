package openapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/openapi"
)

const signupDocument = `
openapi: 3.0.3
info:
  title: Accounts
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: register
      summary: Create your account
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Register'
      responses:
        '201':
          description: created
  /health:
    get:
      operationId: health
      responses:
        '200':
          description: ok
components:
  schemas:
    Register:
      type: object
      x-formcheck-order: [name, email, password, confirmPassword]
      required: [email, password]
      properties:
        newsletter:
          type: boolean
          default: false
        address:
          type: object
          properties:
            line1:
              type: string
        mobile:
          type: string
          pattern: '^\+?[0-9 ]+$'
          x-formcheck-kind: phone
          x-formcheck-metadata:
            labelKey: fields.phone.label
        confirmPassword:
          type: string
        password:
          type: string
          format: password
          minLength: 8
        email:
          type: string
          format: email
          example: ada@example.com
        name:
          type: string
          title: Full name
          maxLength: 80
`

func wantRegisterFields() []model.Field {
	return []model.Field{
		{Name: "name", Kind: model.FieldKindName, Label: "Full name", MaxLength: 80},
		{Name: "email", Kind: model.FieldKindEmail, Required: true, Placeholder: "ada@example.com"},
		{Name: "password", Kind: model.FieldKindPassword, Required: true, MinLength: 8},
		{Name: "confirmPassword", Kind: model.FieldKindConfirmPassword},
		{
			Name:     "mobile",
			Kind:     model.FieldKindPhone,
			Pattern:  `^\+?[0-9 ]+$`,
			Metadata: map[string]string{"labelKey": "fields.phone.label"},
		},
		{Name: "newsletter", Kind: model.FieldKindText, Default: "false"},
	}
}

func TestCatalog_Form(t *testing.T) {
	catalog, err := openapi.NewImporter().ParseBytes(context.Background(), []byte(signupDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"health", "register"}, catalog.OperationIDs()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	form, err := catalog.Form("register")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if diff := cmp.Diff(wantRegisterFields(), form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if form.Title != "Create your account" {
		t.Fatalf("title = %q", form.Title)
	}
	wantMeta := map[string]string{
		"operationId": "register",
		"method":      "POST",
		"path":        "/signup",
		"mediaType":   "application/json",
	}
	if diff := cmp.Diff(wantMeta, form.Metadata); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_Errors(t *testing.T) {
	catalog, err := openapi.NewImporter().ParseBytes(context.Background(), []byte(signupDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := catalog.Form("health"); !errors.Is(err, openapi.ErrNoFormBody) {
		t.Fatalf("expected ErrNoFormBody, got %v", err)
	}
	if _, err := catalog.Form("missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}

	forms, err := catalog.Forms()
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if len(forms) != 1 || forms[0].ID != "register" {
		t.Fatalf("forms = %+v", forms)
	}
}

func TestImporter_Decorators(t *testing.T) {
	importer := openapi.NewImporter(openapi.WithDecorators(model.LabelDecorator(nil)))
	catalog, err := importer.ParseBytes(context.Background(), []byte(signupDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := catalog.Form("register")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Fields[0].Label != "Full name" || form.Fields[3].Label != "Confirm Password" {
		t.Fatalf("labels = %q, %q", form.Fields[0].Label, form.Fields[3].Label)
	}
}

func TestImporter_LoadSources(t *testing.T) {
	ctx := context.Background()

	files := fstest.MapFS{"specs/accounts.yaml": &fstest.MapFile{Data: []byte(signupDocument)}}
	catalog, err := openapi.NewImporter(openapi.WithFileSystem(files)).Load(ctx, openapi.SourceFromFS("specs/accounts.yaml"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, ok := catalog.Operation("register"); !ok {
		t.Fatalf("register operation missing")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(signupDocument))
	}))
	defer server.Close()

	src, err := openapi.SourceFromURL(server.URL)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := openapi.NewImporter().Load(ctx, src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}
	catalog, err = openapi.NewImporter(openapi.WithHTTPFallback(0)).Load(ctx, src)
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if catalog.Source().Location != server.URL {
		t.Fatalf("source = %+v", catalog.Source())
	}
}

func TestSourceFromURL_Invalid(t *testing.T) {
	if _, err := openapi.SourceFromURL("ftp://example.com/spec.yaml"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestImporter_RejectsDocumentsWithoutPaths(t *testing.T) {
	doc := "openapi: 3.0.3\ninfo:\n  title: Empty\n  version: 1.0.0\npaths: {}\n"
	if _, err := openapi.NewImporter().ParseBytes(context.Background(), []byte(doc)); err == nil {
		t.Fatalf("expected error for empty paths")
	}
}
