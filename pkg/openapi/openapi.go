package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	internalopenapi "github.com/goliatone/go-formcheck/internal/openapi"
	"github.com/goliatone/go-formcheck/internal/openapi/loader"
	"github.com/goliatone/go-formcheck/internal/openapi/parser"
	"github.com/goliatone/go-formcheck/pkg/model"
)

type (
	Source     = internalopenapi.Source
	SourceKind = internalopenapi.SourceKind
	Document   = internalopenapi.Document
	Operation  = internalopenapi.Operation
	Schema     = internalopenapi.Schema
)

var (
	// ErrOperationNotFound is returned when an operation id is unknown.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoFormBody is returned when an operation has no object request body.
	ErrNoFormBody = errors.New("openapi: operation has no object request body")
)

// SourceFromFile points at a document on disk.
func SourceFromFile(path string) Source {
	return Source{Kind: internalopenapi.SourceKindFile, Location: filepath.Clean(path)}
}

// SourceFromFS points at a document inside the importer's fs.FS.
func SourceFromFS(name string) Source {
	return Source{Kind: internalopenapi.SourceKindFS, Location: name}
}

// SourceFromURL points at a document served over HTTP(S).
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Source{}, fmt.Errorf("openapi: invalid URL %q", raw)
	}
	return Source{Kind: internalopenapi.SourceKindURL, Location: raw}, nil
}

// Option configures an Importer.
type Option func(*config)

type config struct {
	loader     loader.Options
	parser     parser.Options
	decorators []model.Decorator
}

// WithFileSystem resolves SourceFromFS locations.
func WithFileSystem(files fs.FS) Option {
	return func(cfg *config) {
		cfg.loader.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		cfg.loader.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(cfg *config) {
		cfg.loader.AllowHTTP = true
		cfg.loader.Timeout = timeout
	}
}

// WithValidation validates documents before extracting operations.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.parser.Validate = enabled
	}
}

// WithMediaTypes overrides the request body content types tried in order.
func WithMediaTypes(mediaTypes ...string) Option {
	return func(cfg *config) {
		cfg.parser.MediaTypes = append([]string(nil), mediaTypes...)
	}
}

// WithDecorators runs decorators on every built form.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *config) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// Importer loads documents and turns their operations into forms.
type Importer struct {
	loader     *loader.Loader
	parser     *parser.Parser
	decorators []model.Decorator
}

// NewImporter applies options. HTTP sources are disabled by default.
func NewImporter(options ...Option) *Importer {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Importer{
		loader:     loader.New(cfg.loader),
		parser:     parser.New(cfg.parser),
		decorators: cfg.decorators,
	}
}

// Catalog is a parsed document's operations.
type Catalog struct {
	source     Source
	operations map[string]Operation
	decorators []model.Decorator
}

// Load reads and parses the document at src.
func (i *Importer) Load(ctx context.Context, src Source) (*Catalog, error) {
	doc, err := i.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return i.Parse(ctx, doc)
}

// Parse extracts operations from an already loaded document.
func (i *Importer) Parse(ctx context.Context, doc Document) (*Catalog, error) {
	operations, err := i.parser.Operations(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Catalog{source: doc.Source, operations: operations, decorators: i.decorators}, nil
}

// ParseBytes parses raw JSON or YAML.
func (i *Importer) ParseBytes(ctx context.Context, raw []byte) (*Catalog, error) {
	doc, err := internalopenapi.NewDocument(Source{}, raw)
	if err != nil {
		return nil, err
	}
	return i.Parse(ctx, doc)
}

// Source reports where the catalog was loaded from.
func (c *Catalog) Source() Source {
	return c.source
}

// OperationIDs returns every operation id sorted.
func (c *Catalog) OperationIDs() []string {
	ids := make([]string, 0, len(c.operations))
	for id := range c.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Operation returns the operation with id.
func (c *Catalog) Operation(id string) (Operation, bool) {
	op, ok := c.operations[id]
	return op, ok
}

// Form builds the form for operation id.
func (c *Catalog) Form(id string) (model.FormModel, error) {
	op, ok := c.operations[id]
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w: %q (known: %s)", ErrOperationNotFound, id, strings.Join(c.OperationIDs(), ", "))
	}
	form, err := FormFromOperation(op)
	if err != nil {
		return model.FormModel{}, err
	}
	if err := model.ApplyDecorators(&form, c.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: decorate %q: %w", id, err)
	}
	return form, nil
}

// Forms builds a form for every operation with an object request body,
// sorted by id. Operations without one are skipped.
func (c *Catalog) Forms() ([]model.FormModel, error) {
	var forms []model.FormModel
	for _, id := range c.OperationIDs() {
		form, err := c.Form(id)
		if errors.Is(err, ErrNoFormBody) {
			continue
		}
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}
