package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	internalopenapi "github.com/goliatone/go-formcheck/internal/openapi"
)

// maxDocumentSize caps HTTP downloads.
const maxDocumentSize = 10 << 20

// Options configures a Loader.
type Options struct {
	FileSystem fs.FS
	HTTPClient *http.Client
	// AllowHTTP enables URL sources with http.DefaultClient semantics when
	// HTTPClient is nil.
	AllowHTTP bool
	Timeout   time.Duration
}

// Loader reads OpenAPI documents from files, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader. HTTP stays disabled unless a client is supplied
// or AllowHTTP is set.
func New(options Options) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.Timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.Timeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: options.Timeout}
	}
	return &Loader{fs: options.FileSystem, http: client, timeout: options.Timeout}
}

// Load fetches the document src points at.
func (l *Loader) Load(ctx context.Context, src internalopenapi.Source) (internalopenapi.Document, error) {
	if err := ctx.Err(); err != nil {
		return internalopenapi.Document{}, err
	}
	if src.Location == "" {
		return internalopenapi.Document{}, errors.New("openapi loader: source location is required")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case internalopenapi.SourceKindFile:
		data, err = os.ReadFile(src.Location)
	case internalopenapi.SourceKindFS:
		if l.fs == nil {
			return internalopenapi.Document{}, errors.New("openapi loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location)
	case internalopenapi.SourceKindURL:
		if l.http == nil {
			return internalopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = l.loadHTTP(ctx, src.Location)
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return internalopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location, err)
	}
	return internalopenapi.NewDocument(src, data)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}
