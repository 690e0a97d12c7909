package render

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Renderer converts a FormModel and its feedback into a byte representation
// (an HTML fragment, a serialised submission).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
