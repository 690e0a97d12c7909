package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. Any engine satisfying it can be injected into the HTML renderer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Preloader is implemented by engines that can parse templates ahead of the
// first render so configuration errors surface at construction time.
type Preloader interface {
	Preload(names ...string) error
}
