package template

import "io"

// TemplateRenderer is the engine contract MessageRenderer renders through.
// Both the package's pongo2 Engine and a github.com/goliatone/go-template
// Engine satisfy it. Message templates arrive through RenderString; Render
// and RenderTemplate serve named templates from a directory or fs.FS.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
