package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers depend on. Templates are
// addressed by name; data is converted to the engine's context using its JSON
// field names.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// GlobalContext installs values, including helper functions, visible to
	// every template.
	GlobalContext(data any) error
}
