package dashboard

import "io"

// Renderer is the slice of go-template's renderer the controller needs:
// resolve a template by name and write the rendered dashboard shell to
// the optional writer. Hosts with their own template pipeline implement
// this instead of pulling in the embedded templates.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
