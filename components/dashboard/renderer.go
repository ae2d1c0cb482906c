package dashboard

import "io"

// Renderer is the slice of go-template's engine the controller needs to
// turn a layout payload into HTML. A custom implementation can swap the
// template engine without touching the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
