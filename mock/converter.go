package mock

import "github.com/fwojciec/encounter"

var _ encounter.Converter = (*Converter)(nil)

// Converter is a mock implementation of encounter.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ encounter.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of encounter.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (encounter.HTML, error)
}

func (r *Renderer) Render(markdown string) (encounter.HTML, error) {
	return r.RenderFn(markdown)
}
