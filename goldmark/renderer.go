// Package goldmark renders markdown to HTML using goldmark.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/encounter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Ensure Renderer implements encounter.Renderer at compile time.
var _ encounter.Renderer = (*Renderer)(nil)

// Renderer converts markdown to HTML. Raw HTML in the markdown source is
// omitted from the output and dangerous link schemes are dropped.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub Flavored Markdown enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render transforms markdown into HTML. Blank input renders as "".
func (r *Renderer) Render(markdown string) (encounter.HTML, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return encounter.HTML(buf.String()), nil
}
