package encounter

// HTML is rendered rich text that is safe to embed in a display surface.
type HTML string

// Renderer renders markdown into HTML.
type Renderer interface {
	// Render transforms markdown into sanitized HTML. External links in the
	// output open in a new browsing context. Empty input renders as "".
	Render(markdown string) (HTML, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms rendered HTML back into Markdown, e.g. for
	// terminal display.
	Convert(html string) (string, error)
}
