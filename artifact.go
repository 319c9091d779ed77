package encounter

import "strings"

// Artifact is one catalogued item of a tradition document.
type Artifact struct {
	Title  string   `json:"title"`
	Slug   string   `json:"slug"`
	Images []string `json:"images"`

	// Description is raw markdown; it is rendered at display time.
	Description string `json:"description"`

	// Fields holds the remaining front-matter keys (size, date, ...)
	// verbatim.
	Fields map[string]string `json:"fields,omitempty"`
}

// Validate returns an error if the artifact cannot be catalogued.
// A missing title is a format error; missing images is EINVALID.
func (a *Artifact) Validate() error {
	if a.Title == "" {
		return Errorf(EFORMAT, "artifact title required")
	}
	if len(a.Images) == 0 {
		return Errorf(EINVALID, "artifact %q has no images", a.Title)
	}
	return nil
}

// RenderDescription renders the artifact description for display.
func (a *Artifact) RenderDescription(r Renderer) (HTML, error) {
	return r.Render(a.Description)
}

// Slugify derives a URL-safe slug from a title. The title is lowercased and
// trimmed, every character other than a-z, space and hyphen is dropped, and
// spaces become hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(strings.ToLower(title)) {
		switch {
		case r >= 'a' && r <= 'z', r == '-':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
