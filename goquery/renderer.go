// Package goquery post-processes rendered HTML with goquery so it is safe
// to embed: active content is removed and external links open in a new
// browsing context.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/encounter"
)

// Ensure Renderer implements encounter.Renderer at compile time.
var _ encounter.Renderer = (*Renderer)(nil)

// activeContent lists elements that are never kept in rendered output.
const activeContent = "script, style, iframe, object, embed, form"

// Renderer wraps another Renderer and sanitizes its output.
type Renderer struct {
	next encounter.Renderer
}

// NewRenderer creates a Renderer that sanitizes the output of next.
func NewRenderer(next encounter.Renderer) *Renderer {
	return &Renderer{next: next}
}

// Render renders markdown with the wrapped renderer and sanitizes the result.
func (r *Renderer) Render(markdown string) (encounter.HTML, error) {
	html, err := r.next.Render(markdown)
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", nil
	}
	return Sanitize(string(html))
}

// Sanitize removes active content and event handler attributes from an
// HTML fragment, drops links with script-capable schemes, and marks
// external links with target="_blank".
func Sanitize(html string) (encounter.HTML, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", encounter.Errorf(encounter.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(activeContent).Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		var handlers []string
		for _, attr := range sel.Nodes[0].Attr {
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				handlers = append(handlers, attr.Key)
			}
		}
		for _, key := range handlers {
			sel.RemoveAttr(key)
		}
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		switch {
		case isUnsafeLink(href):
			sel.RemoveAttr("href")
		case isExternalLink(href):
			sel.SetAttr("target", "_blank")
			sel.SetAttr("rel", "noopener noreferrer")
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return encounter.HTML(out), nil
}

// isExternalLink reports whether href leaves the current site.
func isExternalLink(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	return u.Host != "" || u.Scheme == "http" || u.Scheme == "https"
}

// isUnsafeLink reports whether href uses a scheme that can run script.
func isUnsafeLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "vbscript:") ||
		strings.HasPrefix(href, "data:")
}
