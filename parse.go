package encounter

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	delimiterRe = regexp.MustCompile(`^\s*---\s*$`)
	keyValueRe  = regexp.MustCompile(`^\s*([^:\s]+)\s*:\s*(.*?)\s*$`)
	listRe      = regexp.MustCompile(`^\s*\[([^\]]*?)\s*\]\s*$`)
	imageRe     = regexp.MustCompile(`^"([^"]+)"$`)
)

// parseState is the position of the line scanner within a document.
type parseState int

const (
	stateDescription parseState = iota
	stateFrontMatter
	stateBody
)

// Parser reads the tradition document format:
//
//	Markdown description of the tradition.
//	---
//	title: Name of the artifact
//	images: [ "front.jpg", "back.jpg" ]
//	size: any other key is kept verbatim
//	---
//	Markdown description of the artifact.
//	---
//	title: Next artifact
//	...
//
// The document description is rendered when parsed; artifact descriptions
// are kept as raw markdown.
type Parser struct {
	// Renderer renders the document description. Required.
	Renderer Renderer

	// Diagnostics, if set, is told about every dropped artifact.
	Diagnostics Diagnostics

	// Strict turns artifact format errors (missing title, malformed images
	// list) into a failed parse. Otherwise such artifacts are dropped and
	// reported to Diagnostics. Artifacts without images are always dropped.
	Strict bool
}

// artifactBuilder collects the front-matter of one artifact block.
type artifactBuilder struct {
	position int
	artifact *Artifact
	err      error
}

func newArtifactBuilder(position int) *artifactBuilder {
	return &artifactBuilder{position: position, artifact: &Artifact{}}
}

// setField applies one front-matter line. Lines that are not key: value
// pairs are ignored.
func (b *artifactBuilder) setField(line string) {
	m := keyValueRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	key, value := m[1], m[2]

	switch key {
	case "images":
		images, err := parseImages(value)
		if err != nil {
			if b.err == nil {
				b.err = err
			}
			return
		}
		b.artifact.Images = images
	case "slug", "description":
		// Derived from the title and the block body.
	case "title":
		if value != "" {
			b.artifact.Title = value
		}
	default:
		if value == "" {
			return
		}
		if b.artifact.Fields == nil {
			b.artifact.Fields = make(map[string]string)
		}
		b.artifact.Fields[key] = value
	}
}

// parseImages parses a bracketed list of double-quoted paths.
// An empty value or an empty list yields no images.
func parseImages(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}

	m := listRe.FindStringSubmatch(value)
	if m == nil {
		return nil, Errorf(EFORMAT, "images: expected a list like [ \"a.jpg\" ], got %q", value)
	}
	if strings.TrimSpace(m[1]) == "" {
		return nil, nil
	}

	parts := strings.Split(m[1], ",")
	images := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		im := imageRe.FindStringSubmatch(part)
		if im == nil {
			return nil, Errorf(EFORMAT, "images: element %q is not a quoted path", part)
		}
		images = append(images, im[1])
	}
	return images, nil
}

// Parse parses the raw text of the tradition identified by slug.
//
// A document without delimiter lines has no artifacts; its whole text is
// the description. Parse only fails when rendering fails or, in strict
// mode, when an artifact block is malformed.
func (p *Parser) Parse(text, slug string) (*TraditionDocument, error) {
	if p.Renderer == nil {
		return nil, Errorf(EINVALID, "parser renderer required")
	}

	doc := &TraditionDocument{
		Slug:      slug,
		Artifacts: []*Artifact{},
		SlugIndex: make(map[string]int),
	}

	state := stateDescription
	var block []string
	var builder *artifactBuilder
	position := 0

	for _, line := range strings.Split(text, "\n") {
		delim := delimiterRe.MatchString(line)

		switch state {
		case stateDescription:
			if !delim {
				block = append(block, line)
				continue
			}
			if err := p.renderDescription(doc, block); err != nil {
				return nil, err
			}
			builder = newArtifactBuilder(position)
			block = nil
			state = stateFrontMatter

		case stateFrontMatter:
			if !delim {
				builder.setField(line)
				block = append(block, line)
				continue
			}
			block = nil
			state = stateBody

		case stateBody:
			if !delim {
				block = append(block, line)
				continue
			}
			if err := p.closeArtifact(doc, builder, block); err != nil {
				return nil, err
			}
			position++
			builder = newArtifactBuilder(position)
			block = nil
			state = stateFrontMatter
		}
	}

	switch state {
	case stateDescription:
		if err := p.renderDescription(doc, block); err != nil {
			return nil, err
		}
	case stateBody:
		if err := p.closeArtifact(doc, builder, block); err != nil {
			return nil, err
		}
	case stateFrontMatter:
		// An unterminated front-matter block is the description of a final
		// artifact that has no front-matter at all.
		if strings.TrimSpace(strings.Join(block, "\n")) == "" {
			break
		}
		if err := p.closeArtifact(doc, newArtifactBuilder(position), block); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (p *Parser) renderDescription(doc *TraditionDocument, lines []string) error {
	html, err := p.Renderer.Render(strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("render %s description: %w", doc.Slug, err)
	}
	doc.Description = html
	return nil
}

// closeArtifact finishes an artifact block and appends it to doc, or drops
// it when it is not valid.
func (p *Parser) closeArtifact(doc *TraditionDocument, b *artifactBuilder, body []string) error {
	a := b.artifact
	a.Description = strings.TrimSpace(strings.Join(body, "\n"))
	a.Slug = Slugify(a.Title)

	err := b.err
	if err == nil {
		err = a.Validate()
	}
	if err != nil {
		if p.Strict && ErrorCode(err) == EFORMAT {
			return fmt.Errorf("%s: artifact %d: %w", doc.Slug, b.position+1, err)
		}
		if p.Diagnostics != nil {
			p.Diagnostics.ArtifactDropped(doc.Slug, a, err)
		}
		return nil
	}

	if _, ok := doc.SlugIndex[a.Slug]; !ok {
		doc.SlugIndex[a.Slug] = len(doc.Artifacts)
	}
	doc.Artifacts = append(doc.Artifacts, a)
	return nil
}
