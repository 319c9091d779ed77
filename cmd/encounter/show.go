package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/encounter"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	tradition, ok := deps.Registry.Find(c.Tradition)
	if !ok {
		err := encounter.Errorf(encounter.ENOTFOUND, "unknown tradition %q", c.Tradition)
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}

	doc := deps.Source.FetchTradition(deps.Ctx, tradition.Slug)
	if doc.Failed {
		err := encounter.Errorf(encounter.EINTERNAL, "failed to retrieve content for %s", tradition.Slug)
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}

	if c.Artifact == "" {
		return c.showTradition(deps, tradition, doc)
	}

	artifact, err := doc.ArtifactBySlug(c.Artifact)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}
	return c.showArtifact(deps, tradition, artifact)
}

func (c *ShowCmd) showTradition(deps *Dependencies, tradition encounter.Tradition, doc *encounter.TraditionDocument) error {
	fmt.Fprintf(deps.Stdout, "# %s\n\n", tradition.Name)

	if err := c.printHTML(deps, doc.Description); err != nil {
		return err
	}

	if len(doc.Artifacts) == 0 {
		fmt.Fprintln(deps.Stdout, "No artifacts.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Artifacts (%d):\n", len(doc.Artifacts))
	for _, a := range doc.Artifacts {
		fmt.Fprintf(deps.Stdout, "  %s  %s\n", a.Slug, a.Title)
	}
	return nil
}

func (c *ShowCmd) showArtifact(deps *Dependencies, tradition encounter.Tradition, a *encounter.Artifact) error {
	fmt.Fprintf(deps.Stdout, "# %s\n\n", a.Title)
	fmt.Fprintf(deps.Stdout, "tradition: %s\n", tradition.Name)

	keys := make([]string, 0, len(a.Fields))
	for k := range a.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(deps.Stdout, "%s: %s\n", k, a.Fields[k])
	}
	for _, img := range a.Images {
		fmt.Fprintf(deps.Stdout, "image: %s\n", img)
	}
	fmt.Fprintln(deps.Stdout)

	html, err := a.RenderDescription(deps.Renderer)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}
	return c.printHTML(deps, html)
}

// printHTML prints html as-is with --html, and as markdown otherwise.
func (c *ShowCmd) printHTML(deps *Dependencies, html encounter.HTML) error {
	if html == "" {
		return nil
	}
	if c.HTML {
		fmt.Fprintf(deps.Stdout, "%s\n\n", html)
		return nil
	}

	md, err := deps.Converter.Convert(string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\n\n", md)
	return nil
}
