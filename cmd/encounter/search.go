package main

import (
	"fmt"

	"github.com/fwojciec/encounter"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	result, err := loadAll(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d of %d traditions unavailable\n",
			result.Failed, result.Loaded+result.Failed)
	}

	results := deps.Index.Lookup(c.Query)
	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No artifacts match %q.\n", c.Query)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s/%s  %s  (%s)\n", r.TraditionSlug, r.Artifact.Slug, r.Artifact.Title, r.Tradition)
	}

	return nil
}
