package main

import (
	"fmt"

	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/load"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if len(deps.Registry) == 0 {
		fmt.Fprintln(deps.Stdout, "No traditions registered.")
		return nil
	}

	counts := make(map[string]int, len(deps.Registry))
	_, err := deps.Loader.LoadAll(deps.Ctx, func(e load.ProgressEvent) {
		if e.Type == load.ProgressLoaded {
			counts[e.Tradition] = e.Artifacts
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encounter.ErrorMessage(err))
		return err
	}

	for _, t := range deps.Registry {
		n, ok := counts[t.Slug]
		if !ok {
			fmt.Fprintf(deps.Stdout, "%s  %s  unavailable\n", t.Slug, t.Name)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d artifacts\n", t.Slug, t.Name, n)
	}

	return nil
}
