package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/load"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Registry  encounter.Registry
	Source    encounter.TraditionSource
	Index     encounter.Index
	Loader    *load.Loader
	Renderer  encounter.Renderer
	Converter encounter.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Source      string        `short:"s" required:"" env:"ENCOUNTER_SOURCE" help:"Base URL or directory holding traditions/<slug>.md"`
	Registry    string        `short:"r" required:"" env:"ENCOUNTER_REGISTRY" type:"path" help:"Registry file (YAML)"`
	Concurrency int           `short:"c" default:"1" help:"Traditions fetched at once"`
	Rate        float64       `default:"0" help:"HTTP requests per second (0 = unlimited)"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
	Strict      bool          `help:"Fail on malformed artifacts instead of dropping them"`
	Verbose     bool          `short:"v" help:"Log debug output to stderr"`

	List   ListCmd   `cmd:"" help:"List registered traditions"`
	Search SearchCmd `cmd:"" help:"Search artifact titles across all traditions"`
	Show   ShowCmd   `cmd:"" help:"Show a tradition or one of its artifacts"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Case-insensitive text to find in artifact titles"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Tradition string `arg:"" help:"Tradition slug"`
	Artifact  string `arg:"" optional:"" help:"Artifact slug"`
	HTML      bool   `name:"html" help:"Print rendered HTML instead of markdown"`
}

// loadAll fills the index, logging progress at debug level.
func loadAll(deps *Dependencies) (*load.Result, error) {
	return deps.Loader.LoadAll(deps.Ctx, func(e load.ProgressEvent) {
		switch e.Type {
		case load.ProgressLoaded:
			deps.Logger.Debug("tradition loaded",
				"tradition", e.Tradition,
				"artifacts", e.Artifacts,
				"progress", e.Completed, "total", e.Total,
			)
		case load.ProgressFailed:
			deps.Logger.Debug("tradition failed",
				"tradition", e.Tradition,
				"progress", e.Completed, "total", e.Total,
			)
		}
	})
}
