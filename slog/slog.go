// Package slog provides logging decorators for the encounter interfaces.
package slog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/encounter"
)

// NewLogger returns a text logger writing to w. Verbose loggers emit debug
// records; others only warnings and errors.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Ensure Diagnostics implements encounter.Diagnostics.
var _ encounter.Diagnostics = (*Diagnostics)(nil)

// Diagnostics reports dropped artifacts as warnings.
type Diagnostics struct {
	logger *slog.Logger
}

// NewDiagnostics creates a new Diagnostics.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// ArtifactDropped logs the artifact and the reason it was excluded.
func (d *Diagnostics) ArtifactDropped(tradition string, artifact *encounter.Artifact, reason error) {
	d.logger.Warn("artifact dropped",
		"tradition", tradition,
		"title", artifact.Title,
		"slug", artifact.Slug,
		"images", strings.Join(artifact.Images, ","),
		"reason", encounter.ErrorMessage(reason),
	)
}
