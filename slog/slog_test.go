package slog_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/encounter"
	encslog "github.com/fwojciec/encounter/slog"
	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_ArtifactDropped(t *testing.T) {
	t.Parallel()

	t.Run("logs the dropped artifact at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		diagnostics := encslog.NewDiagnostics(encslog.NewLogger(&buf, false))

		diagnostics.ArtifactDropped("norse", &encounter.Artifact{
			Title: "Gungnir",
			Slug:  "gungnir",
		}, encounter.Errorf(encounter.EINVALID, "artifact has no images"))

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "msg=\"artifact dropped\"")
		assert.Contains(t, output, "tradition=norse")
		assert.Contains(t, output, "title=Gungnir")
		assert.Contains(t, output, "slug=gungnir")
		assert.Contains(t, output, "reason=\"artifact has no images\"")
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger emits debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		encslog.NewLogger(&buf, true).Debug("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("quiet logger drops debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		encslog.NewLogger(&buf, false).Debug("hello")

		assert.Empty(t, buf.String())
	})
}
