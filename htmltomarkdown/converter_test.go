package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements encounter.Converter at compile time.
var _ encounter.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts rendered tradition description", func(t *testing.T) {
		t.Parallel()

		html := "<h1>Norse</h1>\n<p>Finds from <a href=\"https://example.com/birka\" target=\"_blank\" rel=\"noopener noreferrer\">Birka</a>.</p>\n"

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Norse")
		assert.Contains(t, md, "[Birka](https://example.com/birka)")
		assert.NotContains(t, md, "_blank")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Axe</li><li>Shield</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Axe")
		assert.Contains(t, md, "- Shield")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Find</th><th>Site</th></tr></thead>
<tbody><tr><td>Axe</td><td>Birka</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Find")
		assert.Contains(t, md, "Birka")
		assert.Contains(t, md, "|")
	})

	t.Run("converts emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Iron</strong> and <em>bronze</em>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Iron**")
		assert.Contains(t, md, "*bronze*")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("<p>Intro</p>\n\n")

		require.NoError(t, err)
		assert.Equal(t, "Intro", md)
	})

	t.Run("converts empty input to empty output", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
