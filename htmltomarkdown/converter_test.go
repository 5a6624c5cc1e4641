package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements serprace.Converter at compile time.
var _ serprace.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts article structure", func(t *testing.T) {
		t.Parallel()

		html := `<article>
<h1>Release notes</h1>
<p>The new version ships <strong>faster</strong> startup.</p>
<h2>Changes</h2>
<ul><li>First change</li><li>Second change</li></ul>
<p>Read the <a href="https://example.com/blog">announcement</a>.</p>
</article>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Release notes")
		assert.Contains(t, md, "## Changes")
		assert.Contains(t, md, "**faster**")
		assert.Contains(t, md, "- First change")
		assert.Contains(t, md, "[announcement](https://example.com/blog)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Engine</th><th>Results</th></tr></thead>
<tbody><tr><td>bing</td><td>10</td></tr></tbody></table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Engine")
		assert.Contains(t, md, "| bing")
	})

	t.Run("strips scripts and event handlers", func(t *testing.T) {
		t.Parallel()

		html := `<div><p onclick="steal()">Visible paragraph text.</p>
<script>alert("hidden")</script>
<iframe src="https://tracker.example/frame"></iframe></div>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Visible paragraph text.")
		assert.NotContains(t, md, "alert")
		assert.NotContains(t, md, "steal")
		assert.NotContains(t, md, "tracker.example")
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.Error(t, err)
		assert.Equal(t, serprace.EINVALID, serprace.ErrorCode(err))
	})
}
