package goquery_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/goquery"
	"github.com/fwojciec/serprace/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraph(i int) string {
	return fmt.Sprintf("Paragraph %d explains another part of the system in enough words to qualify.", i)
}

func TestArticleExtractor_CapsContentBlocks(t *testing.T) {
	t.Parallel()

	// Story: a long article yields at most twenty-five distinct blocks and
	// the word count covers exactly the kept blocks.

	// Given: an article with forty qualifying paragraphs
	var b strings.Builder
	b.WriteString("<html><head><title>Long read</title></head><body><article>")
	for i := range 40 {
		fmt.Fprintf(&b, "<p>%s</p>", paragraph(i))
	}
	b.WriteString("</article></body></html>")

	// When: extracting the article
	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com/long", b.String())

	// Then: exactly 25 distinct blocks over 50 characters are kept
	require.NoError(t, err)
	require.Len(t, content.Content, serprace.MaxContentBlocks)

	seen := make(map[string]bool)
	words := 0
	for _, block := range content.Content {
		assert.Greater(t, len([]rune(block)), serprace.MinBlockLength)
		assert.False(t, seen[block], "duplicate block %q", block)
		seen[block] = true
		words += len(strings.Fields(block))
	}
	assert.Equal(t, words, content.WordCount)
	assert.Equal(t, paragraph(0), content.Content[0])
	assert.Equal(t, "Long read", content.Title)
	assert.Equal(t, "https://example.com/long", content.URL)
}

func TestArticleExtractor_SkipsShortAndDuplicateParagraphs(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
<p>Too short.</p>
<p>` + paragraph(1) + `</p>
<p>` + paragraph(1) + `</p>
<p>` + paragraph(2) + `</p>
</main></body></html>`

	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

	require.NoError(t, err)
	assert.Equal(t, []string{paragraph(1), paragraph(2)}, content.Content)
}

func TestArticleExtractor_PrefersFirstContentSelector(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="content"><p>This paragraph sits in a lower priority container and must be ignored.</p></div>
<article><p>This paragraph sits inside the article element and is the real content.</p></article>
</body></html>`

	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

	require.NoError(t, err)
	require.Len(t, content.Content, 1)
	assert.Contains(t, content.Content[0], "inside the article element")
}

func TestArticleExtractor_UsesContainerTextWithoutParagraphs(t *testing.T) {
	t.Parallel()

	html := `<html><body><article><div>A container without paragraph tags still holds enough readable text to keep.</div></article></body></html>`

	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

	require.NoError(t, err)
	require.Len(t, content.Content, 1)
	assert.Equal(t, "A container without paragraph tags still holds enough readable text to keep.", content.Content[0])
}

func TestArticleExtractor_FallsBackToAllParagraphs(t *testing.T) {
	t.Parallel()

	html := `<html><body><div><p>` + paragraph(7) + `</p></div></body></html>`

	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

	require.NoError(t, err)
	assert.Equal(t, []string{paragraph(7)}, content.Content)
}

func TestArticleExtractor_IgnoresNonContentElements(t *testing.T) {
	t.Parallel()

	html := `<html><body><article>
<nav><p>Navigation paragraph that is long enough to qualify if it were kept around.</p></nav>
<script>var longScriptBody = "this is script text that should never appear anywhere";</script>
<p>` + paragraph(3) + `</p>
</article></body></html>`

	content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

	require.NoError(t, err)
	assert.Equal(t, []string{paragraph(3)}, content.Content)
}

func TestArticleExtractor_Metadata(t *testing.T) {
	t.Parallel()

	t.Run("reads title and description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>  Page   title </title>
<meta name="description" content="A description of the page.">
<meta property="og:description" content="Open graph description.">
</head><body><p>` + paragraph(1) + `</p></body></html>`

		content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

		require.NoError(t, err)
		assert.Equal(t, "Page title", content.Title)
		assert.Equal(t, "A description of the page.", content.MetaDescription)
	})

	t.Run("falls back to open graph tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:title" content="Graph title">
<meta property="og:description" content="Open graph description.">
</head><body><p>` + paragraph(1) + `</p></body></html>`

		content, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", html)

		require.NoError(t, err)
		assert.Equal(t, "Graph title", content.Title)
		assert.Equal(t, "Open graph description.", content.MetaDescription)
	})
}

func TestArticleExtractor_HashAndTimestamp(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	x := goquery.NewArticleExtractor(goquery.WithClock(func() time.Time { return fixed }))
	html := `<html><body><p>` + paragraph(1) + `</p></body></html>`

	first, err := x.ExtractArticle("https://example.com/a", html)
	require.NoError(t, err)
	second, err := x.ExtractArticle("https://example.com/b", html)
	require.NoError(t, err)

	assert.Len(t, first.ContentHash, 16)
	assert.Equal(t, first.ContentHash, second.ContentHash)
	assert.Equal(t, fixed, first.ExtractedAt)
}

func TestArticleExtractor_ExtractorFallback(t *testing.T) {
	t.Parallel()

	t.Run("used when no block qualifies", func(t *testing.T) {
		t.Parallel()

		var got string
		fallback := &mock.Extractor{
			ExtractFn: func(html string) (*serprace.ExtractResult, error) {
				got = html
				return &serprace.ExtractResult{
					Title:       "Extracted title",
					ContentHTML: "<div><p>" + paragraph(9) + "</p></div>",
					Excerpt:     "Extracted excerpt.",
				}, nil
			},
		}
		html := `<html><body><div>short</div></body></html>`

		content, err := goquery.NewArticleExtractor(goquery.WithExtractorFallback(fallback)).
			ExtractArticle("https://example.com", html)

		require.NoError(t, err)
		assert.Equal(t, html, got)
		assert.Equal(t, []string{paragraph(9)}, content.Content)
		assert.Equal(t, "Extracted title", content.Title)
		assert.Equal(t, "Extracted excerpt.", content.MetaDescription)
	})

	t.Run("not consulted when selectors find content", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.Extractor{
			ExtractFn: func(string) (*serprace.ExtractResult, error) {
				t.Fatal("fallback extractor should not be called")
				return nil, nil
			},
		}

		_, err := goquery.NewArticleExtractor(goquery.WithExtractorFallback(fallback)).
			ExtractArticle("https://example.com", `<html><body><p>`+paragraph(1)+`</p></body></html>`)

		require.NoError(t, err)
	})

	t.Run("fallback error leaves page without content", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.Extractor{
			ExtractFn: func(string) (*serprace.ExtractResult, error) {
				return nil, errors.New("no article")
			},
		}

		_, err := goquery.NewArticleExtractor(goquery.WithExtractorFallback(fallback)).
			ExtractArticle("https://example.com", `<html><body></body></html>`)

		assert.Equal(t, serprace.ENOTFOUND, serprace.ErrorCode(err))
	})
}

func TestArticleExtractor_NoContent(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewArticleExtractor().ExtractArticle("https://example.com", `<html><body><p>tiny</p></body></html>`)

	require.Error(t, err)
	assert.Equal(t, serprace.ENOTFOUND, serprace.ErrorCode(err))
}

func TestArticleExtractor_Markdown(t *testing.T) {
	t.Parallel()

	t.Run("converts the content container", func(t *testing.T) {
		t.Parallel()

		var got string
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "# Converted", nil
			},
		}
		html := `<html><body><nav>menu</nav><article><p>` + paragraph(1) + `</p></article></body></html>`

		content, err := goquery.NewArticleExtractor(goquery.WithConverter(conv)).ExtractArticle("https://example.com", html)

		require.NoError(t, err)
		assert.Equal(t, "# Converted", content.Markdown)
		assert.Contains(t, got, "<article>")
		assert.NotContains(t, got, "menu")
	})

	t.Run("conversion failure keeps the blocks", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("boom")
			},
		}

		content, err := goquery.NewArticleExtractor(goquery.WithConverter(conv)).
			ExtractArticle("https://example.com", `<html><body><p>`+paragraph(1)+`</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, content.Markdown)
		assert.Len(t, content.Content, 1)
	})
}
