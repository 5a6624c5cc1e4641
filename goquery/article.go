package goquery

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/serprace"
)

// Ensure ArticleExtractor implements serprace.ArticleExtractor at compile time.
var _ serprace.ArticleExtractor = (*ArticleExtractor)(nil)

// nonContent matches elements removed before looking for content.
const nonContent = "script, style, nav, header, footer, aside, iframe, noscript"

// ContentSelectors are content containers in priority order.
var ContentSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".content",
	".article-content",
	".post-content",
	".entry-content",
	".article-body",
}

// ArticleExtractor extracts readable text blocks from arbitrary pages.
type ArticleExtractor struct {
	fallback  serprace.Extractor
	converter serprace.Converter
	now       func() time.Time
}

// ArticleOption configures an ArticleExtractor.
type ArticleOption func(*ArticleExtractor)

// WithExtractorFallback sets the boilerplate-removal extractor consulted
// when no content selector yields a block.
func WithExtractorFallback(e serprace.Extractor) ArticleOption {
	return func(a *ArticleExtractor) {
		a.fallback = e
	}
}

// WithConverter enables the Markdown rendering of the content container.
func WithConverter(c serprace.Converter) ArticleOption {
	return func(a *ArticleExtractor) {
		a.converter = c
	}
}

// WithClock overrides the extraction timestamp source.
func WithClock(now func() time.Time) ArticleOption {
	return func(a *ArticleExtractor) {
		a.now = now
	}
}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor(opts ...ArticleOption) *ArticleExtractor {
	a := &ArticleExtractor{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ExtractArticle returns the page's content blocks. Returns ENOTFOUND if
// no block qualifies.
func (a *ArticleExtractor) ExtractArticle(pageURL, html string) (*serprace.ScrapedContent, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	title := text(doc.Find("title").First())
	if title == "" {
		title = metaContent(doc, "meta[property='og:title']")
	}
	meta := metaContent(doc, "meta[name='description']")
	if meta == "" {
		meta = metaContent(doc, "meta[property='og:description']")
	}

	doc.Find(nonContent).Remove()

	blocks := &blockSet{seen: make(map[string]bool)}
	var contentHTML string
	if c := contentContainer(doc); c != nil {
		c.Find("p").Each(func(_ int, p *goquery.Selection) {
			blocks.add(p.Text())
		})
		if blocks.size() == 0 {
			blocks.add(c.Text())
		}
		contentHTML, _ = goquery.OuterHtml(c)
	} else {
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			blocks.add(p.Text())
		})
		contentHTML, _ = doc.Find("body").Html()
	}

	if blocks.size() == 0 && a.fallback != nil {
		if res, err := a.fallback.Extract(html); err == nil && res != nil {
			if fdoc, err := parse(res.ContentHTML); err == nil {
				fdoc.Find("p").Each(func(_ int, p *goquery.Selection) {
					blocks.add(p.Text())
				})
				if blocks.size() == 0 {
					blocks.add(fdoc.Text())
				}
			}
			contentHTML = res.ContentHTML
			if title == "" {
				title = serprace.CleanText(res.Title)
			}
			if meta == "" {
				meta = serprace.CleanText(res.Excerpt)
			}
		}
	}

	if blocks.size() == 0 {
		return nil, serprace.Errorf(serprace.ENOTFOUND, "no readable content at %s", pageURL)
	}

	content := &serprace.ScrapedContent{
		URL:             pageURL,
		Title:           title,
		Content:         blocks.items,
		MetaDescription: meta,
		WordCount:       blocks.words,
		ContentHash:     fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(blocks.items, "\n"))),
		ExtractedAt:     a.now().UTC(),
	}
	if a.converter != nil && strings.TrimSpace(contentHTML) != "" {
		if md, err := a.converter.Convert(contentHTML); err == nil {
			content.Markdown = md
		}
	}
	return content, nil
}

// contentContainer returns the first element matched by the highest
// priority content selector, or nil.
func contentContainer(doc *goquery.Document) *goquery.Selection {
	for _, s := range ContentSelectors {
		if m := doc.Find(s).First(); m.Length() > 0 {
			return m
		}
	}
	return nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return serprace.CleanText(v)
}

// blockSet keeps distinct blocks longer than MinBlockLength, up to
// MaxContentBlocks.
type blockSet struct {
	seen  map[string]bool
	items []string
	words int
}

func (b *blockSet) add(raw string) {
	if len(b.items) >= serprace.MaxContentBlocks {
		return
	}
	t := serprace.CleanText(raw)
	if utf8.RuneCountInString(t) <= serprace.MinBlockLength || b.seen[t] {
		return
	}
	b.seen[t] = true
	b.items = append(b.items, t)
	b.words += len(strings.Fields(t))
}

func (b *blockSet) size() int {
	return len(b.items)
}
