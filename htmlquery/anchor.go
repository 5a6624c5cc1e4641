// Package htmlquery provides an XPath based last-resort extractor for
// results pages whose layout no selector strategy recognizes.
package htmlquery

import (
	"strings"
	"unicode/utf8"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/serprace"
	"golang.org/x/net/html"
)

// MinTitleLength is the shortest heading accepted as a result title.
const MinTitleLength = 8

// anchors selects every link that wraps a heading or sits next to one.
const anchors = `//a[@href][.//h3 or ../h3]`

// AnchorExtractor finds results as links paired with an h3 heading.
type AnchorExtractor struct{}

// NewAnchorExtractor returns an AnchorExtractor.
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{}
}

// ExtractResults returns up to limit results. Links containing any of the
// exclude substrings are skipped. Malformed markup yields no results.
func (x *AnchorExtractor) ExtractResults(markup string, limit int, exclude []string) []serprace.OrganicResult {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(doc, anchors)
	if err != nil {
		return nil
	}

	set := serprace.NewResultSet(limit)
	for _, a := range nodes {
		if set.Full() {
			break
		}
		link := strings.TrimSpace(htmlquery.SelectAttr(a, "href"))
		if excluded(link, exclude) {
			continue
		}
		heading := htmlquery.FindOne(a, ".//h3")
		if heading == nil {
			heading = htmlquery.FindOne(a, "../h3")
		}
		if heading == nil {
			continue
		}
		title := serprace.CleanText(htmlquery.InnerText(heading))
		if utf8.RuneCountInString(title) < MinTitleLength {
			continue
		}
		set.Add(serprace.OrganicResult{
			Title:   title,
			Link:    link,
			Snippet: snippet(a, title),
		})
	}
	return set.Results()
}

// snippet is the text of the anchor's parent with the title removed.
func snippet(a *html.Node, title string) string {
	if a.Parent == nil {
		return ""
	}
	rest := serprace.CleanText(htmlquery.InnerText(a.Parent))
	return strings.TrimSpace(strings.Replace(rest, title, "", 1))
}

func excluded(link string, exclude []string) bool {
	for _, ex := range exclude {
		if strings.Contains(link, ex) {
			return true
		}
	}
	return false
}
