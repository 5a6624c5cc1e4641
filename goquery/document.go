// Package goquery extracts search results and article content from page
// markup using CSS selectors. Layout knowledge is kept as ordered strategy
// data so new layout variants can be added without new control flow.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/serprace"
)

// parse builds a document from raw HTML.
func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, serprace.Errorf(serprace.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// text returns the selection's text with whitespace collapsed.
func text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// firstMatch returns the first element matched by the first selector in
// selectors that matches anything under root.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if m := root.Find(s).First(); m.Length() > 0 {
			return m
		}
	}
	return nil
}
