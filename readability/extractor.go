// Package readability isolates the main content of article pages with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/serprace"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements serprace.Extractor at compile time.
var _ serprace.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article, its title and its excerpt.
func (e *Extractor) Extract(rawHTML string) (*serprace.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, serprace.Errorf(serprace.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, serprace.Errorf(serprace.ENOTFOUND, "readability: %v", err)
	}

	return &serprace.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
		Excerpt:     strings.TrimSpace(article.Excerpt),
	}, nil
}
