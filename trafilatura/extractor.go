// Package trafilatura isolates the main content of article pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/serprace"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements serprace.Extractor at compile time.
var _ serprace.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. When trafilatura finds no content and a
// fallback is configured, the fallback's result is returned instead.
type Extractor struct {
	fallback serprace.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets the extractor consulted when trafilatura finds nothing.
func WithFallback(e serprace.Extractor) Option {
	return func(x *Extractor) {
		x.fallback = e
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	x := &Extractor{}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract returns the page's main content, its title and its description.
func (x *Extractor) Extract(rawHTML string) (*serprace.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, serprace.Errorf(serprace.EINVALID, "empty HTML input")
	}

	res, err := x.extract(rawHTML)
	if err == nil && strings.TrimSpace(res.ContentHTML) != "" {
		return res, nil
	}
	if x.fallback != nil {
		return x.fallback.Extract(rawHTML)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (x *Extractor) extract(rawHTML string) (*serprace.ExtractResult, error) {
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, serprace.Errorf(serprace.ENOTFOUND, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		if contentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, err
		}
	}

	return &serprace.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Excerpt:     result.Metadata.Description,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
