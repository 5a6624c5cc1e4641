// Package htmltomarkdown renders scraped content as Markdown. Markup is
// sanitized with bluemonday before conversion so scripts, inline handlers
// and embedded frames never reach the output.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/serprace"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements serprace.Converter at compile time.
var _ serprace.Converter = (*Converter)(nil)

// Converter sanitizes HTML and converts it to Markdown.
type Converter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{
		policy: bluemonday.UGCPolicy(),
		conv:   conv,
	}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", serprace.Errorf(serprace.EINVALID, "empty HTML input")
	}

	clean := c.policy.Sanitize(html)
	md, err := c.conv.ConvertString(clean)
	if err != nil {
		return "", serprace.Errorf(serprace.EINTERNAL, "converting to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
