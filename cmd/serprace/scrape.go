package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	content, err := deps.Searcher.ScrapeURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serprace.ErrorMessage(err))
		return err
	}
	if content == nil {
		fmt.Fprintf(deps.Stderr, "error: no readable content at %s\n", c.URL)
		return serprace.Errorf(serprace.ENOTFOUND, "no readable content at %s", c.URL)
	}

	var buf bytes.Buffer
	switch {
	case c.JSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(content); err != nil {
			return err
		}
	case c.Markdown:
		buf.WriteString(markdown(content))
		buf.WriteString("\n")
	default:
		printContent(&buf, content)
	}

	if c.Out != "" {
		if err := fs.WriteFileAtomic(c.Out, buf.Bytes()); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", c.Out, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s (%d words)\n", c.Out, content.WordCount)
		return nil
	}

	_, err = deps.Stdout.Write(buf.Bytes())
	return err
}

// markdown returns the Markdown rendering, or the blocks as paragraphs
// when no rendering is available.
func markdown(content *serprace.ScrapedContent) string {
	if content.Markdown != "" {
		return content.Markdown
	}
	md := strings.Join(content.Content, "\n\n")
	if content.Title != "" {
		md = "# " + content.Title + "\n\n" + md
	}
	return md
}

func printContent(w io.Writer, content *serprace.ScrapedContent) {
	fmt.Fprintf(w, "Title: %s\n", content.Title)
	fmt.Fprintf(w, "URL: %s\n", content.URL)
	if content.MetaDescription != "" {
		fmt.Fprintf(w, "Description: %s\n", content.MetaDescription)
	}
	fmt.Fprintf(w, "Words: %d\n\n", content.WordCount)
	for i, block := range content.Content {
		fmt.Fprintf(w, "[%d] %s\n\n", i+1, block)
	}
}
