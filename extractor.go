package serprace

// ExtractResult is the main content a boilerplate-removal library found
// in a page.
type ExtractResult struct {
	Title string

	// ContentHTML is the main content with navigation, ads and footers
	// removed. Paragraph structure is preserved.
	ContentHTML string

	// Excerpt is a short summary, when the library provides one.
	Excerpt string
}

// Extractor isolates the main content of a page. Article extraction falls
// back to an Extractor when no content container selector matches.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
