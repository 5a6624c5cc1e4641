package serprace

// Converter renders content HTML as Markdown.
type Converter interface {
	// Convert returns EINVALID for blank input.
	Convert(html string) (string, error)
}
