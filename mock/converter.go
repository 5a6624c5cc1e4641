package mock

import "github.com/fwojciec/serprace"

var _ serprace.Converter = (*Converter)(nil)

// Converter is a mock implementation of serprace.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
