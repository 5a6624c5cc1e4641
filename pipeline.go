package serprace

import "context"

// Pipeline drives one Session through a provider's ordered fallback
// strategies and classifies how the run ended.
type Pipeline interface {
	// Provider returns the provider this pipeline targets.
	Provider() Provider

	// Run executes the chain. It never returns nil and never closes sess.
	Run(ctx context.Context, sess Session, q Query) *Outcome
}

// SERPParser extracts structured entities from a results page.
type SERPParser interface {
	// Parse extracts at most limit organic results plus related questions
	// and the knowledge panel. A page with no results is not an error.
	Parse(html string, limit int) (*SearchResult, error)
}

// Searcher is the operation surface used by the HTTP API and the CLI.
type Searcher interface {
	// SearchOne queries a single provider.
	// Returns EUNSUPPORTED for an unknown provider, ESESSIONDIED if the
	// browser was lost and EEXHAUSTED, with an empty result, if every
	// strategy ran without finding anything.
	SearchOne(ctx context.Context, q Query, provider Provider) (*SearchResult, error)

	// SearchRacing queries providers concurrently and returns the first
	// non-empty result. Returns a *RaceError if no provider wins.
	SearchRacing(ctx context.Context, q Query, providers []Provider) (*RaceResult, error)

	// ScrapeURL extracts readable content from url. It returns nil content
	// and no error for social media URLs and pages without content.
	ScrapeURL(ctx context.Context, url string) (*ScrapedContent, error)
}
