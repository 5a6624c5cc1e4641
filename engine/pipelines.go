package engine

import "github.com/fwojciec/serprace"

// Parsers holds the results page parser for each endpoint.
type Parsers struct {
	Google         serprace.SERPParser
	Bing           serprace.SERPParser
	DuckDuckGo     serprace.SERPParser
	DuckDuckGoHTML serprace.SERPParser
}

// NewPipelines returns one pipeline per provider. The Google chain ends by
// delegating to the DuckDuckGo chain.
func NewPipelines(p Parsers, opts ...Option) map[serprace.Provider]serprace.Pipeline {
	ddg := NewDuckDuckGoPipeline(p.DuckDuckGo, p.DuckDuckGoHTML, opts...)
	return map[serprace.Provider]serprace.Pipeline{
		serprace.ProviderGoogle:     NewGooglePipeline(p.Google, ddg, opts...),
		serprace.ProviderBing:       NewBingPipeline(p.Bing, opts...),
		serprace.ProviderDuckDuckGo: ddg,
	}
}
