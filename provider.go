package serprace

import "strings"

// Provider identifies one external search engine.
type Provider string

// Supported providers. Google is the primary provider, Bing the secondary
// and DuckDuckGo the tertiary.
const (
	ProviderGoogle     Provider = "google"
	ProviderBing       Provider = "bing"
	ProviderDuckDuckGo Provider = "duckduckgo"
)

// Providers returns every supported provider in racing order.
func Providers() []Provider {
	return []Provider{ProviderGoogle, ProviderBing, ProviderDuckDuckGo}
}

// String returns the provider name.
func (p Provider) String() string {
	return string(p)
}

// Validate returns EUNSUPPORTED if p is not a known provider.
func (p Provider) Validate() error {
	switch p {
	case ProviderGoogle, ProviderBing, ProviderDuckDuckGo:
		return nil
	}
	return Errorf(EUNSUPPORTED, "unsupported provider %q", string(p))
}

// ParseProvider converts a user-supplied engine name into a Provider.
// Matching is case-insensitive and accepts "ddg" as an alias.
func ParseProvider(s string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "ddg" {
		name = string(ProviderDuckDuckGo)
	}
	p := Provider(name)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// ParseProviders converts a list of engine names. The value "all" expands
// to every provider. Duplicates are dropped, preserving first-seen order.
func ParseProviders(names []string) ([]Provider, error) {
	var out []Provider
	seen := make(map[Provider]bool)
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), "all") {
			for _, p := range Providers() {
				if !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
			continue
		}
		p, err := ParseProvider(n)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, Errorf(EINVALID, "at least one provider required")
	}
	return out, nil
}

// DefaultLimit is the number of organic results requested when a query
// does not specify one.
const DefaultLimit = 10

// MaxPageResults caps the per-page result count requested from providers.
const MaxPageResults = 20

// Query is one search request.
type Query struct {
	Text  string
	Limit int
}

// Validate returns EINVALID if the query text is blank or the limit is negative.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return Errorf(EINVALID, "query required")
	}
	if q.Limit < 0 {
		return Errorf(EINVALID, "limit must not be negative")
	}
	return nil
}

// ResultLimit returns the effective result limit, applying DefaultLimit
// when none was set.
func (q Query) ResultLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// PageSize returns the result count to request from a provider page.
func (q Query) PageSize() int {
	return min(q.ResultLimit(), MaxPageResults)
}
