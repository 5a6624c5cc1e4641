package goquery

import (
	"errors"
	"io"

	"github.com/fwojciec/serprace"
	"gopkg.in/yaml.v3"
)

// StrategyFile holds extra layout strategies per parser, loaded from YAML:
//
//	google:
//	  - container: ".new-result"
//	    title: ["h3"]
//	    snippet: [".new-snippet"]
//	bing: []
type StrategyFile struct {
	Google         []ResultStrategy `yaml:"google"`
	Bing           []ResultStrategy `yaml:"bing"`
	DuckDuckGo     []ResultStrategy `yaml:"duckduckgo"`
	DuckDuckGoHTML []ResultStrategy `yaml:"duckduckgo_html"`
}

// LoadStrategies decodes a StrategyFile. Unknown keys and strategies
// without a container or title selector are rejected with EINVALID.
func LoadStrategies(r io.Reader) (*StrategyFile, error) {
	var f StrategyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, serprace.Errorf(serprace.EINVALID, "invalid strategy file: %v", err)
	}

	groups := map[string][]ResultStrategy{
		"google":          f.Google,
		"bing":            f.Bing,
		"duckduckgo":      f.DuckDuckGo,
		"duckduckgo_html": f.DuckDuckGoHTML,
	}
	for name, strategies := range groups {
		for i, st := range strategies {
			if st.Container == "" || len(st.Title) == 0 {
				return nil, serprace.Errorf(serprace.EINVALID, "%s strategy %d: container and title are required", name, i)
			}
		}
	}
	return &f, nil
}
