package engine

import (
	"strings"

	"github.com/fwojciec/serprace"
)

// BlockList holds lower-case phrases that mark an anti-bot interstitial.
type BlockList []string

// Phrases shown by each provider's challenge pages.
var (
	GoogleBlocked     = BlockList{"unusual traffic", "recaptcha"}
	BingBlocked       = BlockList{"verify you are a human"}
	DuckDuckGoBlocked = BlockList{"bots use duckduckgo too"}
)

// Check returns EBLOCKED if html contains any phrase, ignoring case.
func (b BlockList) Check(html string) error {
	lower := strings.ToLower(html)
	for _, phrase := range b {
		if strings.Contains(lower, phrase) {
			return serprace.Errorf(serprace.EBLOCKED, "challenge page detected (%q)", phrase)
		}
	}
	return nil
}
