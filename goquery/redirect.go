package goquery

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/fwojciec/serprace"
)

// LinkRule turns a raw result href into a canonical link for one provider.
type LinkRule struct {
	// Base resolves relative and protocol-relative hrefs.
	Base string

	// Decode unwraps a click-tracking redirect. It reports whether href was
	// a redirect at all; a redirect that cannot be decoded is returned
	// unchanged.
	Decode func(href string) (link string, redirect bool)

	// Exclude lists substrings marking provider-internal links.
	Exclude []string
}

// Canonical returns the canonical link for href and whether it should be
// kept as a result.
func (r LinkRule) Canonical(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}
	if r.Base != "" {
		if base, err := url.Parse(r.Base); err == nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
	}
	if r.Decode != nil {
		if link, redirect := r.Decode(href); redirect {
			return link, true
		}
	}
	for _, ex := range r.Exclude {
		if strings.Contains(href, ex) {
			return "", false
		}
	}
	return href, true
}

// DecodeBingRedirect unwraps bing.com/ck/a links, whose u parameter holds
// the destination as "a1" followed by base64. Padding is optional and both
// the URL-safe and standard alphabets are accepted.
func DecodeBingRedirect(href string) (string, bool) {
	if !strings.Contains(href, "bing.com/ck/a") {
		return href, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	payload := strings.TrimPrefix(u.Query().Get("u"), "a1")
	decoded, err := base64.RawURLEncoding.DecodeString(bingAlphabet.Replace(strings.TrimRight(payload, "=")))
	if err != nil || !serprace.IsAbsoluteURL(string(decoded)) {
		return href, true
	}
	return string(decoded), true
}

// bingAlphabet maps the standard base64 alphabet onto the URL-safe one. A
// literal '+' arrives as a space once the query is decoded.
var bingAlphabet = strings.NewReplacer("+", "-", " ", "-", "/", "_")

// DecodeDuckDuckGoRedirect unwraps duckduckgo.com/l/?uddg= links.
func DecodeDuckDuckGoRedirect(href string) (string, bool) {
	if !strings.Contains(href, "uddg=") {
		return href, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	dest := u.Query().Get("uddg")
	if !serprace.IsAbsoluteURL(dest) {
		return href, true
	}
	return dest, true
}
