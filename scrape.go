package serprace

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Article content limits.
const (
	MaxContentBlocks = 25
	MinBlockLength   = 50
)

// ScrapedContent is the readable content of one page.
type ScrapedContent struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Content         []string  `json:"content"`
	MetaDescription string    `json:"meta_description,omitempty"`
	WordCount       int       `json:"word_count"`
	ContentHash     string    `json:"content_hash"`
	Markdown        string    `json:"markdown,omitempty"`
	ExtractedAt     time.Time `json:"extracted_at"`
}

// ArticleExtractor turns page markup into ScrapedContent.
type ArticleExtractor interface {
	// ExtractArticle returns ENOTFOUND if no block qualifies as content.
	ExtractArticle(pageURL, html string) (*ScrapedContent, error)
}

// Scraper loads one page in a session and extracts its content.
type Scraper interface {
	// Scrape returns EINVALID for a bad URL, ESESSIONDIED if the browser
	// was lost and ENOTFOUND if the page has no readable content.
	Scrape(ctx context.Context, sess Session, url string) (*ScrapedContent, error)
}

// ValidatePageURL returns EINVALID unless rawURL is an absolute http or
// https URL.
func ValidatePageURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "invalid url %q", rawURL)
	}
	return nil
}

// socialDomains are hosts whose pages are never scraped.
var socialDomains = []string{
	"twitter.com",
	"x.com",
	"facebook.com",
	"instagram.com",
	"tiktok.com",
	"snapchat.com",
	"linkedin.com",
}

// IsSocialMedia reports whether rawURL points at a social media site.
// URLs without a scheme are matched on their leading host.
func IsSocialMedia(rawURL string) bool {
	raw := strings.TrimSpace(rawURL)
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Host == "" && !strings.HasPrefix(raw, "/") {
		if u, err = url.Parse("//" + raw); err != nil {
			return false
		}
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range socialDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
