package serprace

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxSnippetLength is the maximum snippet length in characters.
const MaxSnippetLength = 350

// MaxQuestions caps the related questions kept per result.
const MaxQuestions = 10

// OrganicResult is one ranked, non-advertising search result.
type OrganicResult struct {
	Position      int    `json:"position"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	DisplayedLink string `json:"displayed_link"`
}

// RelatedQuestion is a "people also ask" style question.
type RelatedQuestion struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet,omitempty"`
	Link     string `json:"link,omitempty"`
}

// KnowledgeGraph is an entity or answer panel shown beside the results.
type KnowledgeGraph struct {
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// SearchResult is everything extracted from one provider results page.
type SearchResult struct {
	Results        []OrganicResult   `json:"organic_results"`
	Questions      []RelatedQuestion `json:"related_questions"`
	KnowledgeGraph *KnowledgeGraph   `json:"knowledge_graph,omitempty"`
}

// Empty reports whether r carries no organic results.
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Results) == 0
}

// boilerplate lists banner fragments stripped from snippets and content.
var boilerplate = []string{
	"Skip to main content",
	"Accept cookies",
	"Cookie notice",
	"Privacy policy",
}

// CleanText collapses runs of whitespace and strips known cookie and
// consent banner fragments.
func CleanText(s string) string {
	// Collapse first so phrases split across lines still match.
	s = strings.Join(strings.Fields(s), " ")
	for _, b := range boilerplate {
		s = strings.ReplaceAll(s, b, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

// NormalizeSnippet cleans s and truncates it to MaxSnippetLength.
func NormalizeSnippet(s string) string {
	return Truncate(CleanText(s), MaxSnippetLength)
}

// IsQuestion reports whether text looks like a real question rather than
// a UI label: it must contain a question mark and an interior space and
// be longer than 10 characters.
func IsQuestion(text string) bool {
	t := strings.Join(strings.Fields(text), " ")
	return utf8.RuneCountInString(t) > 10 &&
		strings.Contains(t, "?") &&
		strings.Contains(t, " ")
}

// widgetTitles are panel headings that never name a real entity.
var widgetTitles = map[string]bool{
	"related searches":        true,
	"searches you might like": true,
	"people also search for":  true,
	"explore further":         true,
	"people also ask":         true,
	"related questions":       true,
	"see results about":       true,
	"things to know":          true,
	"top stories":             true,
	"videos":                  true,
	"images":                  true,
}

// IsWidgetTitle reports whether title is a known UI widget label.
func IsWidgetTitle(title string) bool {
	return widgetTitles[strings.ToLower(strings.TrimSpace(title))]
}

// NewKnowledgeGraph returns a panel for the given fields, or nil when both
// title and description are empty or the title is a widget label.
func NewKnowledgeGraph(title, description, typ string) *KnowledgeGraph {
	title = CleanText(title)
	description = CleanText(description)
	if title == "" && description == "" {
		return nil
	}
	if IsWidgetTitle(title) {
		return nil
	}
	return &KnowledgeGraph{Title: title, Type: typ, Description: description}
}

// Host returns the host part of an absolute URL, or "" if it has none.
func Host(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}

// IsAbsoluteURL reports whether link is an absolute http or https URL.
func IsAbsoluteURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResultSet accumulates organic results while enforcing the result
// invariants: titles are non-empty, links are absolute and unique, snippets
// are normalized and positions are dense starting at 1.
type ResultSet struct {
	limit   int
	seen    map[string]bool
	results []OrganicResult
}

// NewResultSet returns a set that accepts at most limit results.
// A limit of zero or less means DefaultLimit.
func NewResultSet(limit int) *ResultSet {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &ResultSet{limit: limit, seen: make(map[string]bool)}
}

// Add normalizes r and appends it, assigning the next position.
// It reports whether r was accepted.
func (s *ResultSet) Add(r OrganicResult) bool {
	if s.Full() {
		return false
	}
	r.Title = CleanText(r.Title)
	r.Link = strings.TrimSpace(r.Link)
	if r.Title == "" || !IsAbsoluteURL(r.Link) || s.seen[r.Link] {
		return false
	}
	r.Snippet = NormalizeSnippet(r.Snippet)
	r.DisplayedLink = CleanText(r.DisplayedLink)
	if r.DisplayedLink == "" {
		r.DisplayedLink = Host(r.Link)
	}
	s.seen[r.Link] = true
	r.Position = len(s.results) + 1
	s.results = append(s.results, r)
	return true
}

// Full reports whether the set reached its limit.
func (s *ResultSet) Full() bool {
	return len(s.results) >= s.limit
}

// Len returns the number of accepted results.
func (s *ResultSet) Len() int {
	return len(s.results)
}

// Results returns the accepted results in position order.
func (s *ResultSet) Results() []OrganicResult {
	return s.results
}

// QuestionSet accumulates related questions, dropping non-questions and
// duplicates and stopping at MaxQuestions.
type QuestionSet struct {
	seen      map[string]bool
	questions []RelatedQuestion
}

// NewQuestionSet returns an empty QuestionSet.
func NewQuestionSet() *QuestionSet {
	return &QuestionSet{seen: make(map[string]bool)}
}

// Add normalizes q and appends it if it passes IsQuestion.
func (s *QuestionSet) Add(q RelatedQuestion) bool {
	if len(s.questions) >= MaxQuestions {
		return false
	}
	q.Question = CleanText(q.Question)
	if !IsQuestion(q.Question) || s.seen[q.Question] {
		return false
	}
	q.Snippet = NormalizeSnippet(q.Snippet)
	s.seen[q.Question] = true
	s.questions = append(s.questions, q)
	return true
}

// Questions returns the accepted questions in first-seen order.
func (s *QuestionSet) Questions() []RelatedQuestion {
	return s.questions
}
