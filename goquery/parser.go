package goquery

import (
	"github.com/fwojciec/serprace"
)

// Ensure Parser implements serprace.SERPParser at compile time.
var _ serprace.SERPParser = (*Parser)(nil)

// Fallback extracts results from a page when no layout strategy matched.
type Fallback interface {
	ExtractResults(html string, limit int, exclude []string) []serprace.OrganicResult
}

// Parser extracts a SearchResult from one provider's results page.
type Parser struct {
	name       string
	strategies []ResultStrategy
	rule       LinkRule
	questions  []string
	knowledge  []KnowledgeStrategy
	fallback   Fallback
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithStrategies puts extra layout strategies ahead of the built-in ones.
func WithStrategies(strategies []ResultStrategy) ParserOption {
	return func(p *Parser) {
		p.strategies = append(append([]ResultStrategy{}, strategies...), p.strategies...)
	}
}

// WithFallback sets the extractor used when no strategy yields a result.
func WithFallback(f Fallback) ParserOption {
	return func(p *Parser) {
		p.fallback = f
	}
}

func newParser(p *Parser, opts []ParserOption) *Parser {
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the layout family name.
func (p *Parser) Name() string {
	return p.name
}

// Parse extracts up to limit organic results, related questions and the
// knowledge panel.
func (p *Parser) Parse(html string, limit int) (*serprace.SearchResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	results := extractResults(doc, p.strategies, p.rule, limit)
	if len(results) == 0 && p.fallback != nil {
		results = p.fallback.ExtractResults(html, limit, p.rule.Exclude)
	}
	if results == nil {
		results = []serprace.OrganicResult{}
	}

	questions := extractQuestions(doc, p.questions)
	if questions == nil {
		questions = []serprace.RelatedQuestion{}
	}

	return &serprace.SearchResult{
		Results:        results,
		Questions:      questions,
		KnowledgeGraph: extractKnowledge(doc, p.knowledge),
	}, nil
}

// NewGoogleParser returns a parser for Google results pages.
func NewGoogleParser(opts ...ParserOption) *Parser {
	return newParser(&Parser{
		name:       "google",
		strategies: GoogleStrategies(),
		rule: LinkRule{
			Exclude: []string{"google.com/search", "accounts.google", "google.com/url"},
		},
		questions: []string{
			".related-question-pair span",
			".wQiwMc .iDjcJe",
			"[jsname='Cpkphb'] span",
			".kno-ftr span",
		},
		knowledge: []KnowledgeStrategy{
			{Box: ".kno-rdesc", Title: ".qrShPb, .kno-ecr-pt, .SPZz6b", Description: "span, div", BoxText: true, Type: "knowledge_graph"},
			{Box: ".I6TXqe", Title: ".qrShPb, .kno-ecr-pt, .SPZz6b", Description: "span, div", BoxText: true, Type: "knowledge_graph"},
			{Box: ".hgKElc", Title: ".qrShPb, .kno-ecr-pt, .SPZz6b", Description: "span, div", BoxText: true, Type: "knowledge_graph"},
		},
	}, opts)
}

// GoogleStrategies returns the Google layouts, newest first.
func GoogleStrategies() []ResultStrategy {
	return []ResultStrategy{
		{
			Container: ".MjjYud, .g, .hlcw0c",
			Title:     []string{"h3, .LC20lb, .DKV0Md"},
			Snippet:   []string{".VwiC3b, .s3v9rd, .aCOpRe"},
			Displayed: "cite",
			MinTitle:  4,
		},
		{
			Container: ".g, .rc",
			Title:     []string{"h3"},
			Snippet:   []string{".s, .st"},
			MinTitle:  4,
		},
		{
			Container: "[data-ved]",
			Title:     []string{"h3"},
			Snippet:   []string{"span"},
			MinTitle:  4,
		},
	}
}

// NewBingParser returns a parser for Bing results pages.
func NewBingParser(opts ...ParserOption) *Parser {
	return newParser(&Parser{
		name:       "bing",
		strategies: BingStrategies(),
		rule: LinkRule{
			Decode:  DecodeBingRedirect,
			Exclude: []string{"bing.com", "microsoft.com/en-us/bing"},
		},
		questions: []string{
			".df_alsoasked a",
			".b_ans .b_focusTextLarge",
			"[data-tag='RelatedSearches.PeopleAlsoAsk'] a",
			".alsoAsk a",
			".b_paa a",
			".df_alsoask a",
		},
		knowledge: []KnowledgeStrategy{
			{Box: ".b_entityTP", Title: ".b_entityTitle, h2", TitleInBox: true, Description: ".b_entitySubTypes, .b_snippet, p", Type: "answer_box"},
			{Box: ".b_ans", Title: ".b_entityTitle, h2", TitleInBox: true, Description: ".b_entitySubTypes, .b_snippet, p", Type: "answer_box"},
		},
	}, opts)
}

// BingStrategies returns the Bing layouts.
func BingStrategies() []ResultStrategy {
	snippets := []string{".b_caption p", ".b_paractl", ".b_algoSlug", "p"}
	return []ResultStrategy{
		{
			Container: ".b_algo",
			Title:     []string{"h2 a", "a[href^='http']"},
			Snippet:   snippets,
			Displayed: "cite",
		},
		{
			Container: "#b_results > li",
			Title:     []string{"h2 a"},
			Snippet:   snippets,
			Displayed: "cite",
		},
	}
}

// duckDuckGoRule covers both DuckDuckGo endpoints.
var duckDuckGoRule = LinkRule{
	Base:    "https://duckduckgo.com/",
	Decode:  DecodeDuckDuckGoRedirect,
	Exclude: []string{"duckduckgo.com"},
}

// NewDuckDuckGoParser returns a parser for the script-rendered DuckDuckGo
// results page.
func NewDuckDuckGoParser(opts ...ParserOption) *Parser {
	return newParser(&Parser{
		name:       "duckduckgo",
		strategies: DuckDuckGoStrategies(),
		rule:       duckDuckGoRule,
		questions: []string{
			"[data-testid='related-searches'] a",
			".related-searches__item a",
			".module--related-searches a",
		},
	}, opts)
}

// DuckDuckGoStrategies returns the script-rendered DuckDuckGo layouts.
func DuckDuckGoStrategies() []ResultStrategy {
	titles := []string{"[data-testid='result-title-a']", "h2 a", "a[href^='http']"}
	snippets := []string{"[data-result='snippet']", "[data-testid='result-snippet']", ".OgdwYG, .E2eLOJr"}
	return []ResultStrategy{
		{Container: "[data-testid='result']", Title: titles, Snippet: snippets, Displayed: "[data-testid='result-extras-url-link']"},
		{Container: "article[data-nrn='result']", Title: titles, Snippet: snippets},
		{Container: "li[data-layout='organic']", Title: titles, Snippet: snippets},
		{Container: ".react-results--main li", Title: titles, Snippet: snippets},
	}
}

// NewDuckDuckGoHTMLParser returns a parser for the static no-script
// DuckDuckGo endpoint.
func NewDuckDuckGoHTMLParser(opts ...ParserOption) *Parser {
	return newParser(&Parser{
		name:       "duckduckgo_html",
		strategies: DuckDuckGoHTMLStrategies(),
		rule:       duckDuckGoRule,
	}, opts)
}

// DuckDuckGoHTMLStrategies returns the static DuckDuckGo layouts.
func DuckDuckGoHTMLStrategies() []ResultStrategy {
	snippets := []string{".result__snippet", ".result__body", ".result__intro"}
	return []ResultStrategy{
		{
			Container: ".result.results_links, .result.results_links_deep, .web-result",
			Title:     []string{"a.result__a"},
			Snippet:   snippets,
			Displayed: ".result__url",
			MinTitle:  4,
		},
		{
			Container: ".result",
			Title:     []string{"a.result__a"},
			Snippet:   snippets,
			Displayed: ".result__url",
			MinTitle:  4,
		},
		{
			Container: "div:has(a.result__a)",
			Title:     []string{"a.result__a"},
			Snippet:   snippets,
			MinTitle:  4,
		},
	}
}
