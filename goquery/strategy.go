package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/serprace"
)

// ResultStrategy describes one layout variant of a results page.
// Strategies are tried in order and the first one that yields any result
// wins.
type ResultStrategy struct {
	// Container matches one element per result.
	Container string `yaml:"container"`

	// Title selectors are tried in order within a container. The link is
	// taken from the title element if it is an anchor, otherwise from its
	// closest anchor ancestor, otherwise from the container's first
	// absolute link.
	Title []string `yaml:"title"`

	// Snippet selectors are tried in order within a container.
	Snippet []string `yaml:"snippet"`

	// Displayed optionally selects the provider's rendering of the URL.
	Displayed string `yaml:"displayed,omitempty"`

	// MinTitle rejects titles shorter than this many characters.
	MinTitle int `yaml:"min_title,omitempty"`
}

// extractResults runs strategies in order and returns the results of the
// first one that produces any.
func extractResults(doc *goquery.Document, strategies []ResultStrategy, rule LinkRule, limit int) []serprace.OrganicResult {
	for _, st := range strategies {
		set := serprace.NewResultSet(limit)
		doc.Find(st.Container).EachWithBreak(func(_ int, c *goquery.Selection) bool {
			if r, ok := st.result(c, rule); ok {
				set.Add(r)
			}
			return !set.Full()
		})
		if set.Len() > 0 {
			return set.Results()
		}
	}
	return nil
}

// result extracts one candidate from container c.
func (st ResultStrategy) result(c *goquery.Selection, rule LinkRule) (serprace.OrganicResult, bool) {
	titleEl := firstMatch(c, st.Title)
	if titleEl == nil {
		return serprace.OrganicResult{}, false
	}
	title := text(titleEl)
	if title == "" || utf8.RuneCountInString(title) < st.MinTitle {
		return serprace.OrganicResult{}, false
	}

	link, ok := rule.Canonical(linkFor(c, titleEl))
	if !ok {
		return serprace.OrganicResult{}, false
	}

	r := serprace.OrganicResult{
		Title:   title,
		Link:    link,
		Snippet: text(firstMatch(c, st.Snippet)),
	}
	if st.Displayed != "" {
		r.DisplayedLink = text(c.Find(st.Displayed).First())
	}
	return r, true
}

// linkFor finds the href belonging to a result title.
func linkFor(container, titleEl *goquery.Selection) string {
	if a := titleEl.Closest("a[href]"); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	href, _ := container.Find("a[href^='http']").First().Attr("href")
	return href
}

// extractQuestions collects related questions from every selector in
// order.
func extractQuestions(doc *goquery.Document, selectors []string) []serprace.RelatedQuestion {
	qs := serprace.NewQuestionSet()
	for _, s := range selectors {
		doc.Find(s).Each(func(_ int, el *goquery.Selection) {
			q := serprace.RelatedQuestion{Question: text(el)}
			if href, ok := el.Closest("a[href]").Attr("href"); ok && serprace.IsAbsoluteURL(href) {
				q.Link = href
			}
			qs.Add(q)
		})
	}
	return qs.Questions()
}

// KnowledgeStrategy describes one layout of an entity or answer panel.
type KnowledgeStrategy struct {
	// Box matches the panel element.
	Box string `yaml:"box"`

	// Title selects the entity name. When TitleInBox is false the title is
	// looked up in the whole document.
	Title      string `yaml:"title"`
	TitleInBox bool   `yaml:"title_in_box"`

	// Description selects the description within the box. When it matches
	// nothing and BoxText is set, the box's own text is used.
	Description string `yaml:"description"`
	BoxText     bool   `yaml:"box_text"`

	// Type labels the panel kind.
	Type string `yaml:"type"`
}

// extractKnowledge returns the first valid panel found by strategies.
func extractKnowledge(doc *goquery.Document, strategies []KnowledgeStrategy) *serprace.KnowledgeGraph {
	var found *serprace.KnowledgeGraph
	for _, st := range strategies {
		doc.Find(st.Box).EachWithBreak(func(_ int, box *goquery.Selection) bool {
			scope := doc.Selection
			if st.TitleInBox {
				scope = box
			}
			title := text(scope.Find(st.Title).First())

			desc := ""
			if st.Description != "" {
				desc = text(box.Find(st.Description).First())
			}
			if desc == "" && st.BoxText {
				desc = text(box)
			}

			found = serprace.NewKnowledgeGraph(title, desc, st.Type)
			return found == nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}
