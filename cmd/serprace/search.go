package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fwojciec/serprace"
)

// searchOutput is the JSON shape printed by search --json.
type searchOutput struct {
	Engine           string                     `json:"engine"`
	OrganicResults   []serprace.OrganicResult   `json:"organic_results"`
	RelatedQuestions []serprace.RelatedQuestion `json:"related_questions"`
	KnowledgeGraph   *serprace.KnowledgeGraph   `json:"knowledge_graph"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	q := serprace.Query{Text: c.Query, Limit: c.Num}

	provider, res, err := c.search(deps, q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serprace.ErrorMessage(err))
		var raceErr *serprace.RaceError
		if errors.As(err, &raceErr) {
			printReasons(deps.Stderr, raceErr)
		}
		return err
	}

	if c.JSON {
		out := searchOutput{
			Engine:           string(provider),
			OrganicResults:   res.Results,
			RelatedQuestions: res.Questions,
			KnowledgeGraph:   res.KnowledgeGraph,
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printResults(deps.Stdout, provider, res)
	return nil
}

func (c *SearchCmd) search(deps *Dependencies, q serprace.Query) (serprace.Provider, *serprace.SearchResult, error) {
	if c.Engine == "" || c.Engine == "all" {
		race, err := deps.Searcher.SearchRacing(deps.Ctx, q, serprace.Providers())
		if err != nil {
			return "", nil, err
		}
		return race.Provider, race.Result, nil
	}

	provider, err := serprace.ParseProvider(c.Engine)
	if err != nil {
		return "", nil, err
	}
	res, err := deps.Searcher.SearchOne(deps.Ctx, q, provider)
	if err != nil {
		return "", nil, err
	}
	return provider, res, nil
}

func printResults(w io.Writer, provider serprace.Provider, res *serprace.SearchResult) {
	fmt.Fprintf(w, "Results from %s (%d):\n\n", provider, len(res.Results))
	for _, r := range res.Results {
		fmt.Fprintf(w, "%d. %s\n   %s\n", r.Position, r.Title, r.Link)
		if r.Snippet != "" {
			fmt.Fprintf(w, "   %s\n", r.Snippet)
		}
		fmt.Fprintln(w)
	}

	if len(res.Questions) > 0 {
		fmt.Fprintln(w, "Related questions:")
		for _, q := range res.Questions {
			fmt.Fprintf(w, "  - %s\n", q.Question)
		}
		fmt.Fprintln(w)
	}

	if kg := res.KnowledgeGraph; kg != nil {
		fmt.Fprintf(w, "Knowledge panel: %s\n", kg.Title)
		if kg.Description != "" {
			fmt.Fprintf(w, "  %s\n", kg.Description)
		}
	}
}

func printReasons(w io.Writer, err *serprace.RaceError) {
	reasons := err.Reasons()
	providers := make([]string, 0, len(reasons))
	for p := range reasons {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)
	for _, p := range providers {
		fmt.Fprintf(w, "  %s: %s\n", p, reasons[serprace.Provider(p)])
	}
}
