package serprace_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/serprace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSet(t *testing.T) {
	t.Parallel()

	t.Run("assigns dense positions after dedup", func(t *testing.T) {
		t.Parallel()

		set := serprace.NewResultSet(10)
		set.Add(serprace.OrganicResult{Title: "One", Link: "https://a.example/1"})
		set.Add(serprace.OrganicResult{Title: "One again", Link: "https://a.example/1"})
		set.Add(serprace.OrganicResult{Title: "", Link: "https://a.example/2"})
		set.Add(serprace.OrganicResult{Title: "Relative", Link: "/local"})
		set.Add(serprace.OrganicResult{Title: "Two", Link: "https://b.example/2"})

		results := set.Results()
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].Position)
		assert.Equal(t, "One", results[0].Title)
		assert.Equal(t, 2, results[1].Position)
		assert.Equal(t, "https://b.example/2", results[1].Link)
	})

	t.Run("stops at limit", func(t *testing.T) {
		t.Parallel()

		set := serprace.NewResultSet(3)
		for i := range 5 {
			set.Add(serprace.OrganicResult{Title: "T", Link: fmt.Sprintf("https://example.com/%d", i)})
		}

		assert.True(t, set.Full())
		assert.Equal(t, 3, set.Len())
	})

	t.Run("derives displayed link from host", func(t *testing.T) {
		t.Parallel()

		set := serprace.NewResultSet(1)
		set.Add(serprace.OrganicResult{Title: "Go", Link: "https://go.dev/doc/"})

		assert.Equal(t, "go.dev", set.Results()[0].DisplayedLink)
	})

	t.Run("normalizes snippets", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 200)
		set := serprace.NewResultSet(2)
		set.Add(serprace.OrganicResult{Title: "A", Link: "https://a.example", Snippet: "Accept cookies  hello\n\n world"})
		set.Add(serprace.OrganicResult{Title: "B", Link: "https://b.example", Snippet: long})

		results := set.Results()
		assert.Equal(t, "hello world", results[0].Snippet)
		assert.LessOrEqual(t, utf8.RuneCountInString(results[1].Snippet), serprace.MaxSnippetLength)
	})
}

func TestCleanText_StripsBoilerplateSplitAcrossLines(t *testing.T) {
	t.Parallel()

	got := serprace.CleanText("Great article.\n  Accept\n cookies   more text\tPrivacy  policy")

	assert.Equal(t, "Great article. more text", got)
}

func TestTruncate_CountsCharacters(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("é", 400)

	got := serprace.Truncate(s, serprace.MaxSnippetLength)

	assert.Equal(t, serprace.MaxSnippetLength, utf8.RuneCountInString(got))
}

func TestIsQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"What is the Go memory model?", true},
		{"Why Go?", false},
		{"Feedback", false},
		{"Whatisthisthing?", false},
		{"People also ask", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, serprace.IsQuestion(tt.text))
		})
	}
}

func TestQuestionSet(t *testing.T) {
	t.Parallel()

	set := serprace.NewQuestionSet()
	for i := range 15 {
		set.Add(serprace.RelatedQuestion{Question: fmt.Sprintf("How do I write test %d?", i)})
	}
	set.Add(serprace.RelatedQuestion{Question: "How do I write test 0?"})

	assert.Len(t, set.Questions(), serprace.MaxQuestions)
}

func TestNewKnowledgeGraph(t *testing.T) {
	t.Parallel()

	t.Run("absent when empty", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, serprace.NewKnowledgeGraph(" ", "", "knowledge_graph"))
	})

	t.Run("rejects widget titles", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, serprace.NewKnowledgeGraph("Related searches", "golang tutorial", "answer_box"))
	})

	t.Run("keeps description-only panels", func(t *testing.T) {
		t.Parallel()

		kg := serprace.NewKnowledgeGraph("", "Go is a programming language.", "knowledge_graph")

		require.NotNil(t, kg)
		assert.Equal(t, "Go is a programming language.", kg.Description)
		assert.Equal(t, "knowledge_graph", kg.Type)
	})
}
