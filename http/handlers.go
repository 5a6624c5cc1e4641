package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/serprace"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// DefaultNum is the result count used when a search request omits num.
const DefaultNum = 10

type searchRequest struct {
	Query  string `json:"query"`
	Engine string `json:"engine"`
	Num    int    `json:"num"`
}

type searchResponse struct {
	Engine           string                     `json:"engine"`
	OrganicResults   []serprace.OrganicResult   `json:"organic_results"`
	RelatedQuestions []serprace.RelatedQuestion `json:"related_questions"`
	KnowledgeGraph   *serprace.KnowledgeGraph   `json:"knowledge_graph"`
}

type scrapeRequest struct {
	URL string `json:"url"`
}

type scrapeResponse struct {
	Content *serprace.ScrapedContent `json:"content"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Num == 0 {
		req.Num = DefaultNum
	}
	engine := strings.ToLower(strings.TrimSpace(req.Engine))
	if engine == "" {
		engine = "all"
	}
	q := serprace.Query{Text: req.Query, Limit: req.Num}
	if err := q.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if engine == "all" {
		res, err := s.searcher.SearchRacing(r.Context(), q, serprace.Providers())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newSearchResponse(res.Provider, res.Result))
		return
	}

	provider, err := serprace.ParseProvider(engine)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.searcher.SearchOne(r.Context(), q, provider)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(provider, res))
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	content, err := s.searcher.ScrapeURL(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	if content == nil {
		writeError(w, serprace.Errorf(serprace.ENOTFOUND, "failed to extract content from %s", req.URL))
		return
	}
	writeJSON(w, http.StatusOK, scrapeResponse{Content: content})
}

func newSearchResponse(p serprace.Provider, res *serprace.SearchResult) searchResponse {
	out := searchResponse{
		Engine:           string(p),
		OrganicResults:   []serprace.OrganicResult{},
		RelatedQuestions: []serprace.RelatedQuestion{},
	}
	if res == nil {
		return out
	}
	if res.Results != nil {
		out.OrganicResults = res.Results
	}
	if res.Questions != nil {
		out.RelatedQuestions = res.Questions
	}
	out.KnowledgeGraph = res.KnowledgeGraph
	return out
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return serprace.Errorf(serprace.EINVALID, "invalid request body: %v", err)
	}
	return nil
}

// statusCodes maps application error codes to HTTP status codes.
var statusCodes = map[string]int{
	serprace.EINVALID:     http.StatusBadRequest,
	serprace.EUNSUPPORTED: http.StatusBadRequest,
	serprace.ENOTFOUND:    http.StatusNotFound,
	serprace.EALLFAILED:   http.StatusBadGateway,
	serprace.EEXHAUSTED:   http.StatusBadGateway,
	serprace.ESESSIONDIED: http.StatusBadGateway,
	serprace.ELAUNCH:      http.StatusServiceUnavailable,
}

// ErrorStatusCode returns the HTTP status code for err.
func ErrorStatusCode(err error) int {
	if code, ok := statusCodes[serprace.ErrorCode(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := serprace.ErrorCode(err)
	resp := errorResponse{Error: serprace.ErrorMessage(err), Code: code}

	var raceErr *serprace.RaceError
	if errors.As(err, &raceErr) {
		resp.Error = "all providers failed"
		resp.Reasons = make(map[string]string, len(raceErr.Outcomes))
		for p, reason := range raceErr.Reasons() {
			resp.Reasons[string(p)] = reason
		}
	}
	writeJSON(w, ErrorStatusCode(err), resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
