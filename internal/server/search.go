package server

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raphaelgruber/aisite-go/internal/components"
	"github.com/raphaelgruber/aisite-go/internal/metrics"
	"github.com/raphaelgruber/aisite-go/internal/search"
)

// maxQueryRunes caps search queries.
const maxQueryRunes = 80

func searchQuery(r *http.Request) string {
	return strings.TrimLeft(r.URL.Query().Get("q"), " ")
}

// handleSuggest returns the search results for q. held lists the brands
// currently on screen, comma separated, so a narrowing query keeps the brand
// row full. Browsers get an HTML fragment, API callers get JSON.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := searchQuery(r)
	if utf8.RuneCountInString(q) > maxQueryRunes {
		s.metrics.RecordFailure(metrics.OpSearchSuggest)
		writeError(w, http.StatusBadRequest, "query too long")
		return
	}

	held := s.heldBrands(r.URL.Query().Get("held"))
	res := s.search.Search(q)
	res.Brands = search.HoldBrands(held, res.Brands)

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, res)
		s.metrics.RecordTiming(metrics.OpSearchSuggest, time.Since(start))
		return
	}

	html, err := s.renderSuggestion(q, held, res)
	if err != nil {
		s.metrics.RecordFailure(metrics.OpSearchSuggest)
		s.logger.Error("render search results", "query", q, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
	s.metrics.RecordTiming(metrics.OpSearchSuggest, time.Since(start))
}

// heldBrands resolves brand names, dropping unknown ones.
func (s *Server) heldBrands(raw string) []search.BrandOption {
	var out []search.BrandOption
	for _, name := range strings.Split(raw, ",") {
		if b, ok := s.search.Brand(strings.TrimSpace(name)); ok {
			out = append(out, b)
		}
		if len(out) == search.MaxBrands {
			break
		}
	}
	return out
}

// renderSuggestion renders the results fragment. The output depends only on
// the query and the held brands, so it is cached.
func (s *Server) renderSuggestion(q string, held []search.BrandOption, res search.Result) (string, error) {
	var key strings.Builder
	key.WriteString(q)
	for _, b := range held {
		key.WriteByte(0)
		key.WriteString(b.Brand)
	}
	if html, ok := s.suggestions.Get(key.String()); ok {
		return html, nil
	}

	var b strings.Builder
	if err := components.SearchResults(res).Render(&b); err != nil {
		return "", err
	}
	html := b.String()
	s.suggestions.Add(key.String(), html)
	return html, nil
}
