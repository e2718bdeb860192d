package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/internal/records"
	"github.com/hyperjump/lupa/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.search(w, r, &query)
}

func (s *Server) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromValues(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.search(w, r, query)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, query *models.SearchQuery) {
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("page", query.Page))
	response, err := s.engine.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// queryFromValues reads a search query from URL parameters.
func queryFromValues(v url.Values) (*models.SearchQuery, error) {
	q := &models.SearchQuery{Query: v.Get("q")}
	var err error
	if q.Page, err = intParam(v, "page"); err != nil {
		return nil, err
	}
	if q.PerPage, err = intParam(v, "per_page"); err != nil {
		return nil, err
	}
	if q.MatchWordStart, err = boolParam(v, "match_word_start"); err != nil {
		return nil, err
	}
	if q.MatchWordEnd, err = boolParam(v, "match_word_end"); err != nil {
		return nil, err
	}
	explain, err := boolParam(v, "explain")
	if err != nil {
		return nil, err
	}
	q.Explain = explain != nil && *explain
	return q, nil
}

func intParam(v url.Values, name string) (int, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}

func boolParam(v url.Values, name string) (*bool, error) {
	raw := v.Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &b, nil
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	source, loadedAt := s.engine.Source()
	resp := map[string]interface{}{
		"documents": s.engine.Count(),
		"source":    source,
	}
	if !loadedAt.IsZero() {
		resp["loaded_at"] = loadedAt
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleSettings returns the loaded settings with the effective search
// settings laid over them.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings := make(map[string]interface{})
	if s.reloader != nil {
		for k, v := range s.reloader.Settings() {
			settings[k] = v
		}
	}
	cfg := s.engine.SearchConfig()
	opts := cfg.Options()
	settings[records.SettingMatchWordStart] = opts.MatchWordStart
	settings[records.SettingMatchWordEnd] = opts.MatchWordEnd
	settings[records.SettingPerPage] = cfg.PerPage
	settings[records.SettingPaginationLength] = cfg.PaginationLength
	s.respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not enabled")
		return
	}
	if err := s.reloader.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "reloaded",
		"documents": s.engine.Count(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
