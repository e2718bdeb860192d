package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/lupa/internal/config"
	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/internal/query"
	"github.com/hyperjump/lupa/internal/ranking"
	"github.com/hyperjump/lupa/internal/search"
)

type mockReloader struct {
	engine   *search.Engine
	docs     []*models.Document
	settings map[string]interface{}
	err      error
	calls    int
}

func (m *mockReloader) Reload(_ context.Context) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.engine.Replace(m.docs, "mock")
	return nil
}

func (m *mockReloader) Settings() map[string]interface{} {
	return m.settings
}

func newTestEngine(t *testing.T) *search.Engine {
	t.Helper()
	compiler, err := query.NewCompiler(16)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(compiler.Close)
	ranker, err := ranking.NewRanker(&ranking.RankingConfig{ParallelThreshold: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ranker.Close)

	engine := search.NewEngine(compiler, ranker, nil, nil)
	engine.Replace([]*models.Document{
		{Title: "Red Fox", URL: "/red"},
		{Title: "Blue Fox", URL: "/blue", Keywords: "fast"},
		{Title: "Gray Wolf", URL: "/gray"},
	}, "test")
	return engine
}

func newTestServer(t *testing.T, reloader Reloader) (*Server, *search.Engine) {
	t.Helper()
	engine := newTestEngine(t)
	return NewServer(engine, reloader, &config.ServerConfig{Host: "localhost", Port: 8080}, nil), engine
}

func serve(srv *Server, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) models.SearchResponse {
	t.Helper()
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleSearch_Post(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]interface{}{"query": "fox -blue", "explain": true})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := serve(srv, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %+v", resp)
	}
	if resp.Results[0].Document.Title != "Red Fox" {
		t.Errorf("title: got %q", resp.Results[0].Document.Title)
	}
	if resp.Results[0].Scores == nil {
		t.Error("expected scores with explain")
	}
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader("{"))
	w := serve(srv, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleSearch_QueryTooLong(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]string{"query": strings.Repeat("a", models.MaxQueryLength+1)})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := serve(srv, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleSearchGet(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=fox&per_page=1&page=2", nil)
	w := serve(srv, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Total != 2 || resp.PageCount != 2 || resp.Page != 2 {
		t.Errorf("paging: got total=%d pages=%d page=%d", resp.Total, resp.PageCount, resp.Page)
	}
	if len(resp.Results) != 1 || resp.Results[0].Document.Title != "Blue Fox" {
		t.Errorf("results: got %+v", resp.Results)
	}
	if resp.Results[0].Scores != nil {
		t.Error("scores should be omitted without explain")
	}
}

func TestHandleSearchGet_WordStartOff(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=ox", nil))
	if resp := decodeResponse(t, w); resp.Total != 0 {
		t.Errorf("expected no matches with word start anchoring, got %d", resp.Total)
	}

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=ox&match_word_start=false", nil))
	if resp := decodeResponse(t, w); resp.Total != 2 {
		t.Errorf("expected two matches without anchoring, got %d", resp.Total)
	}
}

func TestHandleSearchGet_InvalidParams(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	for _, target := range []string{
		"/api/v1/search?q=fox&page=two",
		"/api/v1/search?q=fox&per_page=x",
		"/api/v1/search?q=fox&match_word_end=maybe",
		"/api/v1/search?q=fox&explain=perhaps",
	} {
		w := serve(srv, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want 400", target, w.Code)
		}
	}
}

func TestHandleRecords(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Documents int    `json:"documents"`
		Source    string `json:"source"`
		LoadedAt  string `json:"loaded_at"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Documents != 3 || out.Source != "test" || out.LoadedAt == "" {
		t.Errorf("records: got %+v", out)
	}
}

func TestHandleSettings(t *testing.T) {
	mock := &mockReloader{settings: map[string]interface{}{"title": "Docs", "perPage": float64(99)}}
	srv, engine := newTestServer(t, mock)
	mock.engine = engine

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["title"] != "Docs" {
		t.Errorf("title: got %v", out["title"])
	}
	// effective values win over raw settings
	if out["perPage"] != float64(25) {
		t.Errorf("perPage: got %v", out["perPage"])
	}
	if out["matchWordStart"] != true || out["matchWordEnd"] != false {
		t.Errorf("word options: got %v %v", out["matchWordStart"], out["matchWordEnd"])
	}
	if out["paginationLength"] != float64(5) {
		t.Errorf("paginationLength: got %v", out["paginationLength"])
	}
}

func TestHandleReload(t *testing.T) {
	mock := &mockReloader{docs: []*models.Document{{Title: "Only", URL: "/only"}}}
	srv, engine := newTestServer(t, mock)
	mock.engine = engine

	w := serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	if mock.calls != 1 || engine.Count() != 1 {
		t.Errorf("reload: calls=%d count=%d", mock.calls, engine.Count())
	}
}

func TestHandleReload_Failure(t *testing.T) {
	mock := &mockReloader{err: errors.New("boom")}
	srv, engine := newTestServer(t, mock)
	mock.engine = engine

	w := serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
	if engine.Count() != 3 {
		t.Errorf("records should be kept on failed reload, got %d", engine.Count())
	}
}

func TestHandleReload_NotEnabled(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := serve(srv, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d, want 501", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body: got %s", w.Body.String())
	}
}
