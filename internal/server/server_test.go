// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/internal/feed"
	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

type fakeSearcher struct {
	bundle    *types.Bundle
	err       error
	gotQuery  string
	gotMaxRes int
}

func (f *fakeSearcher) Run(_ context.Context, query string, maxResults int) (*types.Bundle, error) {
	f.gotQuery = query
	f.gotMaxRes = maxResults
	return f.bundle, f.err
}

func newTestRouter(s Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewSearchHandler(s))
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSearch_ReturnsBundle(t *testing.T) {
	searcher := &fakeSearcher{bundle: &types.Bundle{
		Papers:    []types.Paper{{ID: "a", Title: "Paper A", Link: "a"}},
		Summaries: []types.Digest{{Bullets: []string{"point"}}},
		Citations: []types.Citation{{APA: "apa", BibTeX: "bib"}},
		Graph: types.Graph{
			Nodes: []types.GraphNode{{ID: "p0", Label: "Paper A"}},
		},
	}}
	r := newTestRouter(searcher)

	w := post(r, `{"query": "graph neural networks", "max_results": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var b types.Bundle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Len(t, b.Papers, 1)
	assert.Len(t, b.Summaries, 1)
	assert.Len(t, b.Citations, 1)
	assert.Equal(t, "graph neural networks", searcher.gotQuery)
	assert.Equal(t, 2, searcher.gotMaxRes)
}

func TestSearch_DefaultMaxResults(t *testing.T) {
	searcher := &fakeSearcher{bundle: &types.Bundle{}}
	r := newTestRouter(searcher)

	w := post(r, `{"query": "quantum"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, searcher.gotMaxRes)
}

func TestSearch_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing query", `{"max_results": 3}`},
		{"negative max_results", `{"query": "q", "max_results": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{bundle: &types.Bundle{}}
			w := post(newTestRouter(searcher), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSearch_FetchFailureIs502(t *testing.T) {
	cause := &feed.FetchError{Query: "q", Err: errors.New("connection refused")}
	searcher := &fakeSearcher{err: &pipeline.Error{Msg: "search failed", Err: cause}}
	r := newTestRouter(searcher)

	w := post(r, `{"query": "q"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Only the generic message leaks outward.
	assert.Equal(t, `{"error":"search failed"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestSearch_OtherFailureIs500(t *testing.T) {
	searcher := &fakeSearcher{err: &pipeline.Error{Msg: "search failed", Err: errors.New("boom")}}
	r := newTestRouter(searcher)

	w := post(r, `{"query": "q"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"search failed"}`, w.Body.String())
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&fakeSearcher{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
