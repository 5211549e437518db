// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP. One inbound operation:
// POST /search. See docs/ARCHITECTURE.md § HTTP Surface.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/research-assistant/internal/feed"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// defaultMaxResults is applied when a request omits max_results.
const defaultMaxResults = 5

// Searcher runs one query through the pipeline. *pipeline.Orchestrator
// implements it.
type Searcher interface {
	Run(ctx context.Context, query string, maxResults int) (*types.Bundle, error)
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// SearchHandler serves the search endpoint.
type SearchHandler struct {
	pipeline Searcher
}

// NewSearchHandler returns a handler over the given pipeline.
func NewSearchHandler(pipeline Searcher) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

// Search handles POST /search. Hard pipeline failures map to a single
// generic error body; the internal cause goes to the log only.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
		return
	}
	if req.MaxResults == 0 {
		req.MaxResults = defaultMaxResults
	}
	if req.MaxResults < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_results must be a positive integer"})
		return
	}

	// The request context cancels in-flight summarization calls when the
	// client disconnects.
	bundle, err := h.pipeline.Run(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		slog.Error("search failed", "query", req.Query, "error", err)

		status := http.StatusInternalServerError
		var fe *feed.FetchError
		if errors.As(err, &fe) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// Healthz handles GET /healthz.
func (h *SearchHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter wires the handler into a gin engine.
func NewRouter(h *SearchHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/search", h.Search)
	r.GET("/healthz", h.Healthz)
	return r
}
