package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterHTTP mounts the inspector endpoints on a chi router.
// Endpoints: POST /v1/chain, POST /v1/contains, GET /health.
func (i *Inspector) RegisterHTTP(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/chain", i.handleChain)
	r.Post("/v1/contains", i.handleContains)
}

// documentRequest names a document source: inline HTML, a URL fetched over
// HTTP, or a URL rendered in Chrome when live is set.
type documentRequest struct {
	HTML string `json:"html,omitempty"`
	URL  string `json:"url,omitempty"`
	Live bool   `json:"live,omitempty"`
}

type chainRequest struct {
	documentRequest
	Selector string `json:"selector"`
}

type chainResponse struct {
	PageURL string       `json:"page_url,omitempty"`
	Chain   []ChainEntry `json:"chain"`
}

type containsRequest struct {
	documentRequest
	Ref  string `json:"ref"`
	Node string `json:"node"`
}

type containsResponse struct {
	Contained bool `json:"contained"`
}

func (i *Inspector) handleChain(w http.ResponseWriter, r *http.Request) {
	var req chainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Selector == "" {
		writeError(w, http.StatusBadRequest, errors.New("selector is required"))
		return
	}
	if req.HTML == "" && req.URL == "" {
		writeError(w, http.StatusBadRequest, errors.New("html or url is required"))
		return
	}

	doc, err := i.loadRequested(r.Context(), req.documentRequest)
	if err != nil {
		writeError(w, sourceStatus(req.documentRequest), err)
		return
	}

	chain, err := i.Chain(doc, req.Selector)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, chainResponse{PageURL: doc.PageURL, Chain: chain})
}

func (i *Inspector) handleContains(w http.ResponseWriter, r *http.Request) {
	var req containsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Ref == "" || req.Node == "" {
		writeError(w, http.StatusBadRequest, errors.New("ref and node are required"))
		return
	}
	if req.HTML == "" && req.URL == "" {
		writeError(w, http.StatusBadRequest, errors.New("html or url is required"))
		return
	}

	doc, err := i.loadRequested(r.Context(), req.documentRequest)
	if err != nil {
		writeError(w, sourceStatus(req.documentRequest), err)
		return
	}

	contained, err := i.Contains(doc, req.Ref, req.Node)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, containsResponse{Contained: contained})
}

func (i *Inspector) loadRequested(ctx context.Context, req documentRequest) (*Document, error) {
	switch {
	case req.HTML != "":
		return i.LoadHTML([]byte(req.HTML))
	case req.URL != "" && req.Live:
		return i.LoadLive(ctx, req.URL)
	case req.URL != "":
		return i.LoadURL(ctx, req.URL)
	default:
		return nil, errors.New("inspector: html or url is required")
	}
}

// sourceStatus maps a document-loading failure to its HTTP status: inline
// HTML that fails to load is the caller's fault, while URL and live
// acquisition failures are upstream errors.
func sourceStatus(req documentRequest) int {
	if req.HTML != "" {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func statusFor(err error) int {
	if errors.Is(err, ErrNoMatch) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
