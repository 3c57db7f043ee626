package inspector

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	insp := testInspector(t)
	r := chi.NewRouter()
	insp.RegisterHTTP(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPHealth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestHTTPChain(t *testing.T) {
	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/v1/chain", map[string]any{
		"html":     appFixture,
		"selector": "#inner",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var body chainResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Chain) != 3 {
		t.Fatalf("chain length: got %d, want 3", len(body.Chain))
	}
	if body.Chain[0].NodeID != 1 || body.Chain[2].NodeID != 3 {
		t.Errorf("chain order: got %+v", body.Chain)
	}
}

func TestHTTPChainValidation(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		req  map[string]any
		want int
	}{
		{"missing selector", map[string]any{"html": appFixture}, http.StatusBadRequest},
		{"missing source", map[string]any{"selector": "#inner"}, http.StatusBadRequest},
		{"selector matches nothing", map[string]any{"html": appFixture, "selector": "#nope"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := postJSON(t, srv.URL+"/v1/chain", tt.req)
		if resp.StatusCode != tt.want {
			t.Errorf("%s: status got %d, want %d", tt.name, resp.StatusCode, tt.want)
		}
	}
}

func TestHTTPChainFetchFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/v1/chain", map[string]any{
		"url":      upstream.URL,
		"selector": "div",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", resp.StatusCode)
	}
}

func TestHTTPContains(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contains", map[string]any{
		"html": appFixture,
		"ref":  "#form",
		"node": "#inner",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var body containsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Contained {
		t.Error("contained: got false, want true")
	}
}

func TestHTTPContainsValidation(t *testing.T) {
	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/v1/contains", map[string]any{
		"html": appFixture,
		"ref":  "#form",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}
