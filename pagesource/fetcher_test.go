package pagesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcherFetch(t *testing.T) {
	const page = `<html><body><div data-node-id="1" data-ui-id="0">hi</div></body></html>`
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher(WithUserAgent("domscope-test"))
	snap, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if string(snap.HTML) != page {
		t.Errorf("HTML: got %q", snap.HTML)
	}
	if snap.PageURL != srv.URL {
		t.Errorf("PageURL: got %q, want %q", snap.PageURL, srv.URL)
	}
	if snap.ID == "" {
		t.Error("snapshot ID must be set")
	}
	if gotUA != "domscope-test" {
		t.Errorf("User-Agent: got %q", gotUA)
	}
}

func TestFetcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error: got %v", err)
	}
}

func TestFetcherContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFetcher().Fetch(ctx, srv.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
