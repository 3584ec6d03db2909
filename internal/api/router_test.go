// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/racemap/cell-service/internal/store"
)

func TestRouterHealth(t *testing.T) {
	srv := httptest.NewServer(NewRouter(store.NewMemStore()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "OK" {
		t.Errorf("body = %q, want %q", string(body), "OK")
	}
}

func TestRouterMetrics(t *testing.T) {
	srv := httptest.NewServer(NewRouter(store.NewMemStore()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRouterLookupRateLimit(t *testing.T) {
	srv := httptest.NewServer(NewRouter(store.NewMemStore()))
	defer srv.Close()

	var last *http.Response
	for i := 0; i < lookupBurst+5; i++ {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/cells/lookup", bytes.NewBufferString(`{"cells":[]}`))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "198.51.100.7")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		last = resp
	}

	if last.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected eventual 429, got %d", last.StatusCode)
	}
}
