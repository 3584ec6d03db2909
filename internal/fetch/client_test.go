// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/racemap/cell-service/internal/config"
)

func testUpstreamConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		RequestTimeout: 2 * time.Second,
		MaxRetries:     3,
	}
}

func TestClientFetchFullSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := NewClient(testUpstreamConfig(srv.URL))
	body, err := c.FetchFull(context.Background())
	if err != nil {
		t.Fatalf("FetchFull: %v", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("body = %q, want %q", data, "payload")
	}
}

func TestClientFetchDiffNotYetPublished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(testUpstreamConfig(srv.URL))
	_, err := c.FetchDiff(context.Background(), time.Now())
	if !errors.Is(err, ErrNotYetPublished) {
		t.Fatalf("err = %v, want ErrNotYetPublished", err)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(testUpstreamConfig(srv.URL))
	body, err := c.FetchFull(context.Background())
	if err != nil {
		t.Fatalf("FetchFull: %v", err)
	}
	_ = body.Close()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClientGivesUpAfterMaxRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testUpstreamConfig(srv.URL)
	cfg.MaxRetries = 2
	c := NewClient(cfg)

	_, err := c.FetchFull(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if errors.Is(err, ErrNotYetPublished) {
		t.Error("500 responses should not surface as ErrNotYetPublished")
	}
}
