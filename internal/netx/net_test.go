package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
)

func TestCacheBust(t *testing.T) {
	busted := CacheBust("https://example.com/catalog.json")
	u, err := url.Parse(busted)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if u.Query().Get("t") == "" {
		t.Fatalf("expected t query parameter in %q", busted)
	}

	// existing query parameters must survive
	busted = CacheBust("https://example.com/catalog.json?v=2")
	u, _ = url.Parse(busted)
	if u.Query().Get("v") != "2" {
		t.Fatalf("existing parameter lost in %q", busted)
	}
}

func TestGetJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"d1"}`))
		}))
		defer ts.Close()

		var v struct {
			ID string `json:"id"`
		}
		if err := GetJSON(context.Background(), ts.Client(), ts.URL, &v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.ID != "d1" {
			t.Fatalf("id = %q, want d1", v.ID)
		}
	})

	t.Run("non-2xx -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		var v any
		err := GetJSON(context.Background(), ts.Client(), ts.URL, &v)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "404") {
			t.Fatalf("error = %q, want to contain 404", err.Error())
		}
	})
}

func TestGetBytes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("audio-bytes"))
		}))
		defer ts.Close()

		b, err := GetBytes(context.Background(), ts.Client(), ts.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "audio-bytes" {
			t.Fatalf("body = %q", string(b))
		}
	})

	t.Run("retries 5xx then succeeds", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte("ok"))
		}))
		defer ts.Close()

		b, err := GetBytes(context.Background(), ts.Client(), ts.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "ok" {
			t.Fatalf("body = %q", string(b))
		}
		if atomic.LoadInt32(&calls) != 2 {
			t.Fatalf("calls = %d, want 2", calls)
		}
	})

	t.Run("4xx is not retried", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		_, err := GetBytes(context.Background(), ts.Client(), ts.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if atomic.LoadInt32(&calls) != 1 {
			t.Fatalf("calls = %d, want 1", calls)
		}
	})
}
