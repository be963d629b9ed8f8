package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSourceFetcherRemote(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte("certifications: []"))
	}))
	defer server.Close()

	fetcher := NewSourceFetcher(server.Client(), "Portfolio/Test", time.Second)
	data, err := fetcher.Fetch(context.Background(), server.URL+"/certifications.yml")
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "certifications: []" {
		t.Errorf("Unexpected body %q", data)
	}
	if userAgent != "Portfolio/Test" {
		t.Errorf("Expected user agent 'Portfolio/Test', got '%s'", userAgent)
	}
}

func TestSourceFetcherHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewSourceFetcher(server.Client(), "Portfolio/Test", time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected network failure, got %v", err)
	}
}

func TestSourceFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewSourceFetcher(server.Client(), "Portfolio/Test", 50*time.Millisecond)

	start := time.Now()
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected network failure on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected fetch to abort quickly, took %v", elapsed)
	}
}

func TestSourceFetcherLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yml")
	if err := os.WriteFile(path, []byte("projects: []"), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewSourceFetcher(http.DefaultClient, "Portfolio/Test", time.Second)

	data, err := fetcher.Fetch(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "projects: []" {
		t.Errorf("Unexpected content %q", data)
	}

	if _, err := fetcher.Fetch(context.Background(), "file://"+path); err != nil {
		t.Errorf("Expected file:// locator to be readable, got %v", err)
	}

	_, err = fetcher.Fetch(context.Background(), filepath.Join(dir, "missing.yml"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected network failure for missing file, got %v", err)
	}
}

func TestSourceFetcherCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewSourceFetcher(http.DefaultClient, "Portfolio/Test", time.Second)
	if _, err := fetcher.Fetch(ctx, "projects.yml"); !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected network failure for cancelled context, got %v", err)
	}
}

func TestSourceFetcherRejectsOversizedPayload(t *testing.T) {
	payload := "certifications:\n  - name: \"Certification number 000001\"\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "certifications.yml")
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewSourceFetcher(server.Client(), "Portfolio/Test", time.Second)
	fetcher.maxPayload = int64(len(payload)) - 1

	if _, err := fetcher.Fetch(context.Background(), server.URL); !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected oversized remote payload to fail, got %v", err)
	}
	if _, err := fetcher.Fetch(context.Background(), path); !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected oversized local file to fail, got %v", err)
	}

	fetcher.maxPayload = int64(len(payload))

	data, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected payload at the limit to be accepted, got %v", err)
	}
	if string(data) != payload {
		t.Errorf("Expected full payload, got %q", data)
	}
	if _, err := fetcher.Fetch(context.Background(), path); err != nil {
		t.Errorf("Expected local file at the limit to be accepted, got %v", err)
	}
}
