package feed

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcherRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "Realty Desk/test" {
			t.Errorf("Unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	fetcher := NewFetcher(NewHTTPClient(), "Realty Desk/test")
	data, err := fetcher.Run(context.Background(), server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != sampleFeed {
		t.Error("Expected body to be returned unchanged")
	}
}

func TestFetcherHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	fetcher := NewFetcher(NewHTTPClient(), "Realty Desk/test")
	if _, err := fetcher.Run(context.Background(), server.URL, 5*time.Second); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestFetcherTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(NewHTTPClient(), "Realty Desk/test")
	if _, err := fetcher.Run(context.Background(), server.URL, 50*time.Millisecond); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestFetcherBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("a"), maxFeedSize+1))
	}))
	defer server.Close()

	fetcher := NewFetcher(NewHTTPClient(), "Realty Desk/test")
	_, err := fetcher.Run(context.Background(), server.URL, 5*time.Second)
	if !errors.Is(err, ErrFeedTooLarge) {
		t.Errorf("Expected ErrFeedTooLarge, got: %v", err)
	}
}

func TestFetcherBodyAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("a"), maxFeedSize))
	}))
	defer server.Close()

	fetcher := NewFetcher(NewHTTPClient(), "Realty Desk/test")
	data, err := fetcher.Run(context.Background(), server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(data) != maxFeedSize {
		t.Errorf("Expected %d bytes, got %d", maxFeedSize, len(data))
	}
}
