package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSheetRejectsNonSheetURL(t *testing.T) {
	f := NewFetcher()

	_, err := f.FetchSheet(context.Background(), "https://example.com/whatever", "0")
	if !errors.Is(err, ErrNotSheetURL) {
		t.Errorf("Expected ErrNotSheetURL, got %v", err)
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1,漢,han,Chinese\n2,字,ja,character\n"))
	}))
	defer server.Close()

	f := NewFetcher()
	cards, err := f.download(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Hanja != "漢" {
		t.Errorf("First card = %+v", cards[0])
	}
}

func TestDownloadNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher()
	if _, err := f.download(context.Background(), server.URL); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher()
	for i := 0; i < 3; i++ {
		_, err := f.breaker.Execute(func() (interface{}, error) {
			return f.download(context.Background(), server.URL)
		})
		if err == nil {
			t.Fatalf("Expected failure on attempt %d", i)
		}
	}

	// Breaker is open now; the next call fails without hitting the server
	_, err := f.breaker.Execute(func() (interface{}, error) {
		return f.download(context.Background(), server.URL)
	})
	if err == nil {
		t.Error("Expected open breaker to reject the call")
	}
}
