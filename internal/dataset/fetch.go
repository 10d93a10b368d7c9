package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads published Google Sheets as CSV exports
type Fetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewFetcher creates a fetcher with a request timeout and a circuit
// breaker, so a flaky sheet endpoint fails fast instead of hanging the
// UI on every retry.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "google-sheets",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// FetchSheet resolves a shareable Google Sheets URL to its CSV export,
// downloads it and returns the normalized cards. An empty result set
// yields ErrNoData.
func (f *Fetcher) FetchSheet(ctx context.Context, url, gid string) ([]card.Card, error) {
	exportURL, err := CSVExportURL(url, gid)
	if err != nil {
		return nil, err
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.download(ctx, exportURL)
	})
	if err != nil {
		return nil, err
	}

	cards := result.([]card.Card)
	if len(cards) == 0 {
		return nil, ErrNoData
	}
	return cards, nil
}

func (f *Fetcher) download(ctx context.Context, exportURL string) ([]card.Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet download returned status %d (is the sheet shared publicly?)", resp.StatusCode)
	}

	return ParseCSV(resp.Body)
}
