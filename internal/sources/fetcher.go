package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"politikcred/internal/config"
	"politikcred/internal/util"
)

// Fetcher is the shared HTTP download path for all adapters: one client,
// one rate limiter, retry with backoff on transient statuses. The
// open-data portals are slow and occasionally flaky, never authenticated.
type Fetcher struct {
	httpClient *http.Client
	limiter    *util.RateLimiter
}

func NewFetcher(cfg config.Config) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    util.NewRateLimiter(cfg.FetchRateRPS),
	}
}

func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		f.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json, text/csv, text/html, */*")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 3 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("fetch status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("fetch error: url=%s status=%d", rawURL, resp.StatusCode)
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("fetch failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
