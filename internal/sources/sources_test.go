package sources

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"politikcred/internal/util"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestFetcher(rt roundTripFunc) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Transport: rt, Timeout: 5 * time.Second},
		limiter:    util.NewRateLimiter(1000),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}
