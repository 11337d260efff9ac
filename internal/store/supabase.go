package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"politikcred/internal"
	"politikcred/internal/config"
	"politikcred/internal/util"
)

// Supabase talks to the politicians table through the PostgREST surface:
// plain HTTP with apikey/bearer headers, retry with backoff on transient
// statuses, and client-side rate limiting.
type Supabase struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *util.RateLimiter
}

func NewSupabase(cfg config.Config) *Supabase {
	return &Supabase{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.SupabaseTimeout) * time.Millisecond},
		limiter:    util.NewRateLimiter(cfg.SupabaseRateRPS),
	}
}

func (s *Supabase) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")
	_, err := s.do(ctx, http.MethodGet, query, nil)
	return err
}

func (s *Supabase) BulkInsert(ctx context.Context, entities []internal.PoliticalEntity) error {
	if len(entities) == 0 {
		return nil
	}
	body, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodPost, nil, body)
	return err
}

func (s *Supabase) InsertOne(ctx context.Context, entity internal.PoliticalEntity) error {
	body, err := json.Marshal([]internal.PoliticalEntity{entity})
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodPost, nil, body)
	return err
}

func (s *Supabase) FindByName(ctx context.Context, name string) (*Row, error) {
	query := url.Values{}
	query.Set("select", "id,name")
	query.Set("name", "ilike.*"+name+"*")
	query.Set("limit", "1")

	body, err := s.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Supabase) Update(ctx context.Context, id int, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	query := url.Values{}
	query.Set("id", "eq."+strconv.Itoa(id))
	_, err = s.do(ctx, http.MethodPatch, query, body)
	return err
}

func (s *Supabase) do(ctx context.Context, method string, query url.Values, body []byte) ([]byte, error) {
	if strings.TrimSpace(s.cfg.SupabaseKey) == "" {
		return nil, errors.New("missing SUPABASE_ANON_KEY")
	}

	endpoint := strings.TrimRight(s.cfg.SupabaseURL, "/") + "/rest/v1/" + s.cfg.SupabaseTable
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		s.limiter.WaitTurn()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("apikey", s.cfg.SupabaseKey)
		req.Header.Set("Authorization", "Bearer "+s.cfg.SupabaseKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Prefer", "return=minimal")
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("supabase status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("supabase api error: status=%d body=%s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	if lastErr == nil {
		lastErr = errors.New("supabase request failed")
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
