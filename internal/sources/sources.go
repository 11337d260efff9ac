package sources

import (
	"context"
	"log/slog"

	"politikcred/internal"
	"politikcred/internal/config"
)

// Adapter produces the raw records for one upstream origin. Fetch may
// fail; the pipeline treats that as the whole source being unavailable
// and carries on with the others.
type Adapter interface {
	ID() internal.SourceID
	Fetch(ctx context.Context) ([]internal.RawRecord, error)
}

// Defaults returns the four adapters in dedup priority order: national
// assembly first, then senate, government, and finally the big-city
// mayors. The order is a policy contract, not a convenience.
func Defaults(cfg config.Config, logger *slog.Logger) []Adapter {
	fetcher := NewFetcher(cfg)
	return []Adapter{
		NewAssemblyAdapter(cfg, fetcher, logger),
		NewSenateAdapter(cfg, fetcher),
		NewGovernmentAdapter(cfg, fetcher, logger),
		NewMunicipalAdapter(cfg, fetcher),
	}
}
