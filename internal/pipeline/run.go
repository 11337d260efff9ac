package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"politikcred/internal"
	"politikcred/internal/config"
	"politikcred/internal/sources"
	"politikcred/internal/storage"
	"politikcred/internal/store"
	"politikcred/internal/util"
)

// Service runs the full populate pipeline: drain each source adapter in
// priority order, normalize, classify, style, dedupe, persist, then record
// the run locally. Everything after the store preflight is absorbed into
// the summary; only a configuration or connectivity problem found before
// fetching starts is returned as an error.
type Service struct {
	cfg       config.Config
	adapters  []sources.Adapter
	store     store.Store
	styler    *Styler
	persister *Persister
	db        *storage.DB
	logger    *slog.Logger
}

// NewService wires the pipeline. db may be nil when no local audit mirror
// is wanted (one-off runs, tests).
func NewService(cfg config.Config, adapters []sources.Adapter, st store.Store, registry AssetRegistry, db *storage.DB, logger *slog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		adapters:  adapters,
		store:     st,
		styler:    NewStyler(registry),
		persister: NewPersister(st, cfg.BatchSize, time.Duration(cfg.BatchDelayMs)*time.Millisecond, logger),
		db:        db,
		logger:    logger,
	}
}

func (s *Service) Run(ctx context.Context) (internal.RunSummary, error) {
	if err := s.cfg.RequireStore(); err != nil {
		return internal.RunSummary{}, err
	}
	if err := s.store.Ping(ctx); err != nil {
		return internal.RunSummary{}, fmt.Errorf("store preflight: %w", err)
	}

	start := time.Now()
	trace := traceID()
	s.logger.Info("populate run starting", "trace", trace)

	var entities []internal.PoliticalEntity
	totalFetched := 0
	for _, adapter := range s.adapters {
		records, err := adapter.Fetch(ctx)
		if err != nil {
			s.logger.Warn("source unavailable, continuing without it", "source", adapter.ID(), "error", err)
			continue
		}
		s.logger.Info("source fetched", "source", adapter.ID(), "records", len(records))
		totalFetched += len(records)

		for _, raw := range records {
			e := Normalize(adapter.ID(), raw)
			if e.PoliticalOrientation == "" {
				e.PoliticalOrientation = ClassifyOrientation(e.Party)
			}
			s.styler.Style(&e)
			entities = append(entities, e)
		}
	}

	deduped := Dedupe(entities, s.logger)
	s.logger.Info("deduplication done", "fetched", totalFetched, "kept", len(deduped))

	if len(deduped) == 0 {
		s.logger.Warn("nothing to persist")
	}
	result := s.persister.Persist(ctx, deduped)

	summary := internal.RunSummary{
		TotalFetched:    totalFetched,
		TotalAfterDedup: len(deduped),
		TotalInserted:   result.Inserted,
		FailedRecords:   result.Failed,
	}

	s.recordRun(trace, start, deduped, summary)
	s.logger.Info("populate run done",
		"trace", trace,
		"fetched", summary.TotalFetched,
		"after_dedup", summary.TotalAfterDedup,
		"inserted", summary.TotalInserted,
		"failed", len(summary.FailedRecords))

	return summary, nil
}

// recordRun mirrors the run into the local sqlite audit: counters, failed
// records and a snapshot of what was just persisted. Audit problems are
// logged, never surfaced; the remote store is the source of truth.
func (s *Service) recordRun(trace string, start time.Time, persisted []internal.PoliticalEntity, summary internal.RunSummary) {
	if s.db == nil {
		return
	}

	timings := map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}
	counts := map[string]int{
		"fetched":    summary.TotalFetched,
		"afterDedup": summary.TotalAfterDedup,
		"inserted":   summary.TotalInserted,
		"failed":     len(summary.FailedRecords),
	}
	if err := s.db.InsertRun(trace, timings, counts); err != nil {
		s.logger.Error("recording run failed", "error", err)
	}
	if err := s.db.InsertFailedRecords(trace, summary.FailedRecords); err != nil {
		s.logger.Error("recording failed records failed", "error", err)
	}

	failedNames := map[string]struct{}{}
	for _, f := range summary.FailedRecords {
		failedNames[f.Name] = struct{}{}
	}

	rows := make([]internal.SnapshotRow, 0, len(persisted))
	for _, e := range persisted {
		status := "inserted"
		if _, ok := failedNames[e.Name]; ok {
			status = "failed"
		}
		rows = append(rows, internal.SnapshotRow{
			Key:          util.DedupKey(e.FirstName, e.LastName),
			Entity:       e,
			InsertStatus: status,
		})
	}
	if err := s.db.ReplaceSnapshot(rows); err != nil {
		s.logger.Error("snapshot update failed", "error", err)
	}
	_ = s.db.SetMetadata("populate.last_run", time.Now().UTC().Format(time.RFC3339))
	_ = s.db.SetMetadata("populate.last_trace", trace)
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
