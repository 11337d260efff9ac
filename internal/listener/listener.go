package listener

import (
	"context"
	"log/slog"
	"time"

	"politikcred/internal/assets"
	"politikcred/internal/config"
	"politikcred/internal/pipeline"
	"politikcred/internal/sources"
	"politikcred/internal/storage"
	"politikcred/internal/store"
)

// Service re-runs the full import on a fixed interval so the politicians
// table tracks the open-data sources without manual runs. Cycle failures
// are logged and the next cycle still happens.
type Service struct {
	cfg    config.Config
	db     *storage.DB
	logger *slog.Logger
}

func NewService(cfg config.Config, db *storage.DB, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, db: db, logger: logger}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			s.logger.Error("sync cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.SyncIntervalHrs) * time.Hour):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	registry, err := assets.Load(s.cfg.AssetsConfigPath)
	if err != nil {
		return err
	}

	supabase := store.NewSupabase(s.cfg)
	adapters := sources.Defaults(s.cfg, s.logger)
	svc := pipeline.NewService(s.cfg, adapters, supabase, registry, s.db, s.logger)

	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	updater := assets.NewUpdateService(supabase, registry, s.logger)
	updated, err := updater.UpdateAll(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("sync cycle done",
		"fetched", summary.TotalFetched,
		"inserted", summary.TotalInserted,
		"failed", len(summary.FailedRecords),
		"assets_updated", updated)
	return nil
}
