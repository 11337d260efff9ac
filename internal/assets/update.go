package assets

import (
	"context"
	"log/slog"

	"politikcred/internal/store"
)

// UpdateService attaches asset URLs to already-persisted rows: a separate
// idempotent post-pass, not part of the populate run. Each registry entry
// is resolved by name and point-updated; rows that are missing or fail to
// update are logged and skipped.
type UpdateService struct {
	store    store.Store
	registry *Registry
	logger   *slog.Logger
}

func NewUpdateService(st store.Store, registry *Registry, logger *slog.Logger) *UpdateService {
	return &UpdateService{store: st, registry: registry, logger: logger}
}

func (s *UpdateService) UpdateAll(ctx context.Context) (int, error) {
	updated := 0

	for _, entry := range s.registry.Entries() {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		row, err := s.store.FindByName(ctx, entry.Name)
		if err != nil {
			s.logger.Error("asset lookup failed", "name", entry.Name, "error", err)
			continue
		}
		if row == nil {
			s.logger.Warn("no persisted row for asset entry", "name", entry.Name)
			continue
		}

		fields := map[string]any{}
		if entry.Links.AvatarURL != nil {
			fields["avatar_url"] = *entry.Links.AvatarURL
		}
		if entry.Links.AnimationURL != nil {
			fields["animation_url"] = *entry.Links.AnimationURL
		}
		if len(fields) == 0 {
			continue
		}

		if err := s.store.Update(ctx, row.ID, fields); err != nil {
			s.logger.Error("asset update failed", "name", entry.Name, "error", err)
			continue
		}

		s.logger.Info("assets attached", "name", entry.Name, "id", row.ID)
		updated++
	}

	return updated, nil
}
