package pipeline

import (
	"log/slog"

	"politikcred/internal"
	"politikcred/internal/util"
)

// Dedupe collapses the concatenated source output to one entity per
// identity key in a single left-to-right pass: the input arrives in fixed
// source priority order and the first occurrence of a key wins. Entities
// failing the validity invariant (empty name or position, degenerate key)
// are dropped before any key comparison.
func Dedupe(entities []internal.PoliticalEntity, logger *slog.Logger) []internal.PoliticalEntity {
	seen := map[string]struct{}{}
	out := make([]internal.PoliticalEntity, 0, len(entities))

	for _, e := range entities {
		key := util.DedupKey(e.FirstName, e.LastName)

		if e.Name == "" || e.Position == "" || key == "_" {
			logger.Debug("dropping invalid entity", "source", e.Source, "name", e.Name, "position", e.Position)
			continue
		}

		if _, ok := seen[key]; ok {
			logger.Debug("dropping duplicate entity", "key", key, "source", e.Source)
			continue
		}

		seen[key] = struct{}{}
		out = append(out, e)
	}

	return out
}
