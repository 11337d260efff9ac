package pipeline

import (
	"context"
	"log/slog"
	"time"

	"politikcred/internal"
	"politikcred/internal/store"
)

// Persister writes the deduplicated set to the store in fixed-size
// batches, strictly in order. A failed bulk call is retried one record at
// a time so a single bad row never sinks its batch, let alone the run.
type Persister struct {
	store     store.Store
	batchSize int
	delay     time.Duration
	logger    *slog.Logger
}

func NewPersister(st store.Store, batchSize int, delay time.Duration, logger *slog.Logger) *Persister {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Persister{store: st, batchSize: batchSize, delay: delay, logger: logger}
}

type PersistResult struct {
	Submitted int
	Inserted  int
	Failed    []internal.FailedRecord
}

// Persist runs the batch state machine over all entities. Every submitted
// record ends up either in the inserted count or in Failed, never both;
// Inserted <= Submitted always holds.
func (p *Persister) Persist(ctx context.Context, entities []internal.PoliticalEntity) PersistResult {
	result := PersistResult{Submitted: len(entities), Failed: []internal.FailedRecord{}}

	for i := 0; i < len(entities); i += p.batchSize {
		end := i + p.batchSize
		if end > len(entities) {
			end = len(entities)
		}
		batch := entities[i:end]
		batchNo := i/p.batchSize + 1

		if err := p.store.BulkInsert(ctx, batch); err != nil {
			p.logger.Error("batch insert failed, falling back to per-record inserts", "batch", batchNo, "error", err)
			p.fallback(ctx, batch, &result)
			continue
		}

		result.Inserted += len(batch)
		p.logger.Info("batch inserted", "batch", batchNo, "records", len(batch))

		// Courtesy pause between bulk calls; fixed, not adaptive.
		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}

	return result
}

func (p *Persister) fallback(ctx context.Context, batch []internal.PoliticalEntity, result *PersistResult) {
	for _, entity := range batch {
		if err := p.store.InsertOne(ctx, entity); err != nil {
			name := entity.Name
			if name == "" {
				name = "Unknown"
			}
			p.logger.Error("record insert failed", "name", name, "source", entity.Source, "error", err)
			result.Failed = append(result.Failed, internal.FailedRecord{
				Name:   name,
				Source: string(entity.Source),
				Error:  err.Error(),
			})
			continue
		}
		result.Inserted++
	}
}
