package store

import (
	"context"

	"politikcred/internal"
)

// Row is the store's view of a persisted entity: just enough identity to
// address point updates.
type Row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store is the persistence contract the pipeline consumes: a bulk upsert
// for batches, a single-record insert for the fallback path, and point
// lookup/update for the asset post-pass. Transport, auth and storage
// format stay behind this interface.
type Store interface {
	Ping(ctx context.Context) error
	BulkInsert(ctx context.Context, entities []internal.PoliticalEntity) error
	InsertOne(ctx context.Context, entity internal.PoliticalEntity) error
	FindByName(ctx context.Context, name string) (*Row, error)
	Update(ctx context.Context, id int, fields map[string]any) error
}
