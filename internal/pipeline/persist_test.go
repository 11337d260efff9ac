package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"politikcred/internal"
	"politikcred/internal/store"
)

// fakeStore satisfies store.Store with overridable behaviour per test.
type fakeStore struct {
	pingErr    error
	bulkInsert func(ctx context.Context, entities []internal.PoliticalEntity) error
	insertOne  func(ctx context.Context, entity internal.PoliticalEntity) error
	findByName func(ctx context.Context, name string) (*store.Row, error)
	update     func(ctx context.Context, id int, fields map[string]any) error
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) BulkInsert(ctx context.Context, entities []internal.PoliticalEntity) error {
	if f.bulkInsert == nil {
		return nil
	}
	return f.bulkInsert(ctx, entities)
}

func (f *fakeStore) InsertOne(ctx context.Context, entity internal.PoliticalEntity) error {
	if f.insertOne == nil {
		return nil
	}
	return f.insertOne(ctx, entity)
}

func (f *fakeStore) FindByName(ctx context.Context, name string) (*store.Row, error) {
	if f.findByName == nil {
		return nil, nil
	}
	return f.findByName(ctx, name)
}

func (f *fakeStore) Update(ctx context.Context, id int, fields map[string]any) error {
	if f.update == nil {
		return nil
	}
	return f.update(ctx, id, fields)
}

func makeEntities(n int) []internal.PoliticalEntity {
	out := make([]internal.PoliticalEntity, n)
	for i := range out {
		out[i] = internal.PoliticalEntity{
			Name:     fmt.Sprintf("Person %d", i+1),
			Position: "Député",
			Source:   internal.SourceAssembly,
		}
	}
	return out
}

func TestPersistAllSucceed(t *testing.T) {
	var bulkCalls int
	st := &fakeStore{
		bulkInsert: func(ctx context.Context, entities []internal.PoliticalEntity) error {
			bulkCalls++
			return nil
		},
	}

	p := NewPersister(st, 50, 0, discardLogger())
	result := p.Persist(context.Background(), makeEntities(120))

	if result.Submitted != 120 || result.Inserted != 120 || len(result.Failed) != 0 {
		t.Fatalf("result: %+v", result)
	}
	if bulkCalls != 3 {
		t.Fatalf("bulk calls = %d want 3", bulkCalls)
	}
}

func TestPersistBatchFallbackIsolatesBadRecord(t *testing.T) {
	// One bad record in a batch of 50: the bulk call fails, the per-record
	// fallback inserts the other 49 and reports exactly one failure.
	st := &fakeStore{
		bulkInsert: func(ctx context.Context, entities []internal.PoliticalEntity) error {
			return errors.New("duplicate key value violates unique constraint")
		},
		insertOne: func(ctx context.Context, entity internal.PoliticalEntity) error {
			if entity.Name == "Person 23" {
				return errors.New("duplicate key value violates unique constraint")
			}
			return nil
		},
	}

	p := NewPersister(st, 50, 0, discardLogger())
	result := p.Persist(context.Background(), makeEntities(50))

	if result.Submitted != 50 {
		t.Fatalf("submitted = %d", result.Submitted)
	}
	if result.Inserted != 49 {
		t.Fatalf("inserted = %d want 49", result.Inserted)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed = %d want 1", len(result.Failed))
	}
	f := result.Failed[0]
	if f.Name != "Person 23" || f.Source != string(internal.SourceAssembly) || f.Error == "" {
		t.Fatalf("failed record: %+v", f)
	}
}

func TestPersistExactlyOnceAccounting(t *testing.T) {
	// Every record lands in exactly one bucket even when whole batches die.
	st := &fakeStore{
		bulkInsert: func(ctx context.Context, entities []internal.PoliticalEntity) error {
			return errors.New("connection reset")
		},
		insertOne: func(ctx context.Context, entity internal.PoliticalEntity) error {
			return errors.New("connection reset")
		},
	}

	p := NewPersister(st, 10, 0, discardLogger())
	result := p.Persist(context.Background(), makeEntities(25))

	if result.Inserted+len(result.Failed) != result.Submitted {
		t.Fatalf("accounting broken: %+v", result)
	}
	if result.Inserted != 0 || len(result.Failed) != 25 {
		t.Fatalf("result: %+v", result)
	}
}

func TestPersistFailedRecordNameFallback(t *testing.T) {
	e := internal.PoliticalEntity{Position: "Député", Source: internal.SourceSenate}
	st := &fakeStore{
		bulkInsert: func(ctx context.Context, entities []internal.PoliticalEntity) error {
			return errors.New("bad batch")
		},
		insertOne: func(ctx context.Context, entity internal.PoliticalEntity) error {
			return errors.New("bad record")
		},
	}

	p := NewPersister(st, 50, 0, discardLogger())
	result := p.Persist(context.Background(), []internal.PoliticalEntity{e})

	if len(result.Failed) != 1 || result.Failed[0].Name != "Unknown" {
		t.Fatalf("result: %+v", result)
	}
}

func TestPersistEmptyInput(t *testing.T) {
	st := &fakeStore{
		bulkInsert: func(ctx context.Context, entities []internal.PoliticalEntity) error {
			t.Fatal("bulk insert called for empty input")
			return nil
		},
	}

	p := NewPersister(st, 50, 0, discardLogger())
	result := p.Persist(context.Background(), nil)

	if result.Submitted != 0 || result.Inserted != 0 || len(result.Failed) != 0 {
		t.Fatalf("result: %+v", result)
	}
}
