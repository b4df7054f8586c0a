// Package store holds the record repositories behind every admin screen.
//
// A Repository is the only way the service layer reads or writes records.
// Memory keeps records in process and is the default; Postgres persists
// them as JSONB documents. Both satisfy the same contract so screens never
// know which one is in use.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when creating a record whose id is taken.
var ErrDuplicateID = errors.New("duplicate key: record id already exists")

// Record is implemented by every stored type. WithID returns a copy of the
// record carrying id that shares no slices with the receiver.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Repository stores records of one resource.
type Repository[T Record[T]] interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)

	// Create stores rec, assigning a new id when rec has none.
	Create(ctx context.Context, rec T) (T, error)

	// Update replaces the record with id. The stored record keeps id even
	// if rec carries another.
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// SeedIfEmpty creates recs in repo when repo holds no records yet. It
// returns the number of records created.
func SeedIfEmpty[T Record[T]](ctx context.Context, repo Repository[T], recs []T) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list existing: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, rec := range recs {
		if _, err := repo.Create(ctx, rec); err != nil {
			return i, fmt.Errorf("seed record %q: %w", rec.RecordID(), err)
		}
	}
	return len(recs), nil
}
