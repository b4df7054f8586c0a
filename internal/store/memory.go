package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Repository. Records are lost on restart. Records
// go in and come out through WithID, so callers never share a stored
// record's slices.
type Memory[T Record[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewMemory returns a repository holding recs in order.
func NewMemory[T Record[T]](recs ...T) *Memory[T] {
	m := &Memory[T]{items: make(map[string]T, len(recs))}
	for _, rec := range recs {
		id := rec.RecordID()
		if id == "" {
			id = uuid.NewString()
		}
		if _, ok := m.items[id]; ok {
			continue
		}
		m.items[id] = rec.WithID(id)
		m.order = append(m.order, id)
	}
	return m
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id].WithID(id))
	}
	return out, nil
}

func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.items[id]
	if !ok {
		return zero, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return rec.WithID(id), nil
}

func (m *Memory[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := rec.RecordID()
	if id == "" {
		id = uuid.NewString()
	}
	rec = rec.WithID(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; ok {
		return zero, fmt.Errorf("create %q: %w", id, ErrDuplicateID)
	}
	m.items[id] = rec
	m.order = append(m.order, id)
	return rec.WithID(id), nil
}

func (m *Memory[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return zero, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	rec = rec.WithID(id)
	m.items[id] = rec
	return rec.WithID(id), nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored records.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
