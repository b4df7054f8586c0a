package store

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func (w widget) RecordID() string { return w.ID }

func (w widget) WithID(id string) widget {
	w.ID = id
	return w
}

func TestNewMemory_SkipsDuplicatesAndAssignsIDs(t *testing.T) {
	m := NewMemory(
		widget{ID: "1", Name: "first"},
		widget{ID: "1", Name: "dupe"},
		widget{Name: "anonymous"},
	)

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	got, _ := m.List(context.Background())
	if got[0].Name != "first" {
		t.Errorf("first record = %+v, want the first occurrence kept", got[0])
	}
	if got[1].ID == "" {
		t.Error("record without id was not assigned one")
	}
}

func TestMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[widget]()

	created, err := m.Create(ctx, widget{Name: "bolt", Qty: 3})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	if _, err := m.Create(ctx, widget{ID: created.ID}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate Create err = %v, want ErrDuplicateID", err)
	}

	got, err := m.Get(ctx, created.ID)
	if err != nil || got.Name != "bolt" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	updated, err := m.Update(ctx, created.ID, widget{ID: "ignored", Name: "nut", Qty: 5})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.Name != "nut" {
		t.Errorf("Update = %+v, want id %s kept", updated, created.ID)
	}

	if err := m.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[widget]()

	tests := []struct {
		name string
		run  func() error
	}{
		{"get", func() error { _, err := m.Get(ctx, "x"); return err }},
		{"update", func() error { _, err := m.Update(ctx, "x", widget{}); return err }},
		{"delete", func() error { return m.Delete(ctx, "x") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestMemory_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(widget{ID: "a"}, widget{ID: "b"}, widget{ID: "c"})

	if err := m.Delete(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(ctx, widget{ID: "d"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Update(ctx, "a", widget{Name: "changed"}); err != nil {
		t.Fatal(err)
	}

	got, _ := m.List(ctx)
	var ids []string
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	want := []string{"a", "c", "d"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestMemory_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(widget{ID: "a", Name: "original"})

	got, _ := m.List(ctx)
	got[0].Name = "mutated"

	again, _ := m.Get(ctx, "a")
	if again.Name != "original" {
		t.Errorf("stored record changed through List result: %+v", again)
	}
}

type tagged struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

func (r tagged) RecordID() string { return r.ID }

func (r tagged) WithID(id string) tagged {
	r.ID = id
	r.Tags = slices.Clone(r.Tags)
	return r
}

func TestMemory_SlicesNotShared(t *testing.T) {
	ctx := context.Background()
	in := tagged{ID: "a", Tags: []string{"one", "two"}}
	m := NewMemory[tagged]()
	if _, err := m.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	in.Tags[0] = "changed by caller"

	listed, _ := m.List(ctx)
	listed[0].Tags[1] = "changed through List"
	got, _ := m.Get(ctx, "a")
	got.Tags = append(got.Tags[:0], "changed through Get")

	again, _ := m.Get(ctx, "a")
	if len(again.Tags) != 2 || again.Tags[0] != "one" || again.Tags[1] != "two" {
		t.Errorf("stored tags = %v, want [one two]", again.Tags)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory(widget{ID: "a"})
	if _, err := m.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("List err = %v, want context.Canceled", err)
	}
	if _, err := m.Create(ctx, widget{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Create err = %v, want context.Canceled", err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	seed := []widget{{ID: "1"}, {ID: "2"}}

	m := NewMemory[widget]()
	n, err := SeedIfEmpty[widget](ctx, m, seed)
	if err != nil || n != 2 {
		t.Fatalf("SeedIfEmpty = %d, %v; want 2, nil", n, err)
	}

	n, err = SeedIfEmpty[widget](ctx, m, seed)
	if err != nil || n != 0 {
		t.Errorf("second SeedIfEmpty = %d, %v; want 0, nil", n, err)
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}
