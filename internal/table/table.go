package table

import "sync"

// Table holds the columns, options and state of one table instance.
type Table[T any] struct {
	mu      sync.Mutex
	columns []Column[T]
	opts    Options[T]
	state   State
	last    View[T]
}

// New returns a table in the default state.
func New[T any](columns []Column[T], opts Options[T]) *Table[T] {
	return &Table[T]{
		columns: dedupe(columns),
		opts:    opts,
		state:   DefaultState(),
	}
}

// Columns returns the table's columns in display order.
func (t *Table[T]) Columns() []Column[T] {
	return append([]Column[T](nil), t.columns...)
}

// State returns the current state.
func (t *Table[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetState replaces the current state, for instance with one parsed from a
// request.
func (t *Table[T]) SetState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s.normalized()
}

// SetFilter sets the global filter and returns to the first page.
func (t *Table[T]) SetFilter(q string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = t.state.WithFilter(q)
}

// ToggleSort cycles the sort of columnID through none, asc and desc. Other
// columns are unsorted. Columns that cannot sort are ignored.
func (t *Table[T]) ToggleSort(columnID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.columns {
		if c.ID == columnID && c.canSort() {
			t.state = t.state.WithSort(columnID)
			return
		}
	}
}

// SetPage moves to page index i. Out-of-range indexes clamp on render.
func (t *Table[T]) SetPage(i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = t.state.WithPage(i)
}

// NextPage advances one page if the page count of the last render allows.
func (t *Table[T]) NextPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.Pagination.Hidden || t.state.PageIndex+1 >= t.last.Pagination.PageCount {
		return false
	}
	t.state.PageIndex++
	return true
}

// PrevPage goes back one page if possible.
func (t *Table[T]) PrevPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.PageIndex == 0 {
		return false
	}
	t.state.PageIndex--
	return true
}

// SetPageSize changes the page size and returns to the first page.
func (t *Table[T]) SetPageSize(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 {
		n = DefaultPageSize
	}
	t.state.PageSize = n
	t.state.PageIndex = 0
}

// ResetView restores the default state. Call it when the record list the
// table shows is replaced by a different one.
func (t *Table[T]) ResetView() {
	t.mu.Lock()
	defer t.mu.Unlock()
	source := t.state.Source
	t.state = DefaultState()
	t.state.Source = source
	t.last = View[T]{}
}

// Bind records the identity of the record list about to be rendered and
// resets the view when it differs from the one the state was built for.
// A state that names no source adopts source as is. It reports whether a
// reset happened.
func (t *Table[T]) Bind(source string) bool {
	t.mu.Lock()
	current := t.state.Source
	if current == source || current == "" {
		t.state.Source = source
		t.mu.Unlock()
		return false
	}
	t.mu.Unlock()

	t.ResetView()

	t.mu.Lock()
	t.state.Source = source
	t.mu.Unlock()
	return true
}

// Render applies the current state to records. A clamped page index is
// written back to the state.
func (t *Table[T]) Render(records []T) View[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := Apply(records, t.columns, t.opts, t.state)
	t.state.PageIndex = view.Pagination.PageIndex
	t.last = view
	return view
}

// Click dispatches OnRowClick for visible row i of the last render. It
// reports whether a handler ran.
func (t *Table[T]) Click(row int) bool {
	t.mu.Lock()
	handler := t.opts.OnRowClick
	var rec T
	ok := row >= 0 && row < len(t.last.Records)
	if ok {
		rec = t.last.Records[row]
	}
	t.mu.Unlock()

	if handler == nil || !ok {
		return false
	}
	handler(rec)
	return true
}
