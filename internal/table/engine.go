package table

import (
	"sort"
	"strings"
)

// DefaultEmptyMessage is shown when no record survives filtering.
const DefaultEmptyMessage = "No data available"

// Options configures a table independently of its state.
type Options[T any] struct {
	// SearchKey restricts the global filter to one field. It resolves to the
	// accessor column with that ID, else to the record field with that JSON
	// or Go name.
	SearchKey         string
	SearchPlaceholder string

	// HidePagination renders every filtered record; the caller pages
	// externally.
	HidePagination bool

	OnRowClick   func(T)
	RowHref      func(T) string
	EmptyMessage string
}

// Header is one rendered column header.
type Header struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Sortable  bool      `json:"sortable"`
	Direction Direction `json:"direction,omitempty"`
	Action    bool      `json:"action,omitempty"`
}

// Row is one rendered table row.
type Row struct {
	Cells []Cell `json:"cells"`
	Href  string `json:"href,omitempty"`
}

// Pagination describes the visible slice of the filtered records. From and
// To are 1-based and inclusive; both are 0 when nothing matched.
type Pagination struct {
	PageIndex int  `json:"pageIndex"`
	PageSize  int  `json:"pageSize"`
	PageCount int  `json:"pageCount"`
	Total     int  `json:"total"`
	From      int  `json:"from"`
	To        int  `json:"to"`
	HasPrev   bool `json:"hasPrev"`
	HasNext   bool `json:"hasNext"`
	Hidden    bool `json:"hidden"`
}

// Grid is the record-type independent part of a View, which is all the
// HTML layer needs.
type Grid struct {
	Headers           []Header   `json:"headers"`
	Rows              []Row      `json:"rows"`
	Empty             bool       `json:"empty"`
	EmptyMessage      string     `json:"emptyMessage,omitempty"`
	ColSpan           int        `json:"colSpan"`
	Pagination        Pagination `json:"pagination"`
	SearchKey         string     `json:"searchKey,omitempty"`
	SearchPlaceholder string     `json:"searchPlaceholder,omitempty"`
	State             State      `json:"state"`
}

// View is the result of Apply. Records[i] is the record behind Rows[i].
type View[T any] struct {
	Grid
	Records []T `json:"records"`
}

// Apply filters, sorts and paginates records. It never modifies records or
// columns and is safe for concurrent use.
func Apply[T any](records []T, columns []Column[T], opts Options[T], state State) View[T] {
	cols := dedupe(columns)
	state = state.normalized()

	matched := filterRecords(records, cols, opts.SearchKey, state.GlobalFilter)
	sortRecords(matched, cols, state.Sort)

	total := len(matched)
	page := Pagination{
		PageSize: state.PageSize,
		Total:    total,
		Hidden:   opts.HidePagination,
	}

	visible := matched
	if opts.HidePagination {
		page.PageCount = 1
		state.PageIndex = 0
		if total > 0 {
			page.From, page.To = 1, total
		}
	} else {
		page.PageCount = (total + state.PageSize - 1) / state.PageSize
		if page.PageCount < 1 {
			page.PageCount = 1
		}
		if state.PageIndex > page.PageCount-1 {
			state.PageIndex = page.PageCount - 1
		}
		start := state.PageIndex * state.PageSize
		end := min(start+state.PageSize, total)
		visible = matched[start:end]
		if total > 0 {
			page.From, page.To = start+1, end
		}
		page.HasPrev = state.PageIndex > 0
		page.HasNext = state.PageIndex < page.PageCount-1
	}
	page.PageIndex = state.PageIndex

	headers := make([]Header, len(cols))
	for i, c := range cols {
		headers[i] = Header{
			ID:       c.ID,
			Label:    c.Header,
			Sortable: c.canSort(),
			Action:   c.IsAction(),
		}
		if headers[i].Sortable {
			headers[i].Direction = state.SortDirection(c.ID)
		}
	}

	rows := make([]Row, len(visible))
	for i, rec := range visible {
		cells := make([]Cell, len(cols))
		for j, c := range cols {
			cells[j] = c.cell(rec)
		}
		rows[i] = Row{Cells: cells}
		if opts.RowHref != nil {
			rows[i].Href = opts.RowHref(rec)
		}
	}

	view := View[T]{
		Grid: Grid{
			Headers:           headers,
			Rows:              rows,
			ColSpan:           max(len(cols), 1),
			Pagination:        page,
			SearchKey:         opts.SearchKey,
			SearchPlaceholder: opts.SearchPlaceholder,
			State:             state,
		},
		Records: visible,
	}
	if len(visible) == 0 {
		view.Empty = true
		view.EmptyMessage = opts.EmptyMessage
		if view.EmptyMessage == "" {
			view.EmptyMessage = DefaultEmptyMessage
		}
	}
	return view
}

// filterRecords returns a new slice holding the records that match filter.
func filterRecords[T any](records []T, cols []Column[T], searchKey, filter string) []T {
	out := make([]T, 0, len(records))
	needle := strings.ToLower(filter)
	if needle == "" {
		return append(out, records...)
	}

	candidates := candidateFunc(cols, searchKey)
	for _, rec := range records {
		for _, val := range candidates(rec) {
			s, ok := stringify(val)
			if ok && strings.Contains(strings.ToLower(s), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// candidateFunc resolves which values of a record the filter inspects.
func candidateFunc[T any](cols []Column[T], searchKey string) func(T) []any {
	if searchKey == "" {
		return func(rec T) []any { return fieldValues(rec) }
	}
	for _, c := range cols {
		if c.ID == searchKey && c.Get != nil {
			get := c.Get
			return func(rec T) []any { return []any{get(rec)} }
		}
	}
	return func(rec T) []any {
		if v, ok := fieldValue(rec, searchKey); ok {
			return []any{v}
		}
		return nil
	}
}

// sortRecords stably sorts records in place by specs, in order.
func sortRecords[T any](records []T, cols []Column[T], specs []SortSpec) {
	type keyed struct {
		cmp  func(a, b T) int
		desc bool
	}

	var keys []keyed
	for _, spec := range specs {
		for _, c := range cols {
			if c.ID != spec.ColumnID || !c.canSort() {
				continue
			}
			cmpFn := c.Compare
			if cmpFn == nil {
				get := c.Get
				cmpFn = func(a, b T) int { return compareValues(get(a), get(b)) }
			}
			keys = append(keys, keyed{cmp: cmpFn, desc: spec.Direction == DirDesc})
			break
		}
	}
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		for _, k := range keys {
			c := k.cmp(records[i], records[j])
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}
