// Package table turns a slice of records into a searchable, sortable,
// paginated view ready for rendering.
//
// The package is generic over the record type. Columns describe how a record
// is read (accessor columns), rendered (computed columns), or acted on
// (action columns); Apply combines records, columns and a State into a View
// without touching the input slice. Table wraps Apply with the per-instance
// state transitions a list screen needs.
package table

// Tone is a presentation hint for a cell, such as a status badge colour.
type Tone string

const (
	ToneDefault Tone = ""
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneMuted   Tone = "muted"
)

// Link is a row action rendered inside a cell. Method "POST" renders as a
// form submit; Confirm, when set, is shown to the user before submitting.
type Link struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Method  string `json:"method,omitempty"`
	Confirm string `json:"confirm,omitempty"`
}

// Cell is one rendered table cell.
type Cell struct {
	Text  string `json:"text"`
	Tone  Tone   `json:"tone,omitempty"`
	Links []Link `json:"links,omitempty"`
}

type columnKind int

const (
	kindAccessor columnKind = iota
	kindComputed
	kindActions
)

// Column describes one table column. Build columns with Accessor, Computed or
// Actions; the zero value renders an empty cell.
type Column[T any] struct {
	ID       string
	Header   string
	Sortable bool

	// Get reads the underlying value for accessor columns. It drives
	// filtering on this column's ID and default sorting.
	Get func(T) any

	// Render overrides the default text rendering of Get.
	Render func(T) Cell

	// Compare orders two records for this column. It takes precedence over
	// the default value ordering.
	Compare func(a, b T) int

	kind columnKind
}

// Accessor returns a sortable column reading one field of the record.
func Accessor[T any](key, header string, get func(T) any) Column[T] {
	return Column[T]{
		ID:       key,
		Header:   header,
		Sortable: true,
		Get:      get,
		kind:     kindAccessor,
	}
}

// Computed returns a column whose cell is derived from the whole record.
// It is not sortable unless a comparator is attached with WithCompare.
func Computed[T any](id, header string, render func(T) Cell) Column[T] {
	return Column[T]{
		ID:     id,
		Header: header,
		Render: render,
		kind:   kindComputed,
	}
}

// Action is one row-level link of an action column.
type Action[T any] struct {
	Label   string
	Href    func(T) string
	Method  string
	Confirm string

	// Hidden, when set, suppresses the action for some records.
	Hidden func(T) bool
}

// Actions returns a column that renders row actions. The engine only lays
// the links out; what they do is up to whoever serves the hrefs.
func Actions[T any](id, header string, actions ...Action[T]) Column[T] {
	return Column[T]{
		ID:     id,
		Header: header,
		Render: func(rec T) Cell {
			links := make([]Link, 0, len(actions))
			for _, a := range actions {
				if a.Hidden != nil && a.Hidden(rec) {
					continue
				}
				href := ""
				if a.Href != nil {
					href = a.Href(rec)
				}
				links = append(links, Link{
					Label:   a.Label,
					Href:    href,
					Method:  a.Method,
					Confirm: a.Confirm,
				})
			}
			return Cell{Links: links}
		},
		kind: kindActions,
	}
}

// WithRender returns a copy of c using render for its cells.
func (c Column[T]) WithRender(render func(T) Cell) Column[T] {
	c.Render = render
	return c
}

// WithCompare returns a sortable copy of c ordered by cmp.
func (c Column[T]) WithCompare(cmp func(a, b T) int) Column[T] {
	c.Compare = cmp
	c.Sortable = true
	return c
}

// NoSort returns a copy of c that ignores sort requests.
func (c Column[T]) NoSort() Column[T] {
	c.Sortable = false
	return c
}

// IsAction reports whether c was built by Actions.
func (c Column[T]) IsAction() bool {
	return c.kind == kindActions
}

func (c Column[T]) cell(rec T) Cell {
	if c.Render != nil {
		return c.Render(rec)
	}
	if c.Get != nil {
		s, _ := stringify(c.Get(rec))
		return Cell{Text: s}
	}
	return Cell{}
}

func (c Column[T]) canSort() bool {
	return c.Sortable && (c.Compare != nil || c.Get != nil)
}

// dedupe keeps the first column for each ID and preserves order.
func dedupe[T any](columns []Column[T]) []Column[T] {
	seen := make(map[string]bool, len(columns))
	out := make([]Column[T], 0, len(columns))
	for _, c := range columns {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
