package table

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used when a State carries no positive page size.
const DefaultPageSize = 10

// MaxPageSize bounds page sizes accepted from query strings.
const MaxPageSize = 100

// Direction is a column's sort direction.
type Direction string

const (
	DirNone Direction = ""
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

// Next cycles none -> asc -> desc -> none.
func (d Direction) Next() Direction {
	switch d {
	case DirNone:
		return DirAsc
	case DirAsc:
		return DirDesc
	default:
		return DirNone
	}
}

// SortSpec sorts by one column.
type SortSpec struct {
	ColumnID  string    `json:"columnId"`
	Direction Direction `json:"direction"`
}

// State is the search, sort and paging state of one table instance.
type State struct {
	GlobalFilter string     `json:"globalFilter"`
	Sort         []SortSpec `json:"sort,omitempty"`
	PageIndex    int        `json:"pageIndex"`
	PageSize     int        `json:"pageSize"`

	// Source identifies the record list the state was built against. A
	// Table resets its state when bound to a different source.
	Source string `json:"source,omitempty"`
}

// DefaultState returns an unfiltered, unsorted first page.
func DefaultState() State {
	return State{PageSize: DefaultPageSize}
}

// normalized returns s with a positive page size, a non-negative page index
// and without empty sort entries.
func (s State) normalized() State {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.PageIndex < 0 {
		s.PageIndex = 0
	}
	if len(s.Sort) > 0 {
		specs := make([]SortSpec, 0, len(s.Sort))
		for _, spec := range s.Sort {
			if spec.ColumnID == "" || (spec.Direction != DirAsc && spec.Direction != DirDesc) {
				continue
			}
			specs = append(specs, spec)
		}
		s.Sort = specs
	}
	return s
}

// SortDirection returns the direction currently applied to columnID.
func (s State) SortDirection(columnID string) Direction {
	for _, spec := range s.Sort {
		if spec.ColumnID == columnID {
			return spec.Direction
		}
	}
	return DirNone
}

// WithSort returns the state produced by activating the header of
// columnID: single-column sort, cycled, back on the first page.
func (s State) WithSort(columnID string) State {
	next := s.SortDirection(columnID).Next()
	s.Sort = nil
	if next != DirNone {
		s.Sort = []SortSpec{{ColumnID: columnID, Direction: next}}
	}
	s.PageIndex = 0
	return s
}

// WithPage returns s pointing at page index i.
func (s State) WithPage(i int) State {
	if i < 0 {
		i = 0
	}
	s.PageIndex = i
	return s
}

// WithFilter returns s filtered by q, back on the first page.
func (s State) WithFilter(q string) State {
	s.GlobalFilter = q
	s.PageIndex = 0
	return s
}

// ParseState reads a State from query parameters: q, sort, dir, page
// (1-based), size and src. Multiple sort columns are comma separated with
// matching dir entries. Malformed values fall back to defaults.
func ParseState(v url.Values) State {
	s := DefaultState()
	s.GlobalFilter = v.Get("q")
	s.Source = v.Get("src")

	if sortParam := v.Get("sort"); sortParam != "" {
		ids := strings.Split(sortParam, ",")
		dirs := strings.Split(v.Get("dir"), ",")
		for i, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			dir := DirAsc
			if i < len(dirs) && strings.EqualFold(strings.TrimSpace(dirs[i]), string(DirDesc)) {
				dir = DirDesc
			}
			s.Sort = append(s.Sort, SortSpec{ColumnID: id, Direction: dir})
		}
	}

	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 1 {
		s.PageIndex = page - 1
	}
	if size, err := strconv.Atoi(v.Get("size")); err == nil && size > 0 {
		if size > MaxPageSize {
			size = MaxPageSize
		}
		s.PageSize = size
	}

	return s
}

// Values encodes s as query parameters, omitting defaults.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.GlobalFilter != "" {
		v.Set("q", s.GlobalFilter)
	}
	if len(s.Sort) > 0 {
		ids := make([]string, 0, len(s.Sort))
		dirs := make([]string, 0, len(s.Sort))
		for _, spec := range s.Sort {
			ids = append(ids, spec.ColumnID)
			dirs = append(dirs, string(spec.Direction))
		}
		v.Set("sort", strings.Join(ids, ","))
		v.Set("dir", strings.Join(dirs, ","))
	}
	if s.PageIndex > 0 {
		v.Set("page", strconv.Itoa(s.PageIndex+1))
	}
	if s.PageSize > 0 && s.PageSize != DefaultPageSize {
		v.Set("size", strconv.Itoa(s.PageSize))
	}
	if s.Source != "" {
		v.Set("src", s.Source)
	}
	return v
}

// Query is Values().Encode() with a leading "?", or "" for the default state.
func (s State) Query() string {
	enc := s.Values().Encode()
	if enc == "" {
		return ""
	}
	return "?" + enc
}
