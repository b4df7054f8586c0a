package templates

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ipoadmin/internal/table"
)

// TableParams renders a table.Grid. Base is the path the search, sort and
// pager links point at; the grid's state is appended as a query string.
type TableParams struct {
	Grid table.Grid
	Base string

	// Params ride along on every search, sort and pager link. They must not
	// use the keys table.ParseState reads.
	Params url.Values

	// Search shows the filter box above the table.
	Search bool
}

// href links to Base with s and Params as the query string.
func (p TableParams) href(s table.State) string {
	v := s.Values()
	for key, vals := range p.Params {
		v[key] = vals
	}
	if enc := v.Encode(); enc != "" {
		return p.Base + "?" + enc
	}
	return p.Base
}

// Table renders the toolbar, grid and pager of a list screen, wrapped in a
// container HTMX requests can swap.
func Table(p TableParams) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"card\" id=\"table-container\">")
		if p.Search {
			h.render(searchBox(p))
		}
		h.render(TableBody(p))
		h.raw("</div>")
	})
}

func searchBox(p TableParams) templ.Component {
	return component(func(h *html) {
		state := p.Grid.State
		placeholder := p.Grid.SearchPlaceholder
		if placeholder == "" {
			placeholder = "Search..."
		}

		h.raw("<form class=\"toolbar\" method=\"get\"")
		h.attr("action", p.Base)
		h.raw("><input type=\"search\" name=\"q\"")
		h.attr("value", state.GlobalFilter)
		h.attr("placeholder", placeholder)
		h.raw(">")
		hidden := state.WithFilter("").Values()
		for key, vals := range p.Params {
			hidden[key] = vals
		}
		keys := make([]string, 0, len(hidden))
		for key := range hidden {
			if key != "page" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, v := range hidden[key] {
				h.raw("<input type=\"hidden\"")
				h.attr("name", key)
				h.attr("value", v)
				h.raw(">")
			}
		}
		h.raw("<button class=\"btn secondary\" type=\"submit\">Search</button></form>")
	})
}

// TableBody renders the grid and its pager without the search box.
func TableBody(p TableParams) templ.Component {
	return component(func(h *html) {
		g := p.Grid

		h.raw("<table><thead><tr>")
		for _, hd := range g.Headers {
			h.raw("<th")
			h.attr("data-column", hd.ID)
			h.raw(">")
			if hd.Sortable {
				h.raw("<a")
				h.href(p.href(g.State.WithSort(hd.ID)))
				h.raw(">")
				h.text(hd.Label)
				switch hd.Direction {
				case table.DirAsc:
					h.raw(" &#9650;")
				case table.DirDesc:
					h.raw(" &#9660;")
				}
				h.raw("</a>")
			} else {
				h.text(hd.Label)
			}
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")

		if g.Empty {
			h.raw("<tr><td class=\"empty\"")
			h.attr("colspan", fmt.Sprint(g.ColSpan))
			h.raw(">")
			h.text(g.EmptyMessage)
			h.raw("</td></tr>")
		}
		for _, row := range g.Rows {
			h.raw("<tr")
			if row.Href != "" {
				h.attr("class", "clickable")
				h.attr("data-href", row.Href)
			}
			h.raw(">")
			for _, cell := range row.Cells {
				h.raw("<td>")
				h.render(Cell(cell))
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")

		if !g.Pagination.Hidden {
			h.render(pager(p))
		}
	})
}

func pager(p TableParams) templ.Component {
	return component(func(h *html) {
		g := p.Grid
		pg := g.Pagination
		h.raw("<div class=\"pager\"><span>")
		if pg.Total == 0 {
			h.raw("No results")
		} else {
			h.text(fmt.Sprintf("Showing %d to %d of %d results", pg.From, pg.To, pg.Total))
		}
		h.raw("</span><span>")
		pageLink(h, "Previous", p.href(g.State.WithPage(pg.PageIndex-1)), pg.HasPrev)
		h.text(fmt.Sprintf(" Page %d of %d ", pg.PageIndex+1, pg.PageCount))
		pageLink(h, "Next", p.href(g.State.WithPage(pg.PageIndex+1)), pg.HasNext)
		h.raw("</span></div>")
	})
}

func pageLink(h *html, label, href string, enabled bool) {
	if !enabled {
		h.raw("<span class=\"btn secondary\" aria-disabled=\"true\">")
		h.text(label)
		h.raw("</span>")
		return
	}
	h.raw("<a class=\"btn secondary\"")
	h.href(href)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

// Cell renders one table cell: a badge when toned, then any row actions.
func Cell(c table.Cell) templ.Component {
	return component(func(h *html) {
		if c.Tone != table.ToneDefault {
			h.raw("<span")
			h.attr("class", "badge "+string(c.Tone))
			h.raw(">")
			h.text(c.Text)
			h.raw("</span>")
		} else {
			h.text(c.Text)
		}
		for _, l := range c.Links {
			h.render(ActionLink(l))
		}
	})
}

// ActionLink renders a row action. POST actions become a one-button form.
func ActionLink(l table.Link) templ.Component {
	return component(func(h *html) {
		class := "btn link"
		if l.Confirm != "" {
			class += " danger"
		}
		if l.Method == http.MethodPost {
			h.raw("<form class=\"inline\" method=\"post\"")
			h.attr("action", string(templ.URL(l.Href)))
			if l.Confirm != "" {
				h.attr("onsubmit", "return confirm("+jsString(l.Confirm)+")")
			}
			h.raw("><button type=\"submit\"")
			h.attr("class", class)
			h.raw(">")
			h.text(l.Label)
			h.raw("</button></form>")
			return
		}
		h.raw("<a")
		h.attr("class", class)
		h.href(l.Href)
		h.raw(">")
		h.text(l.Label)
		h.raw("</a>")
	})
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			out = append(out, '\\', r)
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, r)
		}
	}
	return string(append(out, '\''))
}
