package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/ipo"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/view"
)

func (a *app) iposCmd() *cobra.Command {
	var (
		page   int
		limit  int
		search string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "ipos",
		Short: "Fetch one page of the remote IPO listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cols := ipoColumns()
			state := table.State{GlobalFilter: search, PageSize: table.DefaultPageSize}
			if sortBy != "" {
				if !hasColumn(cols, sortBy) {
					return fmt.Errorf("unknown sort column %q", sortBy)
				}
				dir := table.DirAsc
				if desc {
					dir = table.DirDesc
				}
				state.Sort = []table.SortSpec{{ColumnID: sortBy, Direction: dir}}
			}

			res := a.client().FetchIPOs(cmd.Context(), page, limit)
			if res.Failed() {
				return fmt.Errorf("fetch ipos: %s", res.Error)
			}

			rendered := table.Apply(res.IPOs, cols, table.Options[core.IPO]{
				SearchKey:      "name",
				HidePagination: true,
				EmptyMessage:   "No IPOs found",
			}, state)

			if a.output() == outputJSON {
				return a.writeJSON(struct {
					IPOs       []core.IPO     `json:"ipos"`
					Pagination ipo.Pagination `json:"pagination"`
				}{rendered.Records, res.Pagination})
			}

			a.renderGrid(rendered.Grid)
			p := res.Pagination
			fmt.Fprintf(a.out, "\nPage %d of %d, %d IPOs in the listing\n", p.Page, max(p.TotalPages, 1), p.Total)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&page, "page", 1, "page of the listing to fetch")
	f.IntVar(&limit, "limit", 0, "IPOs per page (default: the client page size)")
	f.StringVarP(&search, "search", "s", "", "only show IPOs whose name contains this text")
	f.StringVar(&sortBy, "sort", "", "sort by column: id, name, companyName, status, openDate, closeDate, priceBand, lotSize, premium")
	f.BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

// ipoColumns adds the upstream id and the grey market premium to the
// shared IPO columns.
func ipoColumns() []table.Column[core.IPO] {
	cols := []table.Column[core.IPO]{
		table.Accessor("id", "ID", func(i core.IPO) any { return i.ID }),
	}
	cols = append(cols, view.IPOColumns()...)
	return append(cols, table.Accessor("premium", "GMP", func(i core.IPO) any { return i.Premium }).
		WithRender(func(i core.IPO) table.Cell { return table.Cell{Text: orDash(i.Premium)} }))
}

func hasColumn[T any](cols []table.Column[T], id string) bool {
	for _, c := range cols {
		if c.ID == id && c.Sortable {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
