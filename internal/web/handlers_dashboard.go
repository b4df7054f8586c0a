package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/view"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

const recentLimit = 5

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.service.Dashboard(ctx)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	txs, err := s.service.Transactions.List(ctx)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	ipos, err := s.service.IPOs.List(ctx)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	body := templates.Group(
		templates.DashboardStats(stats),
		templates.Card("Recent Transactions", templates.TableBody(templates.TableParams{
			Grid: recentGrid(txs, transactionColumns(), "createdAt"),
			Base: "/orders",
		})),
		templates.Card("Latest IPOs", templates.TableBody(templates.TableParams{
			Grid: recentGrid(ipos, view.IPOColumns(), "openDate"),
			Base: "/ipos",
		})),
	)
	s.render(w, r, http.StatusOK, s.page(r, "Dashboard", "dashboard"), body, nil)
}

// recentGrid shows the newest records by dateColumn without a pager.
func recentGrid[T any](recs []T, columns []table.Column[T], dateColumn string) table.Grid {
	state := table.State{
		PageSize: recentLimit,
		Sort:     []table.SortSpec{{ColumnID: dateColumn, Direction: table.DirDesc}},
	}
	view := table.Apply(recs, columns, table.Options[T]{}, state)
	view.Pagination.Hidden = true
	for i := range view.Headers {
		view.Headers[i].Sortable = false
	}
	return view.Grid
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	p := s.page(r, "Reports", "reports")
	p.Actions = []templates.Button{{Label: "Export CSV", Href: "/reports/export.csv"}}
	s.render(w, r, http.StatusOK, p, templates.Report(report), nil)
}

func (s *Server) handleAPIReports(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleReportExport streams the report as CSV, one row per figure.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	filename := fmt.Sprintf("report_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write(reportHeader)
	for _, row := range reportRows(report) {
		_ = cw.Write(row)
	}
	cw.Flush()
}

var reportHeader = []string{"section", "label", "count", "revenue"}

func reportRows(rep core.Report) [][]string {
	money := func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

	var rows [][]string
	for _, m := range rep.MonthlySales {
		rows = append(rows, []string{"monthly_sales", m.Month, strconv.Itoa(m.Orders), money(m.Revenue)})
	}
	for _, st := range rep.IPOStatus {
		rows = append(rows, []string{"ipo_status", string(st.Status), strconv.Itoa(st.Count), ""})
	}
	rows = append(rows,
		[]string{"user_activity", "active", strconv.Itoa(rep.UserActivity.Active), ""},
		[]string{"user_activity", "blocked", strconv.Itoa(rep.UserActivity.Blocked), ""},
	)
	for _, p := range rep.TopProducts {
		rows = append(rows, []string{"top_products", p.Name, strconv.Itoa(p.Orders), money(p.Revenue)})
	}
	return append(rows, []string{"total", "revenue", "", money(rep.TotalRevenue)})
}
