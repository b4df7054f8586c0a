package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

func severityTone(sev core.AuditSeverity) table.Tone {
	switch sev {
	case core.SeverityCritical, core.SeverityHigh:
		return table.ToneDanger
	case core.SeverityMedium:
		return table.ToneWarning
	default:
		return table.ToneMuted
	}
}

func auditColumns() []table.Column[core.AuditEntry] {
	return []table.Column[core.AuditEntry]{
		table.Accessor("createdAt", "Time", func(e core.AuditEntry) any { return e.CreatedAt.Format(time.RFC3339Nano) }).
			WithRender(func(e core.AuditEntry) table.Cell { return table.Cell{Text: format.DateTime(e.CreatedAt)} }),
		table.Accessor("action", "Action", func(e core.AuditEntry) any { return string(e.Action) }),
		table.Accessor("severity", "Severity", func(e core.AuditEntry) any { return string(e.Severity) }).
			WithRender(func(e core.AuditEntry) table.Cell {
				return table.Cell{Text: string(e.Severity), Tone: severityTone(e.Severity)}
			}),
		table.Accessor("resource", "Resource", func(e core.AuditEntry) any { return e.Resource }),
		table.Accessor("summary", "Summary", func(e core.AuditEntry) any { return e.Summary }).NoSort(),
		table.Accessor("ipAddress", "IP Address", func(e core.AuditEntry) any { return e.IPAddress }),
	}
}

func (s *Server) auditView(r *http.Request) (table.View[core.AuditEntry], error) {
	entries, err := s.service.AuditLog(r.Context())
	if err != nil {
		return table.View[core.AuditEntry]{}, err
	}
	opts := table.Options[core.AuditEntry]{
		SearchPlaceholder: "Search audit log...",
		EmptyMessage:      "No changes recorded yet",
	}
	return table.Apply(entries, auditColumns(), opts, table.ParseState(r.URL.Query())), nil
}

func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	view, err := s.auditView(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	grid := templates.Table(templates.TableParams{Grid: view.Grid, Base: "/audit-log", Search: true})
	prune := templates.ActionLink(table.Link{
		Label:   fmt.Sprintf("Prune entries older than %d days", s.opts.AuditRetentionDays),
		Href:    "/audit-log/prune",
		Method:  http.MethodPost,
		Confirm: "Delete old audit entries? This cannot be undone.",
	})

	p := s.page(r, "Audit Log", "audit-log")
	p.Actions = []templates.Button{{Label: "Export CSV", Href: "/audit-log/export.csv"}}
	s.render(w, r, http.StatusOK, p, templates.Group(prune, grid), grid)
}

func (s *Server) handleAPIAuditLog(w http.ResponseWriter, r *http.Request) {
	view, err := s.auditView(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAuditPrune(w http.ResponseWriter, r *http.Request) {
	removed, err := s.service.PruneAudit(r.Context(), s.opts.AuditRetentionDays)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	redirect(w, r, "/audit-log", fmt.Sprintf("Pruned %d audit entries", removed))
}

// handleAuditExport writes every audit entry as CSV, newest first.
func (s *Server) handleAuditExport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.AuditLog(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	filename := fmt.Sprintf("audit_log_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "created_at", "action", "severity", "resource", "record_id", "summary", "ip_address", "user_agent"})
	for _, e := range entries {
		_ = cw.Write([]string{
			e.ID,
			e.CreatedAt.Format(time.RFC3339),
			string(e.Action),
			string(e.Severity),
			e.Resource,
			e.Target,
			e.Summary,
			e.IPAddress,
			e.UserAgent,
		})
	}
	cw.Flush()
}
