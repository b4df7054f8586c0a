package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/ipo"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/view"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

// fetchLive reads the page and limit named by pageKey and limitKey.
func (s *Server) fetchLive(r *http.Request, pageKey, limitKey string) (ipo.FetchResult, int, int) {
	page := parseIntParam(r, pageKey, 1)
	limit := min(parseIntParam(r, limitKey, s.remote.PageSize()), table.MaxPageSize)
	return s.remote.FetchIPOs(r.Context(), page, limit), page, limit
}

// handleLiveIPOs shows one page of the remote listing. The engine filters
// and sorts within the page; paging is the remote's and travels as rpage
// and rlimit, so a changed page or limit rebinds the table and drops the
// previous filter and sort.
func (s *Server) handleLiveIPOs(w http.ResponseWriter, r *http.Request) {
	res, page, limit := s.fetchLive(r, templates.RemotePageParam, templates.RemoteLimitParam)
	remote := url.Values{
		templates.RemotePageParam:  {strconv.Itoa(page)},
		templates.RemoteLimitParam: {strconv.Itoa(limit)},
	}

	columns := append(view.IPOColumns(), table.Actions("actions", "Actions", table.Action[core.IPO]{
		Label:  "Import",
		Method: http.MethodPost,
		Href: func(i core.IPO) string {
			return "/ipos/live/" + url.PathEscape(i.ID) + "/import?" + remote.Encode()
		},
		Hidden: func(i core.IPO) bool { return i.ID == "" },
	}))
	tbl := table.New(columns, table.Options[core.IPO]{
		SearchKey:         "name",
		SearchPlaceholder: "Search this page...",
		HidePagination:    true,
		EmptyMessage:      "No IPOs found",
	})
	tbl.SetState(table.ParseState(r.URL.Query()))
	tbl.Bind(fmt.Sprintf("remote:%d:%d", page, limit))
	rendered := tbl.Render(res.IPOs)

	pg := res.Pagination
	pager := templates.Pager(templates.RemotePager{
		Base:       "/ipos/live",
		Page:       max(pg.Page, 1),
		Limit:      limit,
		TotalPages: pg.TotalPages,
		Total:      pg.Total,
		HasPrev:    pg.HasPrevPage || pg.Page > 1,
		HasNext:    pg.HasNextPage,
	})
	grid := templates.Table(templates.TableParams{
		Grid:   rendered.Grid,
		Base:   "/ipos/live",
		Params: remote,
		Search: true,
	})

	body, partial := templates.Group(grid, pager), grid
	if res.Failed() {
		msg := core.MapError(errors.New(res.Error))
		partial = templates.Group(templates.ErrorAlert(msg.Message, msg.Action, msg.Code), grid)
		body = partial
	}

	p := s.page(r, "Live IPOs", "ipos")
	p.Subtitle = "IPOs from the remote listing, normalized for import"
	p.Actions = []templates.Button{{Label: "Local IPOs", Href: "/ipos"}}
	s.render(w, r, http.StatusOK, p, body, partial)
}

func (s *Server) handleAPILiveIPOs(w http.ResponseWriter, r *http.Request) {
	res, _, _ := s.fetchLive(r, "page", "limit")
	status := http.StatusOK
	if res.Failed() {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, res)
}

// handleImportIPO copies one IPO of the listing page into the local store.
func (s *Server) handleImportIPO(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, _, _ := s.fetchLive(r, templates.RemotePageParam, templates.RemoteLimitParam)
	if res.Failed() {
		s.respondError(w, r, errors.New(res.Error), http.StatusBadGateway)
		return
	}

	for _, i := range res.IPOs {
		if i.ID != id {
			continue
		}
		saved, err := s.service.ImportRemoteIPO(r.Context(), i)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		redirect(w, r, "/ipos/"+url.PathEscape(saved.ID), fmt.Sprintf("Imported %s", saved.Name))
		return
	}
	s.respondError(w, r, fmt.Errorf("remote ipo %q: not found", id), http.StatusNotFound)
}

func (s *Server) handleToggleUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.service.ToggleUserStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	verb := "unblocked"
	if u.Status == core.StatusBlocked {
		verb = "blocked"
	}
	redirect(w, r, "/users", fmt.Sprintf("%s %s", u.Name, verb))
}
