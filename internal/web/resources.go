package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/store"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

type capability uint8

const (
	canCreate capability = 1 << iota
	canEdit
	canDelete

	canAll = canCreate | canEdit | canDelete
)

// resourceRoutes is the type-erased face of resource[T], so the server can
// hold every resource in one slice.
type resourceRoutes interface {
	key() string
	mount(r chi.Router)
	handleAPIList(w http.ResponseWriter, r *http.Request)
}

// resource serves the list, detail and form screens of one record type.
type resource[T store.Record[T]] struct {
	s       *Server
	res     *core.Resource[T]
	caps    capability
	columns []table.Column[T]
	options table.Options[T]

	// fields lays out the form for rec; parse reads it back.
	fields func(rec T) []templates.Field
	parse  func(form url.Values) T
	detail func(rec T) []templates.DetailRow
}

type resourceConfig[T store.Record[T]] struct {
	caps    capability
	columns []table.Column[T]
	extra   []table.Action[T]
	options table.Options[T]
	fields  func(rec T) []templates.Field
	parse   func(form url.Values) T
	detail  func(rec T) []templates.DetailRow
}

// newResource appends the row action column implied by the capabilities
// and any extra actions.
func newResource[T store.Record[T]](s *Server, res *core.Resource[T], cfg resourceConfig[T]) *resource[T] {
	h := &resource[T]{
		s:       s,
		res:     res,
		caps:    cfg.caps,
		options: cfg.options,
		fields:  cfg.fields,
		parse:   cfg.parse,
		detail:  cfg.detail,
	}

	actions := []table.Action[T]{
		{Label: "View", Href: func(rec T) string { return h.path(rec.RecordID()) }},
	}
	if h.caps&canEdit != 0 {
		actions = append(actions, table.Action[T]{
			Label: "Edit",
			Href:  func(rec T) string { return h.path(rec.RecordID()) + "/edit" },
		})
	}
	actions = append(actions, cfg.extra...)
	if h.caps&canDelete != 0 {
		actions = append(actions, table.Action[T]{
			Label:   "Delete",
			Href:    func(rec T) string { return h.path(rec.RecordID()) + "/delete" },
			Method:  http.MethodPost,
			Confirm: fmt.Sprintf("Are you sure you want to delete this %s?", strings.ToLower(res.Label())),
		})
	}

	h.columns = append(append([]table.Column[T]{}, cfg.columns...), table.Actions("actions", "Actions", actions...))
	if h.options.RowHref == nil {
		h.options.RowHref = func(rec T) string { return h.path(rec.RecordID()) }
	}
	return h
}

func (h *resource[T]) key() string  { return h.res.Key() }
func (h *resource[T]) base() string { return "/" + h.key() }

func (h *resource[T]) path(id string) string {
	return h.base() + "/" + url.PathEscape(id)
}

func (h *resource[T]) title() string {
	if sec, ok := core.Get(h.key()); ok {
		return sec.Label
	}
	return h.res.Label()
}

func (h *resource[T]) mount(r chi.Router) {
	r.Get(h.base(), h.handleList)
	if h.caps&canCreate != 0 {
		r.Get(h.base()+"/new", h.handleNew)
		r.Post(h.base(), h.handleCreate)
	}
	r.Get(h.base()+"/{id}", h.handleShow)
	if h.caps&canEdit != 0 {
		r.Get(h.base()+"/{id}/edit", h.handleEdit)
		r.Post(h.base()+"/{id}", h.handleUpdate)
	}
	if h.caps&canDelete != 0 {
		r.Post(h.base()+"/{id}/delete", h.handleDelete)
	}
}

// view runs the table engine over every record with the request's state.
func (h *resource[T]) view(r *http.Request) (table.View[T], error) {
	recs, err := h.res.List(r.Context())
	if err != nil {
		return table.View[T]{}, err
	}
	return table.Apply(recs, h.columns, h.options, table.ParseState(r.URL.Query())), nil
}

func (h *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.view(r)
	if err != nil {
		h.s.respondError(w, r, err, statusFor(err))
		return
	}

	grid := templates.Table(templates.TableParams{Grid: view.Grid, Base: h.base(), Search: true})
	p := h.s.page(r, h.title(), h.key())
	if h.caps&canCreate != 0 {
		p.Actions = []templates.Button{{Label: "Add " + h.res.Label(), Href: h.base() + "/new"}}
	}
	h.s.render(w, r, http.StatusOK, p, grid, grid)
}

func (h *resource[T]) handleAPIList(w http.ResponseWriter, r *http.Request) {
	view, err := h.view(r)
	if err != nil {
		h.s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *resource[T]) handleShow(w http.ResponseWriter, r *http.Request) {
	rec, err := h.res.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.s.respondError(w, r, err, statusFor(err))
		return
	}

	links := []templates.Button{{Label: "Back", Href: h.base()}}
	if h.caps&canEdit != 0 {
		links = append(links, templates.Button{Label: "Edit", Href: h.path(rec.RecordID()) + "/edit"})
	}
	p := h.s.page(r, h.res.Label()+" details", h.key())
	h.s.render(w, r, http.StatusOK, p, templates.Detail(h.detail(rec), links...), nil)
}

func (h *resource[T]) handleNew(w http.ResponseWriter, r *http.Request) {
	var zero T
	h.renderForm(w, r, http.StatusOK, zero, true, nil)
}

func (h *resource[T]) handleEdit(w http.ResponseWriter, r *http.Request) {
	rec, err := h.res.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.s.respondError(w, r, err, statusFor(err))
		return
	}
	h.renderForm(w, r, http.StatusOK, rec, false, nil)
}

func (h *resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.s.respondError(w, r, core.NewValidationError("form", "The form could not be read"), http.StatusBadRequest)
		return
	}

	rec := h.parse(r.PostForm)
	if _, err := h.res.Create(r.Context(), rec); err != nil {
		h.formError(w, r, rec, true, err)
		return
	}
	redirect(w, r, h.base(), h.res.Label()+" created")
}

func (h *resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.s.respondError(w, r, core.NewValidationError("form", "The form could not be read"), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	rec := h.parse(r.PostForm).WithID(id)
	if _, err := h.res.Update(r.Context(), id, rec); err != nil {
		h.formError(w, r, rec, false, err)
		return
	}
	redirect(w, r, h.base(), h.res.Label()+" updated")
}

func (h *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.res.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.s.respondError(w, r, err, statusFor(err))
		return
	}
	redirect(w, r, h.base(), h.res.Label()+" deleted")
}

// formError re-renders the form with the submitted values for validation
// failures and falls back to respondError otherwise.
func (h *resource[T]) formError(w http.ResponseWriter, r *http.Request, rec T, isNew bool, err error) {
	status := statusFor(err)
	if status != http.StatusUnprocessableEntity || wantsJSON(r) {
		h.s.respondError(w, r, err, status)
		return
	}
	msg := core.MapError(err)
	h.renderForm(w, r, status, rec, isNew, templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
}

func (h *resource[T]) renderForm(w http.ResponseWriter, r *http.Request, status int, rec T, isNew bool, alert templ.Component) {
	form := templates.FormParams{
		Fields: h.fields(rec),
		Cancel: h.base(),
		Error:  alert,
	}
	title := "Edit " + h.res.Label()
	if isNew {
		title = "Add " + h.res.Label()
		form.Action = h.base()
		form.Submit = "Create"
	} else {
		form.Action = h.path(rec.RecordID())
		form.Submit = "Save changes"
	}
	h.s.render(w, r, status, h.s.page(r, title, h.key()), templates.Form(form), nil)
}
