package web

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/logging"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

// page builds the chrome for a screen. The section's description is the
// default subtitle; a "notice" query parameter becomes the flash message.
func (s *Server) page(r *http.Request, title, active string) templates.PageParams {
	p := templates.PageParams{
		Title:    title,
		Active:   active,
		Sections: core.Sections(),
		Flash:    r.URL.Query().Get("notice"),
	}
	if sec, ok := core.Get(active); ok {
		p.Subtitle = sec.Description
	}
	return p
}

// render writes a full page, or only partial for HTMX requests when one is
// given.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p templates.PageParams, body, partial templ.Component) {
	c := templates.Page(p, body)
	if partial != nil && isHTMX(r) {
		c = partial
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// redirect sends a 303 to path with an optional flash notice.
func redirect(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		path += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
