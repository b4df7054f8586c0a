package templates

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/ipoadmin/internal/core"
)

// PageParams describes the chrome around a page body.
type PageParams struct {
	Title    string
	Subtitle string
	Active   string // section key highlighted in the sidebar
	Sections []core.Section
	Flash    string
	Actions  []Button
}

// Button is a header link styled as a button.
type Button struct {
	Label string
	Href  string
}

const styles = `
body{margin:0;font-family:system-ui,sans-serif;background:#f5f6f8;color:#1f2937;display:flex;min-height:100vh}
nav.sidebar{width:230px;background:#111827;color:#e5e7eb;padding:1rem 0}
nav.sidebar h1{font-size:1.1rem;margin:0 1.25rem 1rem}
nav.sidebar a{display:block;padding:.5rem 1.25rem;color:inherit;text-decoration:none}
nav.sidebar a.active,nav.sidebar a:hover{background:#1f2937}
main{flex:1;padding:1.5rem 2rem}
header.page{display:flex;justify-content:space-between;align-items:flex-end;margin-bottom:1rem}
header.page p{margin:.25rem 0 0;color:#6b7280}
.btn{display:inline-block;padding:.45rem .9rem;border-radius:6px;background:#2563eb;color:#fff;text-decoration:none;border:0;cursor:pointer;font-size:.9rem}
.btn.secondary{background:#e5e7eb;color:#111827}
.btn.link{background:none;color:#2563eb;padding:0 .4rem}
.btn.danger{color:#dc2626}
.card{background:#fff;border-radius:8px;padding:1rem;box-shadow:0 1px 2px rgba(0,0,0,.06);margin-bottom:1rem}
.stats{display:grid;grid-template-columns:repeat(auto-fit,minmax(180px,1fr));gap:1rem;margin-bottom:1rem}
.stats .value{font-size:1.5rem;font-weight:600}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:.55rem .75rem;border-bottom:1px solid #e5e7eb;text-align:left;font-size:.9rem}
th a{color:inherit;text-decoration:none}
td.empty{text-align:center;color:#6b7280;padding:2rem}
tr.clickable{cursor:pointer}
.badge{padding:.1rem .5rem;border-radius:999px;font-size:.75rem;background:#e5e7eb}
.badge.success{background:#dcfce7;color:#166534}.badge.warning{background:#fef9c3;color:#854d0e}
.badge.danger{background:#fee2e2;color:#991b1b}.badge.info{background:#dbeafe;color:#1e40af}
.badge.muted{background:#f3f4f6;color:#6b7280}
.toolbar{display:flex;justify-content:space-between;margin-bottom:.75rem}
.toolbar input{padding:.4rem .6rem;border:1px solid #d1d5db;border-radius:6px;min-width:260px}
.pager{display:flex;justify-content:space-between;align-items:center;margin-top:.75rem;font-size:.9rem}
.alert{padding:.75rem 1rem;border-radius:6px;margin-bottom:1rem}
.alert.error{background:#fee2e2;color:#991b1b}.alert.info{background:#dbeafe;color:#1e40af}
form.stacked label{display:block;margin:.75rem 0 .25rem;font-weight:500}
form.stacked input,form.stacked select,form.stacked textarea{width:100%;max-width:520px;padding:.45rem;border:1px solid #d1d5db;border-radius:6px}
form.inline{display:inline}
dl.detail{display:grid;grid-template-columns:180px 1fr;gap:.5rem 1rem}
dl.detail dt{color:#6b7280}
`

// Page renders a full HTML document with the sidebar and body.
func Page(p PageParams, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		h.text(p.Title)
		h.raw(" | IPOG Admin</title><style>")
		h.raw(styles)
		h.raw("</style></head><body>")

		h.render(Sidebar(p.Sections, p.Active))

		h.raw("<main><header class=\"page\"><div><h2>")
		h.text(p.Title)
		h.raw("</h2>")
		if p.Subtitle != "" {
			h.raw("<p>")
			h.text(p.Subtitle)
			h.raw("</p>")
		}
		h.raw("</div><div>")
		for _, b := range p.Actions {
			h.raw("<a class=\"btn\"")
			h.href(b.Href)
			h.raw(">")
			h.text(b.Label)
			h.raw("</a> ")
		}
		h.raw("</div></header>")

		if p.Flash != "" {
			h.raw("<div class=\"alert info\">")
			h.text(p.Flash)
			h.raw("</div>")
		}

		h.render(body)
		h.raw("</main></body></html>")
	})
}

// Sidebar renders the section navigation.
func Sidebar(sections []core.Section, active string) templ.Component {
	return component(func(h *html) {
		h.raw("<nav class=\"sidebar\"><h1>IPOG Admin</h1>")
		for _, s := range sections {
			h.raw("<a")
			h.href(s.Path)
			if s.Key == active {
				h.attr("class", "active")
			}
			h.raw(">")
			h.text(s.Label)
			h.raw("</a>")
		}
		h.raw("</nav>")
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"alert error\" role=\"alert\"><strong>")
		h.text(message)
		h.raw("</strong>")
		if action != "" {
			h.raw(" ")
			h.text(action)
		}
		if code != "" {
			h.raw(" <small>(Code: ")
			h.text(code)
			h.raw(")</small>")
		}
		h.raw("</div>")
	})
}

// Card wraps body in a titled panel.
func Card(title string, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<section class=\"card\">")
		if title != "" {
			h.raw("<h3>")
			h.text(title)
			h.raw("</h3>")
		}
		h.render(body)
		h.raw("</section>")
	})
}
