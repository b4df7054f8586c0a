package templates

import (
	"github.com/a-h/templ"
)

// Field input types.
const (
	InputText     = "text"
	InputNumber   = "number"
	InputDate     = "date"
	InputEmail    = "email"
	InputURL      = "url"
	InputPassword = "password"
	InputTextarea = "textarea"
	InputSelect   = "select"
)

// Field is one form input.
type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Options  []string // select choices
	Required bool
	Help     string
	Step     string // number step, "any" when empty
}

// FormParams describes an edit or create form.
type FormParams struct {
	Action string
	Submit string
	Cancel string // href of the cancel link, omitted when empty
	Fields []Field
	Error  templ.Component
}

// Form renders a stacked POST form.
func Form(p FormParams) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"card\">")
		h.render(p.Error)
		h.raw("<form class=\"stacked\" method=\"post\"")
		h.attr("action", string(templ.URL(p.Action)))
		h.raw(">")
		for _, f := range p.Fields {
			h.render(Input(f))
		}
		h.raw("<p><button class=\"btn\" type=\"submit\">")
		h.text(p.Submit)
		h.raw("</button> ")
		if p.Cancel != "" {
			h.raw("<a class=\"btn secondary\"")
			h.href(p.Cancel)
			h.raw(">Cancel</a>")
		}
		h.raw("</p></form></div>")
	})
}

// Input renders a labelled input for f.
func Input(f Field) templ.Component {
	return component(func(h *html) {
		id := "field-" + f.Name
		h.raw("<label")
		h.attr("for", id)
		h.raw(">")
		h.text(f.Label)
		h.raw("</label>")

		switch f.Type {
		case InputTextarea:
			h.raw("<textarea rows=\"5\"")
			h.attr("id", id)
			h.attr("name", f.Name)
			if f.Required {
				h.raw(" required")
			}
			h.raw(">")
			h.text(f.Value)
			h.raw("</textarea>")
		case InputSelect:
			h.raw("<select")
			h.attr("id", id)
			h.attr("name", f.Name)
			h.raw(">")
			for _, opt := range f.Options {
				h.raw("<option")
				h.attr("value", opt)
				if opt == f.Value {
					h.raw(" selected")
				}
				h.raw(">")
				h.text(opt)
				h.raw("</option>")
			}
			h.raw("</select>")
		default:
			typ := f.Type
			if typ == "" {
				typ = InputText
			}
			h.raw("<input")
			h.attr("type", typ)
			h.attr("id", id)
			h.attr("name", f.Name)
			h.attr("value", f.Value)
			if typ == InputNumber {
				step := f.Step
				if step == "" {
					step = "any"
				}
				h.attr("step", step)
			}
			if f.Required {
				h.raw(" required")
			}
			h.raw(">")
		}

		if f.Help != "" {
			h.raw("<small>")
			h.text(f.Help)
			h.raw("</small>")
		}
	})
}

// DetailRow is one labelled value of a record.
type DetailRow struct {
	Label string
	Value string
}

// Detail renders a record as a definition list with edit and back links.
func Detail(rows []DetailRow, links ...Button) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"card\"><dl class=\"detail\">")
		for _, r := range rows {
			h.raw("<dt>")
			h.text(r.Label)
			h.raw("</dt><dd>")
			h.text(r.Value)
			h.raw("</dd>")
		}
		h.raw("</dl><p>")
		for _, l := range links {
			h.raw("<a class=\"btn secondary\"")
			h.href(l.Href)
			h.raw(">")
			h.text(l.Label)
			h.raw("</a> ")
		}
		h.raw("</p></div>")
	})
}
