// Package templates renders the dashboard's HTML.
//
// Components are templ.Components built from plain Go functions, so pages
// compose with any other templ component and render through the same
// Render(ctx, w) call. All text and attribute values go through templ's
// escaping.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// html accumulates output and the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *html) href(url string) {
	h.attr("href", string(templ.URL(url)))
}

func (h *html) int(n int) {
	h.raw(strconv.Itoa(n))
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component adapts a writing function to templ.Component.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Text renders s escaped.
func Text(s string) templ.Component {
	return component(func(h *html) { h.text(s) })
}

// Group renders components one after another.
func Group(parts ...templ.Component) templ.Component {
	return component(func(h *html) {
		for _, p := range parts {
			h.render(p)
		}
	})
}
