// Package common provides shared markup helpers for UI features.
package common

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup to an io.Writer, keeping the first write error.
// Components built on it return Err() once done.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML returns an HTML writer wrapping w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes s unescaped.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s HTML-escaped.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (h *HTML) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Flag writes a boolean attribute.
func (h *HTML) Flag(name string) {
	h.Raw(" " + name)
}

// Component renders c in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error encountered.
func (h *HTML) Err() error {
	return h.err
}
