// Package templates renders the archive's HTML pages as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first write error, so
// components can emit a page without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes escaped text.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

// FormatMeasure formats a numeric cell with two decimals, or "N/A" when the
// cell was missing.
func FormatMeasure(v float64, known bool) string {
	if !known {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatYear formats a discovery year, or "N/A" when unknown.
func FormatYear(year int) string {
	if year <= 0 {
		return "N/A"
	}
	return strconv.Itoa(year)
}
