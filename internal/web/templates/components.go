package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

// ErrorAlert renders a user-facing error box.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` <span>`)
			h.text(action)
			h.raw(`</span>`)
		}
		if code != "" {
			h.raw(` <code>`)
			h.text(code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// sourceNotes explains each fallback source to the reader.
var sourceNotes = map[core.Source]string{
	core.SourceSnapshot: "Showing the last stored copy of the archive.",
	core.SourceSample:   "Showing a few sample planets instead.",
}

// DegradedBanner tells the user the data failed to load and offers a retry.
// It renders nothing when degraded is false.
func DegradedBanner(degraded bool, problem *core.UserMessage, source core.Source, retryURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !degraded {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-warning" role="status"><strong>Failed to load exoplanet data.</strong> `)
		if problem != nil {
			h.text(problem.Message)
			h.raw(" ")
		}
		if note, ok := sourceNotes[source]; ok {
			h.text(note)
			h.raw(" ")
		}
		h.raw(`<a class="retry"`)
		h.attr("href", retryURL)
		h.raw(`>Retry</a>`)
		if problem != nil && problem.Code != "" {
			h.raw(` <code>`)
			h.text(problem.Code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// RecordTable renders records as the browser table.
func RecordTable(records []core.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<table class="records"><thead><tr>`)
		for _, col := range []string{"Planet", "Host Star", "Method", "Year", "Period (days)", "Radius (R⊕)", "Mass (M⊕)", "Type", "Status"} {
			h.raw("<th>")
			h.text(col)
			h.raw("</th>")
		}
		h.raw(`</tr></thead><tbody>`)

		if len(records) == 0 {
			h.raw(`<tr><td colspan="9" class="empty">No exoplanets match your search.</td></tr>`)
		}
		for _, r := range records {
			h.raw("<tr><td>")
			h.text(r.Name)
			h.raw("</td><td>")
			h.text(r.HostStar)
			h.raw("</td><td>")
			h.text(r.DiscoveryMethod)
			h.raw("</td><td>")
			h.text(FormatYear(r.DiscoveryYear))
			h.raw(`</td><td class="num">`)
			h.text(FormatMeasure(r.OrbitalPeriodDays, r.Known.OrbitalPeriod))
			h.raw(`</td><td class="num">`)
			h.text(FormatMeasure(r.RadiusEarth, r.Known.Radius))
			h.raw(`</td><td class="num">`)
			h.text(FormatMeasure(r.MassEarth, r.Known.Mass))
			h.raw("</td><td>")
			h.text(string(r.PlanetType))
			h.raw(`</td><td><span`)
			h.attr("class", "badge badge-"+string(r.Disposition))
			h.raw(">")
			h.text(string(r.Disposition))
			h.raw("</span></td></tr>")
		}

		h.raw(`</tbody></table>`)
		return h.err
	})
}

// Pagination renders Previous, the numbered window and Next. pageURL builds
// the link for a page number.
func Pagination(page core.Page, window []int, pageURL func(int) string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if page.TotalPages <= 1 {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`<nav class="pagination" aria-label="Pagination"><span class="page-status">Page `)
		h.text(strconv.Itoa(page.Page))
		h.raw(" of ")
		h.text(strconv.Itoa(page.TotalPages))
		h.raw(`</span>`)

		link := func(label string, target int, enabled, current bool) {
			switch {
			case current:
				h.raw(`<span class="page current" aria-current="page">`)
				h.text(label)
				h.raw(`</span>`)
			case !enabled:
				h.raw(`<span class="page disabled">`)
				h.text(label)
				h.raw(`</span>`)
			default:
				h.raw(`<a class="page"`)
				h.attr("href", pageURL(target))
				h.raw(">")
				h.text(label)
				h.raw(`</a>`)
			}
		}

		link("Previous", page.Page-1, page.HasPrev(), false)
		for _, n := range window {
			link(strconv.Itoa(n), n, true, n == page.Page)
		}
		link("Next", page.Page+1, page.HasNext(), false)

		h.raw(`</nav>`)
		return h.err
	})
}
