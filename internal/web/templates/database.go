package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

// DatabaseURL builds a browser link that keeps the current search.
func DatabaseURL(q core.Query, page int) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Method != "" {
		v.Set("method", q.Method)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/database"
	}
	return "/database?" + v.Encode()
}

// Database renders the searchable browser page.
func Database(res *core.BrowseResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="browser"><h1>Exoplanet Data Browser</h1>`)

		h.render(ctx, DegradedBanner(res.Degraded, res.Problem, res.Source, DatabaseURL(res.Query, res.Page.Page)))

		h.raw(`<form class="filters" method="get" action="/database">`)
		h.raw(`<input type="search" name="search" placeholder="Search planets or host stars"`)
		h.attr("value", res.Query.Search)
		h.raw(`><select name="method"><option value="">All Methods</option>`)
		for _, m := range res.Methods {
			h.raw(`<option`)
			h.attr("value", m)
			if m == res.Query.Method {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(m)
			h.raw(`</option>`)
		}
		h.raw(`</select><button type="submit">Search</button></form>`)

		h.raw(`<p class="summary">Showing `)
		h.text(strconv.Itoa(res.FilteredCount))
		h.raw(` of `)
		h.text(strconv.Itoa(res.TotalRecords))
		h.raw(` exoplanets</p>`)

		h.render(ctx, RecordTable(res.Page.Items))
		h.render(ctx, Pagination(res.Page, res.Window, func(page int) string {
			return DatabaseURL(res.Query, page)
		}))

		h.raw(`<p class="export"><a`)
		h.attr("href", "/api/export/"+res.View+exportQuery(res.Query))
		h.raw(`>Export these results as CSV</a></p></section>`)
		return h.err
	})
}

func exportQuery(q core.Query) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Method != "" {
		v.Set("method", q.Method)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
