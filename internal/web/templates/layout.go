package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageMeta describes the page being wrapped by Layout.
type PageMeta struct {
	Title     string
	Path      string // current path, used for the active nav item
	Supernova bool
}

type navItem struct {
	Path  string
	Label string
}

var navItems = []navItem{
	{Path: "/", Label: "Home"},
	{Path: "/database", Label: "Database"},
	{Path: "/detection", Label: "Detection"},
}

// Layout wraps body in the site chrome.
func Layout(meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(meta.Title)
		h.raw(` | Exoplanet Archive</title><link rel="stylesheet" href="/static/style.css"></head>`)

		if meta.Supernova {
			h.raw(`<body class="supernova">`)
		} else {
			h.raw(`<body>`)
		}

		h.raw(`<header class="site-header"><a class="brand" href="/">Exoplanet Archive</a><nav>`)
		for _, item := range navItems {
			h.raw("<a")
			h.attr("href", item.Path)
			if item.Path == meta.Path {
				h.raw(` class="active"`)
			}
			h.raw(">")
			h.text(item.Label)
			h.raw("</a>")
		}
		h.raw(`</nav>`)

		h.raw(`<form class="supernova-toggle" method="post" action="/api/site/supernova">`)
		h.raw(`<input type="hidden" name="return"`)
		h.attr("value", meta.Path)
		h.raw(`>`)
		if meta.Supernova {
			h.raw(`<button type="submit" name="supernova" value="false">Calm skies</button>`)
		} else {
			h.raw(`<button type="submit" name="supernova" value="true">Supernova</button>`)
		}
		h.raw(`</form></header>`)

		h.raw(`<main>`)
		h.render(ctx, body)
		h.raw(`</main>`)

		h.raw(`<footer class="site-footer">Data: NASA Exoplanet Archive. `)
		h.raw(`<a href="/exoplanet-data.csv">Download CSV</a></footer>`)
		h.raw(`</body></html>`)

		return h.err
	})
}
