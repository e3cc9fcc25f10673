package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

// HomeData is everything the home page shows.
type HomeData struct {
	Stats    *core.StatsResult
	Recent   *core.LoadResult
	RetryURL string
}

// Home renders the landing page: introduction, statistics and recent
// discoveries.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section class="hero"><h1>Exoplanet <span>Detection</span></h1>`)
		h.raw(`<p>Browse the NASA Exoplanet Archive and try a simple detection heuristic on your own parameters.</p>`)
		h.raw(`<div class="actions"><a class="button" href="/detection">Start Detection</a>`)
		h.raw(`<a class="button secondary" href="/database">Explore Database</a></div></section>`)

		h.raw(`<section class="intro"><h2>What are exoplanets?</h2>`)
		h.raw(`<p>Exoplanets are planets that orbit stars outside our solar system. `)
		h.raw(`Most are found indirectly, by the dimming of a star as a planet transits it or by the wobble the planet induces in its star.</p></section>`)

		if data.Stats != nil {
			h.render(ctx, DegradedBanner(data.Stats.Degraded, data.Stats.Problem, data.Stats.Source, data.RetryURL))
			h.render(ctx, statsSection(data.Stats.Stats))
		}

		if data.Recent != nil {
			h.raw(`<section class="recent"><h2>Recent Discoveries</h2>`)
			if data.Stats == nil {
				h.render(ctx, DegradedBanner(data.Recent.Degraded, data.Recent.Problem, data.Recent.Source, data.RetryURL))
			}
			h.raw(`<ol class="recent-list">`)
			for _, r := range data.Recent.Records {
				h.raw(`<li><span class="name">`)
				h.text(r.Name)
				h.raw(`</span> <span class="host">`)
				h.text(r.HostStar)
				h.raw(`</span> <span class="year">`)
				h.text(FormatYear(r.DiscoveryYear))
				h.raw(`</span> <span class="method">`)
				h.text(r.DiscoveryMethod)
				h.raw(`</span> <span class="type">`)
				h.text(string(r.PlanetType))
				h.raw(`</span></li>`)
			}
			h.raw(`</ol></section>`)
		}

		return h.err
	})
}

func statsSection(s core.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="stats"><h2>Statistics</h2><dl class="stat-grid">`)

		stat := func(label, value string) {
			h.raw(`<div class="stat"><dt>`)
			h.text(label)
			h.raw(`</dt><dd>`)
			h.text(value)
			h.raw(`</dd></div>`)
		}

		stat("Exoplanets", strconv.Itoa(s.Total))
		stat("Confirmed", strconv.Itoa(s.Confirmed))
		stat("Candidates", strconv.Itoa(s.Candidate))
		stat("Discovery methods", strconv.Itoa(len(s.MethodsInOrder)))
		if s.EarliestYear > 0 {
			stat("Discovered", strconv.Itoa(s.EarliestYear)+" to "+strconv.Itoa(s.LatestYear))
		}
		if s.Radius.Count > 0 {
			stat("Median radius (R⊕)", FormatMeasure(s.Radius.Median, true))
		}
		if s.Mass.Count > 0 {
			stat("Median mass (M⊕)", FormatMeasure(s.Mass.Median, true))
		}
		h.raw(`</dl>`)

		h.raw(`<ul class="type-breakdown">`)
		for _, pt := range core.PlanetTypes {
			h.raw(`<li>`)
			h.text(string(pt))
			h.raw(`: `)
			h.text(strconv.Itoa(s.ByPlanetType[pt]))
			h.raw(`</li>`)
		}
		h.raw(`</ul><p class="status">Platform Status: Active</p></section>`)
		return h.err
	})
}
