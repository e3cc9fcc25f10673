package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

// DetectionData is the detection form state. Result is nil before the form
// has been submitted.
type DetectionData struct {
	Input  core.DetectionInput
	Result *core.Detection
	Error  *core.UserMessage
}

type formField struct {
	Name  string
	Label string
	Value string
	Step  string // empty for text inputs
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func detectionFields(in core.DetectionInput) []formField {
	return []formField{
		{"num_stars", "Number of stars", strconv.Itoa(in.NumStars), "1"},
		{"num_planets", "Number of planets", strconv.Itoa(in.NumPlanets), "1"},
		{"disc_facility", "Discovery facility", in.DiscFacility, ""},
		{"orbital_period", "Orbital period (days)", num(in.OrbitalPeriod), "any"},
		{"planet_radius", "Planet radius (R⊕)", num(in.PlanetRadius), "any"},
		{"st_spectype", "Stellar spectral type", num(in.StellarSpectralType), "any"},
		{"stellar_temp", "Stellar temperature (K)", num(in.StellarTemp), "any"},
		{"stellar_radius", "Stellar radius (R☉)", num(in.StellarRadius), "any"},
		{"stellar_mass", "Stellar mass (M☉)", num(in.StellarMass), "any"},
		{"stellar_surface_gravity", "Stellar surface gravity (log g)", num(in.StellarSurfaceGravity), "any"},
		{"right_ascension", "Right ascension (deg)", num(in.RightAscension), "any"},
		{"declination", "Declination (deg)", num(in.Declination), "any"},
		{"system_distance", "System distance (pc)", num(in.SystemDistance), "any"},
		{"sy_vmag", "V magnitude", num(in.VMag), "any"},
		{"sy_kmag", "Ks magnitude", num(in.KMag), "any"},
	}
}

// Detection renders the detection form and, after a submit, its result.
func Detection(data DetectionData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="detection"><h1>Exoplanet Detection</h1>`)
		h.raw(`<p>Enter the observed parameters of a candidate. The label comes from a small rule set, not a trained model.</p>`)

		if data.Error != nil {
			h.render(ctx, ErrorAlert(data.Error.Message, data.Error.Action, data.Error.Code))
		}

		h.raw(`<form class="detection-form" method="post" action="/detection">`)
		for _, f := range detectionFields(data.Input) {
			h.raw(`<label>`)
			h.text(f.Label)
			if f.Step == "" {
				h.raw(`<input type="text"`)
			} else {
				h.raw(`<input type="number"`)
				h.attr("step", f.Step)
			}
			h.attr("name", f.Name)
			h.attr("value", f.Value)
			h.raw(`></label>`)
		}
		h.raw(`<button type="submit">Run Detection</button></form>`)

		if data.Result != nil {
			h.raw(`<div class="detection-result"><h2>Results &amp; Validation</h2><p class="label"`)
			h.attr("data-label", string(data.Result.Label))
			h.raw(`>`)
			h.text(string(data.Result.Label))
			h.raw(`</p><p class="rule">`)
			h.text(data.Result.Rule)
			h.raw(`</p></div>`)
		}

		h.raw(`</section>`)
		return h.err
	})
}
