package web

// handlers_common.go contains request parsing helpers shared by the page and
// API handlers.

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

// maxFormBytes bounds detection form and JSON bodies.
const maxFormBytes = 64 << 10

// parseIntParam parses a positive integer query parameter with a default
// value. Invalid values fall back to the default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseQuery reads the search box and method dropdown.
func parseQuery(r *http.Request) core.Query {
	q := r.URL.Query()
	return core.Query{
		Search: strings.TrimSpace(q.Get("search")),
		Method: strings.TrimSpace(q.Get("method")),
	}
}

// detectionFromForm reads the detection form. Blank fields keep their
// defaults; every unparseable field is reported.
func detectionFromForm(w http.ResponseWriter, r *http.Request) (core.DetectionInput, error) {
	in := core.DefaultDetectionInput()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return in, &core.ParamError{Name: "form", Value: err.Error()}
	}

	var errs []error
	intField := func(name string, dst *int) {
		v := strings.TrimSpace(r.PostForm.Get(name))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, &core.ParamError{Name: name, Value: v})
			return
		}
		*dst = n
	}
	floatField := func(name string, dst *float64) {
		v := strings.TrimSpace(r.PostForm.Get(name))
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			errs = append(errs, &core.ParamError{Name: name, Value: v})
			return
		}
		*dst = f
	}

	intField("num_stars", &in.NumStars)
	intField("num_planets", &in.NumPlanets)
	if v := strings.TrimSpace(r.PostForm.Get("disc_facility")); v != "" {
		in.DiscFacility = v
	}
	floatField("orbital_period", &in.OrbitalPeriod)
	floatField("planet_radius", &in.PlanetRadius)
	floatField("st_spectype", &in.StellarSpectralType)
	floatField("stellar_temp", &in.StellarTemp)
	floatField("stellar_radius", &in.StellarRadius)
	floatField("stellar_mass", &in.StellarMass)
	floatField("stellar_surface_gravity", &in.StellarSurfaceGravity)
	floatField("right_ascension", &in.RightAscension)
	floatField("declination", &in.Declination)
	floatField("system_distance", &in.SystemDistance)
	floatField("sy_vmag", &in.VMag)
	floatField("sy_kmag", &in.KMag)

	return in, errors.Join(errs...)
}

// safeReturnPath returns p when it is a local absolute path, else "/".
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p
}
