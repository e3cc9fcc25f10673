package core

import (
	"time"

	"github.com/google/uuid"
)

// RawRecord is one data line split on commas, positionally aligned to the
// archive header. Quoted fields are not supported.
type RawRecord []string

// Disposition is the archive confirmation status collapsed to two values.
type Disposition string

const (
	DispositionConfirmed Disposition = "Confirmed"
	DispositionCandidate Disposition = "Candidate"
)

// PlanetType is the coarse classification derived from radius and mass.
type PlanetType string

const (
	PlanetTerrestrial PlanetType = "Terrestrial"
	PlanetSuperEarth  PlanetType = "Super Earth"
	PlanetNeptuneLike PlanetType = "Neptune-like"
	PlanetGasGiant    PlanetType = "Gas Giant"
)

// PlanetTypes lists every classification in threshold order.
var PlanetTypes = []PlanetType{PlanetTerrestrial, PlanetSuperEarth, PlanetNeptuneLike, PlanetGasGiant}

// Presence records which numeric cells actually parsed. A zero value in
// Record is ambiguous on its own: it is either a measured zero or missing.
type Presence struct {
	DiscoveryYear bool `json:"discovery_year"`
	OrbitalPeriod bool `json:"orbital_period"`
	Radius        bool `json:"radius"`
	Mass          bool `json:"mass"`
	StellarTemp   bool `json:"stellar_temp"`
	Distance      bool `json:"distance"`
}

// Record is a normalized archive row. Records are never mutated after
// normalization.
type Record struct {
	Name              string      `json:"name"`
	HostStar          string      `json:"host_star"`
	DiscoveryMethod   string      `json:"discovery_method"`
	DiscoveryYear     int         `json:"discovery_year"`
	OrbitalPeriodDays float64     `json:"orbital_period_days"`
	RadiusEarth       float64     `json:"radius_earth"`
	MassEarth         float64     `json:"mass_earth"`
	StellarTempK      float64     `json:"stellar_temp_k"`
	Distance          float64     `json:"distance"`
	Disposition       Disposition `json:"disposition"`
	PlanetType        PlanetType  `json:"planet_type"`
	Known             Presence    `json:"known"`
}

// Query selects records for a view.
type Query struct {
	Search string `json:"search"`
	Method string `json:"method"`
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Method == ""
}

// Page is one page of a paginated collection.
type Page struct {
	Items      []Record `json:"items"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalItems int      `json:"total_items"`
	TotalPages int      `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// Source identifies where a load's records came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceSnapshot Source = "snapshot"
	SourceSample   Source = "sample"
)

// LoadResult is the outcome of loading one view. A degraded result still
// carries usable (fallback) records plus the problem that caused the
// fallback, so the caller can offer a retry.
type LoadResult struct {
	ID       uuid.UUID    `json:"id"`
	View     string       `json:"view"`
	Records  []Record     `json:"records"`
	Source   Source       `json:"source"`
	Degraded bool         `json:"degraded"`
	Problem  *UserMessage `json:"problem,omitempty"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// BrowseResult is everything the browser table needs for one render.
type BrowseResult struct {
	View          string       `json:"view"`
	Query         Query        `json:"query"`
	Page          Page         `json:"page"`
	Window        []int        `json:"window"`
	Methods       []string     `json:"methods"`
	TotalRecords  int          `json:"total_records"`
	FilteredCount int          `json:"filtered_count"`
	Source        Source       `json:"source"`
	Degraded      bool         `json:"degraded"`
	Problem       *UserMessage `json:"problem,omitempty"`
	LoadID        uuid.UUID    `json:"load_id"`
}
