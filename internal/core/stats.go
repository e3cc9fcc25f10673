package core

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one numeric field over the records
// where it is known.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Stats aggregates a record set.
type Stats struct {
	Total          int                `json:"total"`
	Confirmed      int                `json:"confirmed"`
	Candidate      int                `json:"candidate"`
	ByPlanetType   map[PlanetType]int `json:"by_planet_type"`
	ByMethod       map[string]int     `json:"by_method"`
	EarliestYear   int                `json:"earliest_year,omitempty"`
	LatestYear     int                `json:"latest_year,omitempty"`
	Radius         Summary            `json:"radius"`
	Mass           Summary            `json:"mass"`
	OrbitalPeriod  Summary            `json:"orbital_period"`
	MethodsInOrder []string           `json:"methods"`
}

// ComputeStats aggregates records. Numeric summaries only include values
// whose cell actually parsed, so missing data does not drag means to zero.
func ComputeStats(records []Record) Stats {
	s := Stats{
		Total:          len(records),
		ByPlanetType:   make(map[PlanetType]int, len(PlanetTypes)),
		ByMethod:       make(map[string]int),
		MethodsInOrder: UniqueMethods(records),
	}
	for _, pt := range PlanetTypes {
		s.ByPlanetType[pt] = 0
	}

	var radius, mass, period []float64
	for _, r := range records {
		if r.Disposition == DispositionConfirmed {
			s.Confirmed++
		} else {
			s.Candidate++
		}
		s.ByPlanetType[r.PlanetType]++
		if r.DiscoveryMethod != "" {
			s.ByMethod[r.DiscoveryMethod]++
		}

		if r.DiscoveryYear > 0 {
			if s.EarliestYear == 0 || r.DiscoveryYear < s.EarliestYear {
				s.EarliestYear = r.DiscoveryYear
			}
			s.LatestYear = max(s.LatestYear, r.DiscoveryYear)
		}

		if r.Known.Radius {
			radius = append(radius, r.RadiusEarth)
		}
		if r.Known.Mass {
			mass = append(mass, r.MassEarth)
		}
		if r.Known.OrbitalPeriod {
			period = append(period, r.OrbitalPeriodDays)
		}
	}

	s.Radius = summarize(radius)
	s.Mass = summarize(mass)
	s.OrbitalPeriod = summarize(period)
	return s
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sum := Summary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	// Sample standard deviation is undefined for a single value.
	if len(sorted) > 1 {
		sum.StdDev = stat.StdDev(sorted, nil)
	}
	return sum
}
