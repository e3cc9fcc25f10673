package core

import (
	"github.com/JonMunkholm/exoarchive/internal/schema"
)

// Planet type thresholds in Earth units. Bounds are exclusive and evaluated
// in order; the first match wins.
const (
	terrestrialMaxRadius = 1.5
	terrestrialMaxMass   = 3
	superEarthMaxRadius  = 2.5
	superEarthMaxMass    = 10
	neptuneMaxRadius     = 4
	neptuneMaxMass       = 17
)

// archiveConfirmed is the only disposition value the archive uses for
// confirmed planets.
const archiveConfirmed = "CONFIRMED"

// Classify derives the coarse planet type from radius and mass.
func Classify(radius, mass float64) PlanetType {
	switch {
	case radius < terrestrialMaxRadius && mass < terrestrialMaxMass:
		return PlanetTerrestrial
	case radius < superEarthMaxRadius && mass < superEarthMaxMass:
		return PlanetSuperEarth
	case radius < neptuneMaxRadius && mass < neptuneMaxMass:
		return PlanetNeptuneLike
	default:
		return PlanetGasGiant
	}
}

// MapDisposition collapses the archive disposition to Confirmed or Candidate.
// Only the exact cell "CONFIRMED" counts as confirmed.
func MapDisposition(s string) Disposition {
	if s == archiveConfirmed {
		return DispositionConfirmed
	}
	return DispositionCandidate
}

// NormalizeOptions controls which rows survive normalization.
type NormalizeOptions struct {
	// RequireYear drops records without a positive discovery year.
	RequireYear bool
}

// NormalizeRow converts one raw row. ok is false when the row has no name
// or is the header line itself.
func NormalizeRow(row RawRecord, cols schema.Resolved) (rec Record, ok bool) {
	name := CleanCell(cols.Cell(row, schema.FieldName))
	if name == "" || name == schema.HeaderToken {
		return Record{}, false
	}

	rec = Record{
		Name:            name,
		HostStar:        CleanCell(cols.Cell(row, schema.FieldHostStar)),
		DiscoveryMethod: CleanCell(cols.Cell(row, schema.FieldDiscoveryMethod)),
		Disposition:     MapDisposition(cols.Cell(row, schema.FieldDisposition)),
	}

	rec.DiscoveryYear, rec.Known.DiscoveryYear = ParseYear(cols.Cell(row, schema.FieldDiscoveryYear))
	rec.OrbitalPeriodDays, rec.Known.OrbitalPeriod = ParseMagnitude(cols.Cell(row, schema.FieldOrbitalPeriod))
	rec.RadiusEarth, rec.Known.Radius = ParseMagnitude(cols.Cell(row, schema.FieldRadius))
	rec.StellarTempK, rec.Known.StellarTemp = ParseFloatSoft(cols.Cell(row, schema.FieldStellarTemp))
	rec.Distance, rec.Known.Distance = ParseFloatSoft(cols.Cell(row, schema.FieldDistance))

	// Best mass estimate first, measured mass as fallback.
	rec.MassEarth, rec.Known.Mass = ParseMagnitude(cols.Cell(row, schema.FieldMass))
	if !rec.Known.Mass {
		rec.MassEarth, rec.Known.Mass = ParseMagnitude(cols.Cell(row, schema.FieldMassAlt))
	}

	rec.PlanetType = Classify(rec.RadiusEarth, rec.MassEarth)
	return rec, true
}

// Normalize converts raw rows into records, preserving order. It never
// fails; rows without a usable name are dropped.
func Normalize(rows []RawRecord, cols schema.Resolved, opts NormalizeOptions) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := NormalizeRow(row, cols)
		if !ok {
			continue
		}
		if opts.RequireYear && rec.DiscoveryYear <= 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}
