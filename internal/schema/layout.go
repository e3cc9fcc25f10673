// Package schema describes the column layout of the NASA Exoplanet Archive
// CSV export consumed by the browser.
//
// The archive file carries one authoritative header line beginning with
// [HeaderPrefix]. Each logical field is bound to a column name and a default
// offset; the offset is only used when the header does not name the column.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// HeaderPrefix identifies the header line of an archive export.
const HeaderPrefix = "pl_name,"

// HeaderToken is the first header cell. A data row whose name equals it is
// the header itself and is never a planet.
const HeaderToken = "pl_name"

// Field is a logical record field bound to an archive column.
type Field string

const (
	FieldName            Field = "name"
	FieldHostStar        Field = "host_star"
	FieldDisposition     Field = "disposition"
	FieldDiscoveryMethod Field = "discovery_method"
	FieldDiscoveryYear   Field = "discovery_year"
	FieldOrbitalPeriod   Field = "orbital_period"
	FieldRadius          Field = "radius"
	FieldMass            Field = "mass"
	FieldMassAlt         Field = "mass_alt"
	FieldStellarTemp     Field = "stellar_temp"
	FieldDistance        Field = "distance"
)

// Column binds a field to a header name and a fallback offset.
// Index < 0 means the column can only be found by name.
type Column struct {
	Name  string `koanf:"name"`
	Index int    `koanf:"index"`
}

// Layout maps every field to its column.
type Layout map[Field]Column

// DefaultLayout is the column layout of the archive export shipped with the
// site (PS table, default parameter set).
func DefaultLayout() Layout {
	return Layout{
		FieldName:            {Name: "pl_name", Index: 0},
		FieldHostStar:        {Name: "hostname", Index: 1},
		FieldDisposition:     {Name: "disposition", Index: 3},
		FieldDiscoveryMethod: {Name: "discoverymethod", Index: 7},
		FieldDiscoveryYear:   {Name: "disc_year", Index: 8},
		FieldOrbitalPeriod:   {Name: "pl_orbper", Index: 13},
		FieldRadius:          {Name: "pl_rade", Index: 21},
		FieldMassAlt:         {Name: "pl_masse", Index: 29},
		FieldMass:            {Name: "pl_bmasse", Index: 30},
		FieldStellarTemp:     {Name: "st_teff", Index: 52},
		FieldDistance:        {Name: "sy_dist", Index: 56},
	}
}

// Fields returns the known fields in a stable order.
func Fields() []Field {
	fields := make([]Field, 0, len(DefaultLayout()))
	for f := range DefaultLayout() {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Merge returns a copy of l with the columns of override applied on top.
func (l Layout) Merge(override Layout) Layout {
	out := make(Layout, len(l))
	for f, c := range l {
		out[f] = c
	}
	for f, c := range override {
		out[f] = c
	}
	return out
}

// Validate checks that every field of the default layout is bound and that
// no column is bound twice.
func (l Layout) Validate() error {
	var errs []string
	seenIdx := make(map[int]Field)
	for _, f := range Fields() {
		c, ok := l[f]
		if !ok {
			errs = append(errs, fmt.Sprintf("field %q is not bound", f))
			continue
		}
		if strings.TrimSpace(c.Name) == "" && c.Index < 0 {
			errs = append(errs, fmt.Sprintf("field %q has neither a column name nor an index", f))
		}
		if c.Index >= 0 {
			if other, dup := seenIdx[c.Index]; dup {
				errs = append(errs, fmt.Sprintf("fields %q and %q share index %d", other, f, c.Index))
			}
			seenIdx[c.Index] = f
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid layout:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Resolved is a layout bound to one concrete header line.
type Resolved map[Field]int

// Resolve builds the field -> index lookup for header. Header names are
// matched case-insensitively after trimming; fields whose column is absent
// from the header keep their default offset (or -1).
func (l Layout) Resolve(header []string) Resolved {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}

	r := make(Resolved, len(l))
	for f, c := range l {
		if idx, ok := byName[strings.ToLower(c.Name)]; ok && c.Name != "" {
			r[f] = idx
			continue
		}
		r[f] = c.Index
	}
	return r
}

// Cell returns the raw cell bound to f, or "" when the row is too short or
// the field is unbound.
func (r Resolved) Cell(row []string, f Field) string {
	idx, ok := r[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
