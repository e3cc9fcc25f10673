package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the records matching q, in input order. The search term is
// matched case-insensitively as a substring of the planet or host star name;
// the method must match exactly. Empty query fields match everything.
func Filter(records []Record, q Query) []Record {
	if q.IsZero() {
		return records
	}

	// Casers carry state and must not be shared between goroutines.
	fold := cases.Fold()
	term := fold.String(q.Search)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Method != "" && r.DiscoveryMethod != q.Method {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(r.Name), term) &&
			!strings.Contains(fold.String(r.HostStar), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// UniqueMethods lists the distinct non-empty discovery methods in the order
// they first appear.
func UniqueMethods(records []Record) []string {
	seen := make(map[string]struct{})
	var methods []string
	for _, r := range records {
		if r.DiscoveryMethod == "" {
			continue
		}
		if _, ok := seen[r.DiscoveryMethod]; ok {
			continue
		}
		seen[r.DiscoveryMethod] = struct{}{}
		methods = append(methods, r.DiscoveryMethod)
	}
	return methods
}
