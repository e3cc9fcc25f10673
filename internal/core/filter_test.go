package core

import (
	"reflect"
	"testing"
)

func filterFixture() []Record {
	return []Record{
		{Name: "Kepler-452b", HostStar: "Kepler-452", DiscoveryMethod: "Transit"},
		{Name: "51 Peg b", HostStar: "51 Peg", DiscoveryMethod: "Radial Velocity"},
		{Name: "Proxima Cen b", HostStar: "Proxima Centauri", DiscoveryMethod: "Radial Velocity"},
		{Name: "TRAPPIST-1 e", HostStar: "TRAPPIST-1", DiscoveryMethod: "Transit"},
		{Name: "Orphan", HostStar: "KEPLER-like", DiscoveryMethod: ""},
		{Name: "Straße b", HostStar: "Weiß", DiscoveryMethod: "Imaging"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "empty query matches all",
			query: Query{},
			want:  []string{"Kepler-452b", "51 Peg b", "Proxima Cen b", "TRAPPIST-1 e", "Orphan", "Straße b"},
		},
		{
			name:  "case-insensitive substring on name",
			query: Query{Search: "kepler"},
			want:  []string{"Kepler-452b", "Orphan"},
		},
		{
			name:  "matches host star",
			query: Query{Search: "centauri"},
			want:  []string{"Proxima Cen b"},
		},
		{
			name:  "method exact match",
			query: Query{Method: "Radial Velocity"},
			want:  []string{"51 Peg b", "Proxima Cen b"},
		},
		{
			name:  "method is case-sensitive",
			query: Query{Method: "transit"},
			want:  []string{},
		},
		{
			name:  "search and method combined",
			query: Query{Search: "KEPLER", Method: "Transit"},
			want:  []string{"Kepler-452b"},
		},
		{
			name:  "unicode folding",
			query: Query{Search: "STRASSE"},
			want:  []string{"Straße b"},
		},
		{
			name:  "no match",
			query: Query{Search: "tatooine"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordNames(Filter(filterFixture(), tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := filterFixture()
	before := recordNames(in)
	_ = Filter(in, Query{Search: "b", Method: "Transit"})
	if after := recordNames(in); !reflect.DeepEqual(before, after) {
		t.Errorf("input changed: %q -> %q", before, after)
	}
}

func TestUniqueMethods(t *testing.T) {
	got := UniqueMethods(filterFixture())
	want := []string{"Transit", "Radial Velocity", "Imaging"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueMethods() = %q, want %q", got, want)
	}

	if got := UniqueMethods(nil); len(got) != 0 {
		t.Errorf("UniqueMethods(nil) = %q, want empty", got)
	}
}
