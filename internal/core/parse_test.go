package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV_HeaderDetection(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader int
		wantErr    bool
	}{
		{
			name:       "header on first line",
			input:      "pl_name,hostname\nKepler-22 b,Kepler-22\n",
			wantHeader: 0,
		},
		{
			name: "header after comment preamble",
			input: "# This file was produced by the NASA Exoplanet Archive\n" +
				"# COLUMN pl_name: Planet Name\n" +
				"\n" +
				"pl_name,hostname\n" +
				"Kepler-22 b,Kepler-22\n",
			wantHeader: 3,
		},
		{
			name:       "windows line endings",
			input:      "# preamble\r\npl_name,hostname\r\nKepler-22 b,Kepler-22\r\n",
			wantHeader: 1,
		},
		{
			name:       "first matching line wins",
			input:      "pl_name,a\npl_name,b\n",
			wantHeader: 0,
		},
		{
			name:    "no header",
			input:   "name,hostname\nKepler-22 b,Kepler-22\n",
			wantErr: true,
		},
		{
			name:    "prefix without comma",
			input:   "pl_name\nKepler-22 b\n",
			wantErr: true,
		},
		{
			name:    "indented header does not count",
			input:   " pl_name,hostname\n",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(tt.input, 0)
			if tt.wantErr {
				if !errors.Is(err, ErrSchemaNotFound) {
					t.Fatalf("ParseCSV() error = %v, want ErrSchemaNotFound", err)
				}
				var snf *SchemaNotFoundError
				if !errors.As(err, &snf) {
					t.Fatalf("ParseCSV() error type = %T, want *SchemaNotFoundError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCSV() error = %v", err)
			}
			if got.HeaderLine != tt.wantHeader {
				t.Errorf("HeaderLine = %d, want %d", got.HeaderLine, tt.wantHeader)
			}
		})
	}
}

func TestParseCSV_Rows(t *testing.T) {
	input := strings.Join([]string{
		"# preamble",
		"pl_name,hostname,disc_year",
		"Kepler-22 b,Kepler-22,2011",
		"",
		"   ",
		"# mid-file comment",
		"  # indented comment",
		"51 Peg b,51 Peg,1995\r",
		`"HD 1, b",HD 1,2000`,
		"",
	}, "\n")

	got, err := ParseCSV(input, 0)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	wantHeader := []string{"pl_name", "hostname", "disc_year"}
	if !reflect.DeepEqual(got.Header, wantHeader) {
		t.Errorf("Header = %q, want %q", got.Header, wantHeader)
	}

	want := []RawRecord{
		{"Kepler-22 b", "Kepler-22", "2011"},
		{"  # indented comment"},
		{"51 Peg b", "51 Peg", "1995"},
		// Quoted commas are not handled; the columns shift.
		{`"HD 1`, ` b"`, "HD 1", "2000"},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("Rows = %q, want %q", got.Rows, want)
	}
}

func TestParseCSV_LineCap(t *testing.T) {
	input := strings.Join([]string{
		"pl_name,hostname",
		"a,A",
		"# comment",
		"b,B",
		"c,C",
		"d,D",
	}, "\n")

	tests := []struct {
		name      string
		lineCap   int
		wantNames []string
	}{
		{name: "no cap", lineCap: 0, wantNames: []string{"a", "b", "c", "d"}},
		{name: "cap counts comment lines", lineCap: 3, wantNames: []string{"a", "b"}},
		{name: "cap larger than input", lineCap: 1000, wantNames: []string{"a", "b", "c", "d"}},
		{name: "cap of one", lineCap: 1, wantNames: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(input, tt.lineCap)
			if err != nil {
				t.Fatalf("ParseCSV() error = %v", err)
			}
			var names []string
			for _, row := range got.Rows {
				names = append(names, row[0])
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("names = %q, want %q", names, tt.wantNames)
			}
		})
	}
}

func TestParseCSV_Idempotent(t *testing.T) {
	input := "pl_name,hostname\nKepler-22 b,Kepler-22\n51 Peg b,51 Peg\n"

	first, err := ParseCSV(input, 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseCSV(input, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differs: %+v vs %+v", first, second)
	}
}

func TestCheckHeader(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"pl_name,hostname\n", true},
		{"# comment\r\npl_name,hostname\r\n", true},
		{"# comment\n  pl_name,hostname\n", false},
		{"<html>Service Unavailable</html>", false},
		{"", false},
	}

	for _, tt := range tests {
		err := CheckHeader(tt.input)
		if tt.ok && err != nil {
			t.Errorf("CheckHeader(%q) = %v, want nil", tt.input, err)
		}
		if !tt.ok && !errors.Is(err, ErrSchemaNotFound) {
			t.Errorf("CheckHeader(%q) = %v, want ErrSchemaNotFound", tt.input, err)
		}

		// Must agree with ParseCSV.
		_, parseErr := ParseCSV(tt.input, 0)
		if (err == nil) != (parseErr == nil) {
			t.Errorf("CheckHeader(%q) and ParseCSV disagree: %v vs %v", tt.input, err, parseErr)
		}
	}
}
