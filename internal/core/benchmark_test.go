package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JonMunkholm/exoarchive/internal/schema"
)

// ============================================================================
// Conversion Function Benchmarks
// ============================================================================

// BenchmarkParseFloatSoft benchmarks numeric cell conversion.
// Every record converts five numeric cells.
func BenchmarkParseFloatSoft(b *testing.B) {
	testCases := []string{
		"365",
		"384.843",
		"1.2e-3",
		"",        // Missing
		"  4.2  ", // Whitespace
		`"11.18"`, // Quoted
		"NaN",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseFloatSoft(tc)
		}
	}
}

// BenchmarkParseYear benchmarks year parsing.
func BenchmarkParseYear(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseYear("2015")
	}
}

// BenchmarkCleanCell benchmarks cell cleanup.
func BenchmarkCleanCell(b *testing.B) {
	testCases := []string{
		"Kepler-452 b",
		"  Kepler-452  ",
		`"Radial Velocity"`,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			CleanCell(tc)
		}
	}
}

// ============================================================================
// Parsing Benchmarks
// ============================================================================

// BenchmarkParseCSV benchmarks splitting the browser's worth of lines.
func BenchmarkParseCSV(b *testing.B) {
	text := numberedCSV(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseCSV(text, 1000)
	}
}

// BenchmarkParseCSV_Large benchmarks an uncapped parse of a larger export.
func BenchmarkParseCSV_Large(b *testing.B) {
	text := numberedCSV(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseCSV(text, 0)
	}
}

// BenchmarkCheckHeader_LatePreamble benchmarks the header scan behind a long
// comment preamble, like the archive's column documentation block.
func BenchmarkCheckHeader_LatePreamble(b *testing.B) {
	text := strings.Repeat("# COLUMN pl_name: Planet Name\n", 300) + numberedCSV(10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CheckHeader(text)
	}
}

// BenchmarkNormalize benchmarks record normalization with a resolved layout.
func BenchmarkNormalize(b *testing.B) {
	parsed, err := ParseCSV(numberedCSV(1000), 0)
	if err != nil {
		b.Fatal(err)
	}
	cols := schema.DefaultLayout().Resolve(parsed.Header)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Normalize(parsed.Rows, cols, NormalizeOptions{})
	}
}

// BenchmarkResolveLayout benchmarks building the named-column lookup.
func BenchmarkResolveLayout(b *testing.B) {
	header := archiveHeader()
	layout := schema.DefaultLayout()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layout.Resolve(header)
	}
}

// ============================================================================
// Query Benchmarks
// ============================================================================

// BenchmarkFilter benchmarks a search over the browser view.
func BenchmarkFilter(b *testing.B) {
	records := benchmarkRecords(b, 1000)

	b.Run("search", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Filter(records, Query{Search: "PLANET-05"})
		}
	})

	b.Run("method", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Filter(records, Query{Method: "Transit"})
		}
	})
}

// BenchmarkRecent benchmarks the stable year sort.
func BenchmarkRecent(b *testing.B) {
	records := benchmarkRecords(b, 1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Recent(records, 10)
	}
}

// BenchmarkComputeStats benchmarks aggregation over a full view.
func BenchmarkComputeStats(b *testing.B) {
	records := benchmarkRecords(b, 1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ComputeStats(records)
	}
}

// BenchmarkReadSource_LargeBody benchmarks BOM stripping and UTF-8 cleanup.
func BenchmarkReadSource_LargeBody(b *testing.B) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, bytes.Repeat([]byte("Kepler-452 b,Kepler-452,,CONFIRMED\n"), 3000)...)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		readSource(bytes.NewReader(data), 0)
	}
}

// ============================================================================
// Parallel Benchmarks
// ============================================================================

// BenchmarkParseFloatSoftParallel benchmarks concurrent conversion.
func BenchmarkParseFloatSoftParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ParseFloatSoft("384.843")
		}
	})
}

// BenchmarkFilterParallel benchmarks concurrent searches, as concurrent
// requests would issue them.
func BenchmarkFilterParallel(b *testing.B) {
	records := benchmarkRecords(b, 1000)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Filter(records, Query{Search: "star-1"})
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// benchmarkRecords parses n generated records.
func benchmarkRecords(b *testing.B, n int) []Record {
	b.Helper()
	parsed, err := ParseCSV(numberedCSV(n), 0)
	if err != nil {
		b.Fatal(err)
	}
	return Normalize(parsed.Rows, schema.DefaultLayout().Resolve(parsed.Header), NormalizeOptions{})
}
