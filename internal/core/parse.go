package core

import (
	"strings"

	"github.com/JonMunkholm/exoarchive/internal/schema"
)

// ParsedCSV is the result of splitting an archive export into header and
// data rows.
type ParsedCSV struct {
	// HeaderLine is the 0-based line number of the header.
	HeaderLine int
	Header     []string
	Rows       []RawRecord
}

// ParseCSV locates the archive header and splits the data lines that follow
// it. Lines are split on '\n' with a trailing '\r' removed. The header is the
// first line starting with schema.HeaderPrefix; if there is none a
// *SchemaNotFoundError is returned.
//
// When lineCap > 0 only the first lineCap lines after the header are
// considered. The cap counts raw lines, so blank and '#' comment lines that
// fall inside it are dropped without being replaced.
//
// Rows are split on ',' with no quote handling: a quoted field that contains
// a comma shifts every following column.
func ParseCSV(text string, lineCap int) (*ParsedCSV, error) {
	lines := strings.Split(text, "\n")

	header := -1
	for i, line := range lines {
		if strings.HasPrefix(trimCR(line), schema.HeaderPrefix) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, newSchemaNotFound(len(lines))
	}

	candidates := lines[header+1:]
	if lineCap > 0 && len(candidates) > lineCap {
		candidates = candidates[:lineCap]
	}

	parsed := &ParsedCSV{
		HeaderLine: header,
		Header:     splitLine(trimCR(lines[header])),
		Rows:       make([]RawRecord, 0, len(candidates)),
	}

	for _, line := range candidates {
		line = trimCR(line)
		if isSkippable(line) {
			continue
		}
		parsed.Rows = append(parsed.Rows, RawRecord(splitLine(line)))
	}

	return parsed, nil
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// isSkippable reports whether a line is blank or starts with '#'. An
// indented '#' is data.
func isSkippable(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#")
}

func splitLine(line string) []string {
	return strings.Split(line, ",")
}

// CheckHeader returns a *SchemaNotFoundError when text has no header line.
// It is cheaper than ParseCSV and is used to reject bodies before they are
// cached or stored.
func CheckHeader(text string) error {
	if strings.HasPrefix(text, schema.HeaderPrefix) || strings.Contains(text, "\n"+schema.HeaderPrefix) {
		return nil
	}
	return newSchemaNotFound(strings.Count(text, "\n") + 1)
}
