package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JonMunkholm/exoarchive/internal/core"
)

var recordColumns = []string{"Planet", "Host Star", "Method", "Year", "Period (days)", "Radius (R⊕)", "Mass (M⊕)", "Type", "Status"}

func measure(v float64, known bool) string {
	if !known {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func year(y int) string {
	if y <= 0 {
		return "N/A"
	}
	return strconv.Itoa(y)
}

func recordRow(r core.Record) []string {
	return []string{
		r.Name,
		r.HostStar,
		r.DiscoveryMethod,
		year(r.DiscoveryYear),
		measure(r.OrbitalPeriodDays, r.Known.OrbitalPeriod),
		measure(r.RadiusEarth, r.Known.Radius),
		measure(r.MassEarth, r.Known.Mass),
		string(r.PlanetType),
		string(r.Disposition),
	}
}

// renderRecords writes records in the requested format. caption is shown
// under tables only.
func renderRecords(w io.Writer, records []core.Record, format, caption string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, records)
	case FormatCSV:
		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = recordRow(r)
		}
		return renderCSV(w, recordColumns, rows)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No exoplanets match your search.")
		return nil
	}

	t := newTable(w, recordColumns)
	for _, r := range records {
		t.AppendRow(toRow(recordRow(r)))
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	if caption != "" {
		t.SetCaption("%s", caption)
	}
	t.Render()
	return nil
}

// renderKeyValues writes ordered label/value pairs. JSON output uses v
// instead so field names stay machine readable.
func renderKeyValues(w io.Writer, format string, pairs [][2]string, v any) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, v)
	case FormatCSV:
		rows := make([][]string, len(pairs))
		for i, p := range pairs {
			rows[i] = []string{p[0], p[1]}
		}
		return renderCSV(w, []string{"metric", "value"}, rows)
	}

	t := newTable(w, nil)
	for _, p := range pairs {
		t.AppendRow(table.Row{p[0], p[1]})
	}
	t.Render()
	return nil
}

// renderList writes a single column of values.
func renderList(w io.Writer, format, header string, values []string, v any) error {
	pairs := make([][]string, len(values))
	for i, s := range values {
		pairs[i] = []string{s}
	}
	switch format {
	case FormatJSON:
		return renderJSON(w, v)
	case FormatCSV:
		return renderCSV(w, []string{header}, pairs)
	}

	t := newTable(w, []string{header})
	for _, p := range pairs {
		t.AppendRow(toRow(p))
	}
	t.Render()
	return nil
}

func newTable(w io.Writer, header []string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if header != nil {
		t.AppendHeader(toRow(header))
	}
	return t
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
