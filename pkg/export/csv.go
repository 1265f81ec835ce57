// Package export renders a field's event log as downloadable tables.
package export

import (
	"sort"
	"strings"

	"croptech/entities"
)

var header = []string{"date", "watered", "fertilizer", "pesticide", "note"}

// EventsCSV renders the event map as CSV: one row per date sorted by
// date string ascending, boolean flags as "1"/"0", every cell wrapped
// in double quotes with internal quotes doubled, rows joined by CRLF.
func EventsCSV(events entities.EventMap) string {
	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, header)
	for _, k := range sortedDates(events) {
		rows = append(rows, eventRow(k, events[k]))
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
		}
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\r\n")
}

// CSVFilename names the download after the field identifier.
func CSVFilename(fieldID string) string { return "field-" + fieldID + "-events.csv" }

func eventRow(date string, e entities.DayEvent) []string {
	return []string{date, flag(e.Watered), flag(e.Fertilizer), flag(e.Pesticide), e.Note}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func sortedDates(events entities.EventMap) []string {
	keys := make([]string, 0, len(events))
	for k := range events {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
