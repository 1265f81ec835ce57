package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"croptech/entities"
)

// EventsXLSX renders the same table as EventsCSV into a single-sheet
// workbook with a bold header row.
func EventsXLSX(events entities.EventMap) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]any{"date", "watered", "fertilizer", "pesticide", "note"}); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "E1", style)
	}

	for i, k := range sortedDates(events) {
		row := eventRow(k, events[k])
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSXFilename names the spreadsheet download after the field.
func XLSXFilename(fieldID string) string { return "field-" + fieldID + "-events.xlsx" }
