package service

import (
	"math"
	"time"

	"croptech/entities"
)

const dateLayout = "2006-01-02"

type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type DayCell struct {
	Day        int    `json:"day"`
	Date       string `json:"date"`
	Planting   bool   `json:"planting,omitempty"`
	Harvest    bool   `json:"harvest,omitempty"`
	Selected   bool   `json:"selected,omitempty"`
	Watered    bool   `json:"watered,omitempty"`
	Fertilizer bool   `json:"fertilizer,omitempty"`
	Pesticide  bool   `json:"pesticide,omitempty"`
	HasNote    bool   `json:"has_note,omitempty"`
}

// MonthGrid is one month of the calendar view. StartOffset is the
// weekday of day 1 (Sunday = 0), i.e. the leading blank cell count.
type MonthGrid struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	MonthName   string     `json:"month_name"`
	Days        int        `json:"days"`
	StartOffset int        `json:"start_offset"`
	Index       int        `json:"index"`
	RangeLength int        `json:"range_length"`
	Cells       []DayCell  `json:"cells"`
}

type CalendarService interface {
	Dates(fieldID, initialPlanting, initialHarvest string) entities.DatePair
	SetDates(fieldID string, pair entities.DatePair) entities.DatePair
	ClearDates(fieldID string)
	MonthRange(fieldID string) []YearMonth
	Navigate(fieldID string, delta int) int
	Grid(fieldID string, index int, selected string) (*MonthGrid, bool)
	Events(fieldID string) entities.EventMap
	Toggle(fieldID, date, flag string) (entities.DayEvent, error)
	SetNote(fieldID, date, note string) entities.DayEvent
	ClearEvents(fieldID string)
	Duration(fieldID string) *int
}

// FormatDateKey renders a date as its ISO event-map key.
func FormatDateKey(t time.Time) string { return t.Format(dateLayout) }

// MonthsBetween lists the months from start's month through end's
// month, inclusive and gapless.
func MonthsBetween(start, end time.Time) []YearMonth {
	var months []YearMonth
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		months = append(months, YearMonth{Year: cur.Year(), Month: cur.Month()})
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// RangeFor derives the visible month range for a date pair: planting
// month through harvest month, or planting month plus two when no
// harvest date is set. No planting date means no range.
func RangeFor(pair entities.DatePair) []YearMonth {
	start, err := time.Parse(dateLayout, pair.Planting)
	if err != nil {
		return nil
	}
	end := start.AddDate(0, 2, 0) // show 3 months by default
	if h, err := time.Parse(dateLayout, pair.Harvest); err == nil {
		end = h
	}
	return MonthsBetween(start, end)
}

// DaysBetween is the whole-day difference b minus a, rounded to the
// nearest day, or nil when either date is missing or unparsable.
// Negative results are passed through as-is.
func DaysBetween(a, b string) *int {
	if a == "" || b == "" {
		return nil
	}
	da, err1 := time.Parse(dateLayout, a)
	db, err2 := time.Parse(dateLayout, b)
	if err1 != nil || err2 != nil {
		return nil
	}
	d := int(math.Round(db.Sub(da).Hours() / 24))
	return &d
}

// DaysIn reports the day count of a month and the weekday offset of
// its first day.
func DaysIn(year int, month time.Month) (days, startOffset int) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days = first.AddDate(0, 1, -1).Day()
	startOffset = int(first.Weekday())
	return days, startOffset
}
