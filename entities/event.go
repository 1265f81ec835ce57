package entities

// DatePair holds the planting/harvest dates for one field. Either side
// may be empty; both are plain "YYYY-MM-DD" strings.
type DatePair struct {
	Planting string `json:"planting"`
	Harvest  string `json:"harvest"`
}

// DayEvent records farm activity on one calendar date. A zero DayEvent
// is semantically empty but still a valid entry.
type DayEvent struct {
	Watered    bool   `json:"watered,omitempty"`
	Fertilizer bool   `json:"fertilizer,omitempty"`
	Pesticide  bool   `json:"pesticide,omitempty"`
	Note       string `json:"note,omitempty"`
}

// EventMap keys day events by ISO date string (YYYY-MM-DD).
type EventMap map[string]DayEvent
