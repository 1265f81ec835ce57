package entities

import "time"

// StoreEntry is one row of the field-scoped persistence store, a
// key-value table playing the role browser localStorage played for the
// calendar subsystem. Keys are namespaced per field
// (field-<id>-dates, field-<id>-events) so no two fields collide.
type StoreEntry struct {
	Key       string `gorm:"primaryKey" json:"key"`
	Value     string `json:"value"`
	UpdatedAt time.Time
}
