package repository

// StoreRepository is the durable key-value store behind the calendar
// subsystem. Keys are field-scoped strings; values are JSON blobs.
// Writes are last-write-wins and immediate.
type StoreRepository interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}
