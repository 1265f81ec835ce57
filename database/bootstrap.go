// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"croptech/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	// The store table is append-heavy and written on every toggle;
	// wait out writer contention instead of failing.
	if err := db.Exec(`PRAGMA busy_timeout = 2000`).Error; err != nil {
		log.Printf("WARN: busy_timeout: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.StoreEntry{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
