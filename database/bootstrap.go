package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"integrarural/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}

// Migrate runs AutoMigrate for every entity. Split out so tests can reuse
// it against :memory: databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Farm{},
		&entities.Warehouse{},
		&entities.Load{},
		&entities.User{},
		&entities.FarmPermission{},
	)
}
