package repo

import (
	"strings"

	"DeckBox/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB opens the database and runs migrations. A postgres://-style DSN
// selects Postgres; anything else (a path, file: URI, or empty for
// in-memory) opens SQLite through the CGO-free modernc driver.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Card{},
		&model.Deck{},
		&model.InventoryUnit{},
		&model.FeedEvent{},
		&model.CardPriceHistory{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
