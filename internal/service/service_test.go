package service

import (
	"testing"

	"DeckBox/internal/model"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens a per-test in-memory SQLite with all migrations applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        "file:" + t.Name() + "?mode=memory&cache=shared",
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
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
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func seedUser(t *testing.T, db *gorm.DB, user model.User) model.User {
	t.Helper()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCard(t *testing.T, db *gorm.DB, card model.Card) model.Card {
	t.Helper()
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return card
}

func seedDeck(t *testing.T, db *gorm.DB, deck model.Deck) model.Deck {
	t.Helper()
	if err := db.Create(&deck).Error; err != nil {
		t.Fatalf("seed deck: %v", err)
	}
	return deck
}

func seedGroup(t *testing.T, db *gorm.DB, name string, members ...*model.User) model.Group {
	t.Helper()
	group := model.Group{Name: name, Members: members}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return group
}
