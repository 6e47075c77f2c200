package repo

import (
	"testing"

	"DeckBox/internal/model"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens a per-test in-memory SQLite (modernc.org/sqlite) with all
// migrations applied.
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

// mkCard seeds a minimal cached card.
func mkCard(t *testing.T, db *gorm.DB, id, name, set, colors string) model.Card {
	t.Helper()
	card := model.Card{
		ScryfallID:    id,
		Name:          name,
		SetCode:       set,
		ColorIdentity: colors,
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return card
}

// mkUser seeds a user.
func mkUser(t *testing.T, db *gorm.DB, id int64, name string) model.User {
	t.Helper()
	user := model.User{ID: id, Username: name}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// mkDeck seeds a deck for a user.
func mkDeck(t *testing.T, db *gorm.DB, id, userID int64, name string) model.Deck {
	t.Helper()
	deck := model.Deck{ID: id, UserID: userID, Name: name}
	if err := db.Create(&deck).Error; err != nil {
		t.Fatalf("seed deck: %v", err)
	}
	return deck
}
