package repo

import (
	"context"
	"testing"
	"time"

	"DeckBox/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCardRepo_FindByNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	mkCard(t, db, boltID, "Lightning Bolt", "LEA", "R")
	r := NewCardRepository(db)
	ctx := context.Background()

	card, err := r.FindByName(ctx, "lightning BOLT")
	require.NoError(t, err)
	assert.Equal(t, boltID, card.ScryfallID)

	_, err = r.FindByName(ctx, "Lightning Axe")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCardRepo_FindByPrinting(t *testing.T) {
	db := newTestDB(t)
	card := model.Card{
		ScryfallID:      boltID,
		Name:            "Lightning Bolt",
		SetCode:         "LEA",
		CollectorNumber: "161",
	}
	require.NoError(t, db.Create(&card).Error)
	r := NewCardRepository(db)
	ctx := context.Background()

	got, err := r.FindByPrinting(ctx, "lea", "161")
	require.NoError(t, err)
	assert.Equal(t, boltID, got.ScryfallID)

	_, err = r.FindByPrinting(ctx, "LEA", "162")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCardRepo_UpsertOverwritesCachedFields(t *testing.T) {
	db := newTestDB(t)
	r := NewCardRepository(db)
	ctx := context.Background()

	usd := 1.25
	require.NoError(t, r.Upsert(ctx, &model.Card{
		ScryfallID: boltID,
		Name:       "Lightning Bolt",
		SetCode:    "LEA",
		USD:        &usd,
	}))

	usd2 := 2.50
	require.NoError(t, r.Upsert(ctx, &model.Card{
		ScryfallID: boltID,
		Name:       "Lightning Bolt",
		SetCode:    "LEA",
		USD:        &usd2,
	}))

	got, err := r.GetByID(ctx, boltID)
	require.NoError(t, err)
	require.NotNil(t, got.USD)
	assert.Equal(t, 2.50, *got.USD)

	var count int64
	db.Model(&model.Card{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCardRepo_ListStaleOldestFirst(t *testing.T) {
	db := newTestDB(t)
	r := NewCardRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []model.Card{
		{ScryfallID: boltID, Name: "Lightning Bolt", LastUpdated: now.Add(-72 * time.Hour)},
		{ScryfallID: stormID, Name: "Brainstorm", LastUpdated: now.Add(-48 * time.Hour)},
		{ScryfallID: "33333333-3333-3333-3333-333333333333", Name: "Ponder", LastUpdated: now},
	}
	for i := range seed {
		// Bypass autoUpdateTime so the seeded timestamps survive.
		require.NoError(t, db.Model(&model.Card{}).Create(map[string]any{
			"scryfall_id":  seed[i].ScryfallID,
			"name":         seed[i].Name,
			"last_updated": seed[i].LastUpdated,
		}).Error)
	}

	stale, err := r.ListStale(ctx, now.Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "Lightning Bolt", stale[0].Name)
	assert.Equal(t, "Brainstorm", stale[1].Name)

	one, err := r.ListStale(ctx, now.Add(-24*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Lightning Bolt", one[0].Name)
}
