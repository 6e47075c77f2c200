package model

import "time"

// CardPriceHistory is one price snapshot for a printing, appended by the
// price refresher whenever a refreshed price differs from the last snapshot.
type CardPriceHistory struct {
	ID             int64  `gorm:"primaryKey"`
	CardScryfallID string `gorm:"not null;index;type:uuid"`
	Card           *Card  `gorm:"foreignKey:CardScryfallID"`

	USD     *float64
	USDFoil *float64

	RecordedAt time.Time `gorm:"autoCreateTime;index"`
}
