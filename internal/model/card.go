package model

import "time"

// Card is a cached snapshot of one printing from the Scryfall oracle.
// Printings sharing an OracleID are editions of the same card. Rows are
// created and refreshed by the resolver, never authored locally.
type Card struct {
	ScryfallID string `gorm:"primaryKey;type:uuid"`
	OracleID   string `gorm:"index;type:uuid"`
	Name       string `gorm:"not null;index"`

	SetCode         string
	SetName         string
	CollectorNumber string

	// Oracle CDN URLs, no local image storage.
	ImageNormal  string
	ImageSmall   string
	ImageArtCrop string

	// Prices in USD, nil when the oracle has no listing.
	USD     *float64
	USDFoil *float64

	ManaCost      string
	CMC           float64
	TypeLine      string
	OracleText    string
	Colors        string // e.g. "WUB", "" for colorless
	ColorIdentity string
	Rarity        string

	LastUpdated time.Time `gorm:"autoUpdateTime"`
}

// Stale reports whether the cached data is older than ttl.
func (c *Card) Stale(ttl time.Duration) bool {
	if c.LastUpdated.IsZero() {
		return true
	}
	return time.Since(c.LastUpdated) >= ttl
}

// PriceFor returns the USD price matching the foil flag, nil when unknown.
func (c *Card) PriceFor(foil bool) *float64 {
	if foil {
		return c.USDFoil
	}
	return c.USD
}
