package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"DeckBox/internal/decklist"
	"DeckBox/internal/model"
	"DeckBox/internal/scryfall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const boltScryfallID = "11111111-1111-1111-1111-111111111111"

type mockCardRepo struct {
	mock.Mock
}

func (m *mockCardRepo) GetByID(ctx context.Context, scryfallID string) (*model.Card, error) {
	args := m.Called(ctx, scryfallID)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *mockCardRepo) FindByName(ctx context.Context, name string) (*model.Card, error) {
	args := m.Called(ctx, name)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *mockCardRepo) FindByPrinting(ctx context.Context, setCode, collectorNumber string) (*model.Card, error) {
	args := m.Called(ctx, setCode, collectorNumber)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *mockCardRepo) Upsert(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *mockCardRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Card, error) {
	args := m.Called(ctx, cutoff, limit)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) NamedExact(ctx context.Context, name, setCode string) (model.Card, error) {
	args := m.Called(ctx, name, setCode)
	return args.Get(0).(model.Card), args.Error(1)
}

func (m *mockOracle) NamedFuzzy(ctx context.Context, name string) (model.Card, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Card), args.Error(1)
}

func (m *mockOracle) ByPrinting(ctx context.Context, setCode, collectorNumber string) (model.Card, error) {
	args := m.Called(ctx, setCode, collectorNumber)
	return args.Get(0).(model.Card), args.Error(1)
}

func (m *mockOracle) Printings(ctx context.Context, oracleID string) ([]model.Card, error) {
	args := m.Called(ctx, oracleID)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

func notFound() error {
	return &scryfall.Error{Message: "card not found", StatusCode: 404, NotFound: true}
}

func TestResolver_FreshCacheHitSkipsOracle(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cached := &model.Card{
		ScryfallID:  boltScryfallID,
		Name:        "Lightning Bolt",
		SetCode:     "LEA",
		LastUpdated: time.Now(),
	}
	cards.On("FindByName", mock.Anything, "Lightning Bolt").Return(cached, nil)

	card, err := r.Resolve(context.Background(), decklist.ParsedLine{Quantity: 1, Name: "Lightning Bolt"})
	require.NoError(t, err)
	assert.Equal(t, boltScryfallID, card.ScryfallID)
	oracle.AssertNotCalled(t, "NamedExact", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_CacheMissFetchesAndUpserts(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cards.On("FindByName", mock.Anything, "Lightning Bolt").Return(nil, gorm.ErrRecordNotFound)
	fresh := model.Card{ScryfallID: boltScryfallID, Name: "Lightning Bolt", SetCode: "CLB"}
	oracle.On("NamedExact", mock.Anything, "Lightning Bolt", "").Return(fresh, nil)
	cards.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	card, err := r.Resolve(context.Background(), decklist.ParsedLine{Quantity: 1, Name: "Lightning Bolt"})
	require.NoError(t, err)
	assert.Equal(t, boltScryfallID, card.ScryfallID)
	cards.AssertCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestResolver_PrintingReferenceUsesSetAndNumber(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cards.On("FindByPrinting", mock.Anything, "PLST", "BBD-190").Return(nil, gorm.ErrRecordNotFound)
	fresh := model.Card{ScryfallID: boltScryfallID, Name: "Arcane Signet", SetCode: "PLST"}
	oracle.On("ByPrinting", mock.Anything, "PLST", "BBD-190").Return(fresh, nil)
	cards.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	ref := decklist.ParsedLine{Quantity: 1, Name: "Arcane Signet", SetCode: "PLST", CollectorNumber: "BBD-190"}
	card, err := r.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "Arcane Signet", card.Name)
	oracle.AssertNotCalled(t, "NamedExact", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_NameHitFromOtherEditionDoesNotSatisfySetPin(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cached := &model.Card{ScryfallID: boltScryfallID, Name: "Lightning Bolt", SetCode: "CLB", LastUpdated: time.Now()}
	cards.On("FindByName", mock.Anything, "Lightning Bolt").Return(cached, nil)
	fromLEA := model.Card{ScryfallID: "44444444-4444-4444-4444-444444444444", Name: "Lightning Bolt", SetCode: "LEA"}
	oracle.On("NamedExact", mock.Anything, "Lightning Bolt", "LEA").Return(fromLEA, nil)
	cards.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	ref := decklist.ParsedLine{Quantity: 1, Name: "Lightning Bolt", SetCode: "LEA"}
	card, err := r.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "LEA", card.SetCode)
}

func TestResolver_FuzzyFallbackFixesTypo(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cards.On("FindByName", mock.Anything, "Lihgtning Bolt").Return(nil, gorm.ErrRecordNotFound)
	oracle.On("NamedExact", mock.Anything, "Lihgtning Bolt", "").Return(model.Card{}, notFound())
	fixed := model.Card{ScryfallID: boltScryfallID, Name: "Lightning Bolt", SetCode: "CLB"}
	oracle.On("NamedFuzzy", mock.Anything, "Lihgtning Bolt").Return(fixed, nil)
	cards.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	card, err := r.Resolve(context.Background(), decklist.ParsedLine{Quantity: 1, Name: "Lihgtning Bolt"})
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", card.Name)
}

func TestResolver_UnknownCardYieldsNotFoundErrorWithRawLine(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, 7*24*time.Hour, testLogger())

	cards.On("FindByName", mock.Anything, "Lightnig Bot").Return(nil, gorm.ErrRecordNotFound)
	oracle.On("NamedExact", mock.Anything, "Lightnig Bot", "").Return(model.Card{}, notFound())
	oracle.On("NamedFuzzy", mock.Anything, "Lightnig Bot").Return(model.Card{}, notFound())

	ref := decklist.ParsedLine{Quantity: 4, Name: "Lightnig Bot", Raw: "4 Lightnig Bot"}
	_, err := r.Resolve(context.Background(), ref)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Lightnig Bot", nf.Name)
	assert.Equal(t, "4 Lightnig Bot", nf.Raw)
}

func TestResolver_OracleOutageFailsEvenWithStaleCache(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, time.Hour, testLogger())

	stale := &model.Card{
		ScryfallID:  boltScryfallID,
		Name:        "Lightning Bolt",
		SetCode:     "LEA",
		LastUpdated: time.Now().Add(-48 * time.Hour),
	}
	cards.On("FindByName", mock.Anything, "Lightning Bolt").Return(stale, nil)
	outage := errors.New("connection refused")
	oracle.On("NamedExact", mock.Anything, "Lightning Bolt", "").Return(model.Card{}, outage)

	_, err := r.Resolve(context.Background(), decklist.ParsedLine{Quantity: 1, Name: "Lightning Bolt"})
	assert.ErrorIs(t, err, outage, "a stale row never hides an oracle failure")
	cards.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestResolver_OracleOutageWithoutCacheFails(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, time.Hour, testLogger())

	cards.On("FindByName", mock.Anything, "Lightning Bolt").Return(nil, gorm.ErrRecordNotFound)
	outage := errors.New("connection refused")
	oracle.On("NamedExact", mock.Anything, "Lightning Bolt", "").Return(model.Card{}, outage)

	_, err := r.Resolve(context.Background(), decklist.ParsedLine{Quantity: 1, Name: "Lightning Bolt"})
	assert.ErrorIs(t, err, outage)

	var nf *NotFoundError
	assert.False(t, errors.As(err, &nf), "an outage is not a not-found")
}

func TestResolver_RefreshIfStale(t *testing.T) {
	cards := new(mockCardRepo)
	oracle := new(mockOracle)
	r := NewResolver(cards, oracle, time.Hour, testLogger())

	fresh := &model.Card{ScryfallID: boltScryfallID, SetCode: "LEA", CollectorNumber: "161", LastUpdated: time.Now()}
	cards.On("GetByID", mock.Anything, boltScryfallID).Return(fresh, nil)

	require.NoError(t, r.RefreshIfStale(context.Background(), boltScryfallID, time.Hour))
	oracle.AssertNotCalled(t, "ByPrinting", mock.Anything, mock.Anything, mock.Anything)
}
