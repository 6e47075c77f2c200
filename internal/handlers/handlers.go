package handlers

import (
	"DeckBox/internal/config"
	"DeckBox/internal/middleware"
	"DeckBox/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the routes.
func NewHandler(
	importer *service.Importer,
	transfers *service.TransferService,
	ledger *service.Ledger,
	access *service.Access,
	prices *service.PriceService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithUser)

	importHandler := NewImportHandler(importer, logger)
	transferHandler := NewTransferHandler(transfers, logger)
	inventoryHandler := NewInventoryHandler(ledger, access, logger)
	priceHandler := NewPriceHandler(prices, logger)
	groupHandler := NewGroupHandler(access, logger)

	r.Post("/api/import", importHandler.Import)
	r.Post("/api/transfer", transferHandler.Transfer)
	r.Post("/api/inventory/move", inventoryHandler.Move)
	r.Get("/api/box", inventoryHandler.OwnBox)
	r.Get("/api/users/{userID}/box", inventoryHandler.UserBox)
	r.Get("/api/decks/{deckID}/cards", inventoryHandler.DeckCards)
	r.Get("/api/cards/{cardID}/prices", priceHandler.History)
	r.Get("/api/groupmates", groupHandler.Groupmates)

	return &Handler{Router: r}
}
