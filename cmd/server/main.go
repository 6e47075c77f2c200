package main

import (
	"net/http"

	"DeckBox/internal/config"
	"DeckBox/internal/handlers"
	"DeckBox/internal/middleware"
	"DeckBox/internal/repo"
	"DeckBox/internal/scryfall"
	"DeckBox/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	cardRepo := repo.NewCardRepository(gormDB)
	unitRepo := repo.NewInventoryRepository(gormDB)
	deckRepo := repo.NewDeckRepository(gormDB)
	groupRepo := repo.NewGroupRepository(gormDB)
	userRepo := repo.NewUserRepository(gormDB)
	feedRepo := repo.NewFeedRepository(gormDB)
	historyRepo := repo.NewPriceHistoryRepository(gormDB)

	oracle := scryfall.NewClient(cfg.ScryfallBaseURL, cfg.OracleTimeout, cfg.OracleDelay, sugar)

	resolver := service.NewResolver(cardRepo, oracle, cfg.CacheTTL, sugar)
	importer := service.NewImporter(resolver, unitRepo, feedRepo, sugar)
	transfers := service.NewTransferService(unitRepo, deckRepo, groupRepo, userRepo, sugar)
	ledger := service.NewLedger(unitRepo, deckRepo, feedRepo, sugar)
	access := service.NewAccess(userRepo, groupRepo, deckRepo)
	prices := service.NewPriceService(cardRepo, historyRepo, oracle, cfg.CacheTTL, sugar)

	h := handlers.NewHandler(importer, transfers, ledger, access, prices, sugar, cfg)

	addr := cfg.BaseURL
	sugar.Infow("Starting server",
		"addr", addr,
		"db", cfg.DatabaseDSN != "",
		"oracle_delay", cfg.OracleDelay,
		"cache_ttl", cfg.CacheTTL,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
