package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gwi.com/chat-memstore/internal/auth"
	"gwi.com/chat-memstore/internal/config"
	"gwi.com/chat-memstore/internal/core"
	"gwi.com/chat-memstore/internal/logger"
	"gwi.com/chat-memstore/internal/seed"
	"gwi.com/chat-memstore/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	seedFile := flag.String("seed", config.AppConfig.SeedFile, "Load fixtures from this JSON file at startup")
	reportUser := flag.String("report-user", "", "Log the recent message count for this user id after seeding")
	once := flag.Bool("once", false, "Exit after seeding instead of waiting for a signal")
	flag.Parse()

	log := logger.New(config.AppConfig.LogLevel)
	defer log.Sync()

	// One store per process, owned here and handed to everything that needs it.
	db := store.NewMemoryStore()
	hasher := auth.NewHasher(config.AppConfig.BcryptCost)
	queries := core.NewQueryService(db, hasher, log.Named("queries"))

	if *seedFile != "" {
		loader := &seed.Loader{DB: db, Queries: queries, Hasher: hasher, Log: log.Named("seed")}
		if _, err := loader.LoadFile(*seedFile); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}

	if *reportUser != "" {
		count := queries.GetMessageCountByUserID(*reportUser, config.AppConfig.MessageWindowHours)
		log.Info("Recent message count",
			zap.String("user_id", *reportUser),
			zap.Int("window_hours", config.AppConfig.MessageWindowHours),
			zap.Int("count", count),
		)
	}

	if *once {
		return
	}

	stats := db.Stats()
	log.Info("In-memory store ready. Press Ctrl+C to quit.", zap.Any("rows", stats))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down, in-memory data is discarded")
}
