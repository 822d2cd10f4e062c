package main

import (
	"context"
	"log"
	"time"

	_ "github.com/ridwanfathin/ai-invoice-import/docs"
	"github.com/ridwanfathin/ai-invoice-import/internal/billingapi"
	"github.com/ridwanfathin/ai-invoice-import/internal/config"
	"github.com/ridwanfathin/ai-invoice-import/internal/database"
	"github.com/ridwanfathin/ai-invoice-import/internal/handler"
	"github.com/ridwanfathin/ai-invoice-import/internal/middleware"
	"github.com/ridwanfathin/ai-invoice-import/internal/server"
	"github.com/ridwanfathin/ai-invoice-import/internal/session"
	"github.com/ridwanfathin/ai-invoice-import/internal/workflow"
)

const (
	sweepInterval = time.Minute
	// busyGrace is added to the backend timeout before a busy session counts as abandoned
	busyGrace = 30 * time.Second
)

//go:generate swag init -d ../../ -g cmd/server/main.go -o ../../docs

// @title AI Invoice Import
// @version 1.0
// @description Upload an invoice image, review the AI extracted data and create the invoice in the billing backend.
// @BasePath /
func main() {
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.LogFormat, cfg.LogLevel, nil)

	// Billing backend client
	client := billingapi.NewClient(&billingapi.Config{
		BaseURL: cfg.BillingAPIURL,
		Token:   cfg.BillingAPIToken,
		Timeout: cfg.BillingAPITimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session store
	var (
		store   workflow.Store
		locker  workflow.Locker
		closeFn func() error
	)
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.SessionTTL)
		if err != nil {
			config.LogError(logger, "main", "main", "connecting to redis", cfg.RedisAddr, err)
			log.Fatalf("Failed to initialize session store: %v", err)
		}
		store = redisStore
		locker = redisStore.Locker()
		closeFn = redisStore.Close
	case config.SessionStorePostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			config.LogError(logger, "main", "main", "connecting to postgres", nil, err)
			log.Fatalf("Failed to initialize session store: %v", err)
		}
		pgStore := session.NewPostgresStore(db.GetPool(), cfg.SessionTTL)
		go pgStore.RunSweeper(ctx, sweepInterval, func(err error) {
			config.LogError(logger, "session", "RunSweeper", "sweeping expired sessions", nil, err)
		})
		store = pgStore
		closeFn = func() error {
			cancel()
			return db.Close()
		}
	default:
		memoryStore := session.NewMemoryStore(cfg.SessionTTL)
		go memoryStore.RunSweeper(ctx, sweepInterval)
		store = memoryStore
		closeFn = func() error {
			cancel()
			return nil
		}
	}
	logger.WithField("store", cfg.SessionStore).Info("Session store ready")

	service := workflow.NewService(client, store, logger)
	service.SetBusyTimeout(cfg.BillingAPITimeout + busyGrace)
	if locker != nil {
		service.SetLocker(locker)
	}

	importHandler := handler.NewImportHandler(service, logger, handler.ImportConfig{
		InvoiceViewURL: cfg.InvoiceViewURL,
		Cookie: middleware.SessionConfig{
			MaxAge: int(cfg.SessionTTL / time.Second),
			Secure: cfg.CookieSecure,
		},
	})

	logger.Info("Configuring server...")
	appServer, err := server.NewServer(cfg, logger, importHandler)
	if err != nil {
		log.Fatalf("Failed to configure server: %v", err)
	}
	appServer.OnShutdown(closeFn)

	if err := appServer.Start(); err != nil {
		config.LogError(logger, "main", "main", "running server", nil, err)
		log.Fatalf("Server error: %v", err)
	}

	logger.Info("Server shutdown complete")
}
