package main

import (
	"os"
	"strings"

	"github.com/streamflix/streamflix/internal/cache"
	"github.com/streamflix/streamflix/internal/config"
	"github.com/streamflix/streamflix/internal/database"
	"github.com/streamflix/streamflix/internal/handlers"
	"github.com/streamflix/streamflix/internal/otp"
	"github.com/streamflix/streamflix/internal/services"
	"github.com/streamflix/streamflix/pkg/logger"
)

var (
	Logger           logger.Logger
	Config           *config.Config
	DB               database.Database
	Progress         database.ProgressStore
	serviceContainer *services.Container
	handler          *handlers.Handler
)

func InitializeLogger() {
	Logger = logger.New()

	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	switch logLevel {
	case "", "debug", "info", "warn", "warning", "error":
		// Valid log levels
	default:
		Logger.Warnf("[App] unknown log level '%s', defaulting to info", os.Getenv("LOG_LEVEL"))
	}
}

func InitializeConfig() {
	var err error
	Config, err = config.Load()
	if err != nil {
		Logger.Fatalf("failed to load configuration: %v", err)
	}
}

func InitializeDatabase() {
	var err error

	DB, err = database.NewGorm(Config.DatabasePath)
	if err != nil {
		Logger.Fatalf("failed to initialize user database: %v", err)
	}
	Logger.Infof("[App] user database initialized at %s", Config.DatabasePath)

	Progress, err = database.NewBoltProgress(Config.ProgressPath)
	if err != nil {
		Logger.Fatalf("failed to initialize progress database: %v", err)
	}
	Logger.Infof("[App] progress database initialized at %s", Config.ProgressPath)
}

func InitializeServices() {
	catalogCache := cache.New(Config.CacheSize, Config.CacheTTL)
	ledger := otp.NewLedger(Config.OTPExpiry())

	mailer, err := services.NewMailer(Config, Logger)
	if err != nil {
		Logger.Fatalf("failed to initialize mailer: %v", err)
	}

	serviceContainer = &services.Container{
		DB:       DB,
		Progress: Progress,
		Ledger:   ledger,
		Mailer:   mailer,
		Catalog:  services.NewCatalog(Config.DataDir, catalogCache, Logger),
		Reset:    services.NewReset(DB, ledger, mailer, Config.OTPExpiryMinutes, Logger),
		Logger:   Logger,
	}

	handler = handlers.New(serviceContainer, Config)

	Logger.Infof("[App] services initialized successfully")
}
