// Package services provides the application services and their container.
package services

import (
	"github.com/streamflix/streamflix/internal/database"
	"github.com/streamflix/streamflix/internal/otp"
	"github.com/streamflix/streamflix/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	DB       database.Database
	Progress database.ProgressStore
	Ledger   *otp.Ledger
	Mailer   Mailer
	Catalog  *CatalogService
	Reset    *ResetService
	Logger   logger.Logger
}
