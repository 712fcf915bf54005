package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/streamflix/streamflix/internal/models"
)

const dbDirMode = 0755

// GormDB implements the Database interface on top of GORM with sqlite.
type GormDB struct {
	db *gorm.DB
}

// NewGorm opens (creating if needed) the sqlite user database at dbPath and
// runs migrations.
func NewGorm(dbPath string) (*GormDB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, dbDirMode); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &GormDB{db: db}, nil
}

// Close closes the underlying connection.
func (g *GormDB) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FindUserByEmail retrieves a user by exact email match.
// Email comparison is case-sensitive; no normalization is applied.
func (g *GormDB) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := g.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindUserByID retrieves a user by primary key.
func (g *GormDB) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := g.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user, enforcing email uniqueness at the
// storage layer.
func (g *GormDB) CreateUser(user *models.User) error {
	err := g.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SaveUser persists all fields of an existing user.
func (g *GormDB) SaveUser(user *models.User) error {
	if err := g.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdatePassword overwrites only the stored password hash, leaving the
// rest of the record untouched.
func (g *GormDB) UpdatePassword(id uint, hash string) error {
	res := g.db.Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update password: user %d not found", id)
	}
	return nil
}
