package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aeskit/internal/auth"
	"aeskit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to dsn. A "sqlite:" prefix or ":memory:" selects SQLite;
// anything else is handed to the Postgres driver.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "sqlite:") {
		db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite:")), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		// every connection to :memory: is a fresh database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{}, &models.Session{}, &models.AuditLog{}, &models.Vector{})
}

// SeedAdmin makes sure both roles exist and that email belongs to an
// Administrator. An existing user is left untouched.
func SeedAdmin(db *gorm.DB, email, password string) (bool, error) {
	for _, name := range []string{models.RoleAdministrator, models.RoleUser} {
		if err := db.FirstOrCreate(&models.Role{}, models.Role{Name: name}).Error; err != nil {
			return false, err
		}
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	var admin models.Role
	if err := db.First(&admin, "name = ?", models.RoleAdministrator).Error; err != nil {
		return false, err
	}
	u := models.User{Email: email, PasswordHash: hash, IsActive: true, Roles: []models.Role{admin}}
	if err := db.Create(&u).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Audit appends an audit log entry. A nil db is a no-op so callers can run
// without persistence.
func Audit(ctx context.Context, db *gorm.DB, userID, action string, metadata any) error {
	if db == nil {
		return nil
	}
	entry := models.AuditLog{Action: action, Metadata: models.NewJSONB(metadata)}
	if userID != "" {
		entry.UserID = &userID
	}
	return db.WithContext(ctx).Create(&entry).Error
}

// AuditLogs returns the newest entries, limited to userID unless it is empty.
func AuditLogs(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.AuditLog, error) {
	q := db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var logs []models.AuditLog
	err := q.Find(&logs).Error
	return logs, err
}
