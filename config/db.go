package config

import (
	"fmt"

	"chef-marketplace-api/logger"
	"chef-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// pendingRequestIndex keeps at most one pending role request per user.
const pendingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_role_requests_pending_user
ON role_requests(user_email) WHERE request_status = 'pending'`

// OpenDB opens the sqlite store at path and migrates every model.
func OpenDB(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// sqlite has a single writer; one connection keeps transactions from failing with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RoleRequest{},
		&models.Meal{},
		&models.Review{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderStatusHistory{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := db.Exec(pendingRequestIndex).Error; err != nil {
		return fmt.Errorf("create pending request index: %w", err)
	}
	return nil
}

// InitDB opens the configured database and installs it as DB.
func InitDB(cfg *Config) error {
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	DB = db
	logger.Info("database connected and migrated", "path", cfg.DBPath)
	return nil
}
