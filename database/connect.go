package database

import (
	"fmt"
	"strconv"

	"haven_manager/config"
	"haven_manager/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres pool and migrates the schema. The returned
// handle is owned by the caller: constructed at startup, closed at shutdown.
func Connect() (*gorm.DB, error) {
	port, err := strconv.ParseUint(config.ConfigDefault("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Haven{},
		&model.HavenImage{},
		&model.BlockedDate{},
		&model.Booking{},
		&model.BookingPayment{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
