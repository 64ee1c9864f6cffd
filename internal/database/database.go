// Package database owns the SQLite connection lifecycle for the catalog.
// The handle is constructed explicitly and passed into repositories and
// controllers; there is no ambient global connection.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/catalog/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats holds the entity counts shown on the catalog home page.
type Stats struct {
	Books              int64
	Instances          int64
	AvailableInstances int64
	Authors            int64
	Genres             int64
}

func (d *Database) GetStats() (Stats, error) {
	var s Stats
	if err := d.DB.Model(&entities.Book{}).Count(&s.Books).Error; err != nil {
		return s, err
	}
	if err := d.DB.Model(&entities.BookInstance{}).Count(&s.Instances).Error; err != nil {
		return s, err
	}
	if err := d.DB.Model(&entities.BookInstance{}).
		Where("status = ?", entities.StatusAvailable).
		Count(&s.AvailableInstances).Error; err != nil {
		return s, err
	}
	if err := d.DB.Model(&entities.Author{}).Count(&s.Authors).Error; err != nil {
		return s, err
	}
	if err := d.DB.Model(&entities.Genre{}).Count(&s.Genres).Error; err != nil {
		return s, err
	}
	return s, nil
}
