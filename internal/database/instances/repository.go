// Package instances provides database operations for physical book copies.
package instances

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all book-instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book-instance repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All retrieves every copy with its book resolved.
func (r *Repository) All() ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Preload("Book").Order("id ASC").Find(&instances).Error
	return instances, err
}

// ByID retrieves one copy with its book and the book's author resolved.
func (r *Repository) ByID(id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.Preload("Book").Preload("Book.Author").First(&instance, id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// ByBook retrieves all copies of the given book.
func (r *Repository) ByBook(bookID uint) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Where("book_id = ?", bookID).Order("id ASC").Find(&instances).Error
	return instances, err
}

// Create persists a new copy.
func (r *Repository) Create(instance *entities.BookInstance) error {
	return r.db.Omit("Book").Create(instance).Error
}

// Update replaces an existing copy's mutable fields wholesale.
func (r *Repository) Update(instance *entities.BookInstance) error {
	return r.db.Model(&entities.BookInstance{}).
		Where("id = ?", instance.ID).
		Select("book_id", "imprint", "status", "due_back").
		Updates(instance).Error
}

// Overdue retrieves loaned copies whose due date has passed.
func (r *Repository) Overdue(now time.Time) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Preload("Book").
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", entities.StatusLoaned, now).
		Order("due_back ASC").
		Find(&instances).Error
	return instances, err
}
