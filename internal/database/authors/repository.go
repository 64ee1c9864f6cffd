// Package authors provides database operations for catalog authors.
package authors

import (
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All retrieves every author, sorted by family name.
func (r *Repository) All() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

// ByID retrieves one author by identity.
func (r *Repository) ByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Create persists a new author.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update replaces an existing author's mutable fields wholesale.
// Select forces zero values through, so cleared dates become NULL.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Model(&entities.Author{}).
		Where("id = ?", author.ID).
		Select("first_name", "family_name", "date_of_birth", "date_of_death").
		Updates(author).Error
}
