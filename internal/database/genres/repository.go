// Package genres provides database operations for catalog genres.
package genres

import (
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All retrieves every genre, sorted by name.
func (r *Repository) All() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// ByID retrieves one genre by identity.
func (r *Repository) ByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// ByIDs retrieves the genres matching the given identities.
// Missing identities are simply absent from the result.
func (r *Repository) ByIDs(ids []uint) ([]entities.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []entities.Genre
	err := r.db.Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}

// Create persists a new genre.
func (r *Repository) Create(genre *entities.Genre) error {
	return r.db.Create(genre).Error
}

// Update replaces an existing genre's mutable fields wholesale.
func (r *Repository) Update(genre *entities.Genre) error {
	return r.db.Model(&entities.Genre{}).
		Where("id = ?", genre.ID).
		Select("name").
		Updates(genre).Error
}
