// Package books provides database operations for catalog books.
package books

import (
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All retrieves every book with its author, sorted by title.
func (r *Repository) All() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// ByID retrieves one book with its author and genres resolved.
func (r *Repository) ByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ByAuthor retrieves all books referencing the given author.
func (r *Repository) ByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author_id = ?", authorID).Order("title ASC").Find(&books).Error
	return books, err
}

// ByGenre retrieves all books carrying the given genre.
func (r *Repository) ByGenre(genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// Create persists a new book and its genre associations.
// Omit stops GORM from upserting the referenced author and genre rows;
// only the book row and the join rows are written.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit("Author", "Genres.*").Create(book).Error
}

// Update replaces an existing book's mutable fields wholesale and swaps
// its genre set for the candidate's, inside one transaction.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entities.Book{}).
			Where("id = ?", book.ID).
			Select("title", "summary", "isbn", "author_id").
			Updates(book).Error
		if err != nil {
			return err
		}
		return tx.Model(&entities.Book{ID: book.ID}).
			Omit("Genres.*").
			Association("Genres").
			Replace(book.Genres)
	})
}
