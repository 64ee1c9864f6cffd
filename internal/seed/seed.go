// Package seed populates a catalog database with sample data from
// public domain books, for demos and local development.
package seed

import (
	"fmt"
	"log"
	"time"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

type bookConfig struct {
	book       entities.Book
	authorName string // family name key into the seeded authors
	genreNames []string
	imprints   []entities.BookInstance
}

// Run fills the database with a small public-domain catalog. It is not
// idempotent; run it against a fresh database.
func Run(db *database.Database) error {
	authors := []entities.Author{
		{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: date(1775, time.December, 16), DateOfDeath: date(1817, time.July, 18)},
		{FirstName: "Herman", FamilyName: "Melville", DateOfBirth: date(1819, time.August, 1), DateOfDeath: date(1891, time.September, 28)},
		{FirstName: "Mary", FamilyName: "Shelley", DateOfBirth: date(1797, time.August, 30), DateOfDeath: date(1851, time.February, 1)},
		{FirstName: "Marcus", FamilyName: "Aurelius", DateOfDeath: date(180, time.March, 17)},
	}
	authorsByFamily := make(map[string]*entities.Author)
	for i := range authors {
		if err := db.DB.Create(&authors[i]).Error; err != nil {
			return fmt.Errorf("seeding author %s: %w", authors[i].FamilyName, err)
		}
		authorsByFamily[authors[i].FamilyName] = &authors[i]
		log.Printf("Seeded author: %s", authors[i].Name())
	}

	genreNames := []string{"Fiction", "Gothic", "Philosophy", "Romance"}
	genresByName := make(map[string]*entities.Genre)
	for _, name := range genreNames {
		g := &entities.Genre{Name: name}
		if err := db.DB.Create(g).Error; err != nil {
			return fmt.Errorf("seeding genre %s: %w", name, err)
		}
		genresByName[name] = g
		log.Printf("Seeded genre: %s", name)
	}

	books := []bookConfig{
		{
			authorName: "Austen",
			genreNames: []string{"Fiction", "Romance"},
			book: entities.Book{
				Title:   "Pride and Prejudice",
				Summary: "The turbulent courtship of Elizabeth Bennet and Fitzwilliam Darcy.",
				ISBN:    "9780141439518",
			},
			imprints: []entities.BookInstance{
				{Imprint: "Penguin Classics, 2002", Status: entities.StatusAvailable},
				{Imprint: "Everyman's Library, 1991", Status: entities.StatusLoaned, DueBack: date(2026, time.September, 15)},
			},
		},
		{
			authorName: "Austen",
			genreNames: []string{"Fiction", "Romance"},
			book: entities.Book{
				Title:   "Emma",
				Summary: "A well-meaning but meddling young woman plays matchmaker in Highbury.",
				ISBN:    "9780141439587",
			},
			imprints: []entities.BookInstance{
				{Imprint: "Penguin Classics, 2003", Status: entities.StatusAvailable},
			},
		},
		{
			authorName: "Melville",
			genreNames: []string{"Fiction"},
			book: entities.Book{
				Title:   "Moby-Dick",
				Summary: "Captain Ahab's obsessive pursuit of the white whale.",
				ISBN:    "9780142437247",
			},
			imprints: []entities.BookInstance{
				{Imprint: "Penguin Classics, 2002", Status: entities.StatusMaintenance},
				{Imprint: "Norton Critical Edition, 2017", Status: entities.StatusReserved, DueBack: date(2026, time.October, 1)},
			},
		},
		{
			authorName: "Shelley",
			genreNames: []string{"Fiction", "Gothic"},
			book: entities.Book{
				Title:   "Frankenstein; or, The Modern Prometheus",
				Summary: "A young scientist creates a sapient creature in an unorthodox experiment.",
				ISBN:    "9780141439471",
			},
			imprints: []entities.BookInstance{
				{Imprint: "Penguin Classics, 2003", Status: entities.StatusAvailable},
			},
		},
		{
			authorName: "Aurelius",
			genreNames: []string{"Philosophy"},
			book: entities.Book{
				Title:   "Meditations",
				Summary: "Personal writings on Stoic philosophy by the Roman emperor.",
				ISBN:    "9780140449334",
			},
			imprints: []entities.BookInstance{
				{Imprint: "Penguin Great Ideas, 2004", Status: entities.StatusLoaned, DueBack: date(2026, time.August, 1)},
			},
		},
	}

	for _, cfg := range books {
		author, ok := authorsByFamily[cfg.authorName]
		if !ok {
			return fmt.Errorf("seed book %q references unknown author %q", cfg.book.Title, cfg.authorName)
		}
		cfg.book.AuthorID = author.ID
		for _, name := range cfg.genreNames {
			cfg.book.Genres = append(cfg.book.Genres, *genresByName[name])
		}
		if err := db.DB.Omit("Author", "Genres.*").Create(&cfg.book).Error; err != nil {
			return fmt.Errorf("seeding book %q: %w", cfg.book.Title, err)
		}
		log.Printf("Seeded book: %s (%d copies)", cfg.book.Title, len(cfg.imprints))

		for _, inst := range cfg.imprints {
			inst.BookID = cfg.book.ID
			if err := db.DB.Create(&inst).Error; err != nil {
				return fmt.Errorf("seeding copy of %q: %w", cfg.book.Title, err)
			}
		}
	}

	log.Println("Catalog seeded successfully")
	return nil
}
