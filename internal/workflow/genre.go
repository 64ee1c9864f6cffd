package workflow

import (
	"net/url"

	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/database/genres"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/guard"
	"github.com/openshelf/catalog/internal/validation"
)

// NewGenreController wires the genre workflow. Genre names are not
// required to be unique; the guard still blocks deleting a genre while
// books carry it.
func NewGenreController(repo *genres.Repository, bookRepo *books.Repository, g *guard.Guard) *Controller[entities.Genre] {
	return NewController(Definition[entities.Genre]{
		Type:     "genre",
		Singular: "Genre",
		ModelKey: "genre",
		ListKey:  "genre_list",
		Views: Views{
			List:   "genre_list",
			Detail: "genre_detail",
			Form:   "genre_form",
			Delete: "genre_delete",
		},
		ListPath: "/catalog/genres",
		DetailPath: func(e *entities.Genre) string {
			return e.URL()
		},
		Store:       repo,
		Guard:       g,
		DeleteModel: func() any { return &entities.Genre{} },
		Validate: func(values url.Values, id uint) (*entities.Genre, []validation.FieldError, error) {
			f := validation.NewForm(values)
			name := f.Field("name").Trim().
				Required("Genre name must be specified.").
				MinLength(3, "Genre name must contain at least 3 characters.").
				MaxLength(100, "Genre name must not exceed 100 characters.").
				Escape().Value()

			return &entities.Genre{ID: id, Name: name}, f.Errors(), nil
		},
		Related: func(e *entities.Genre, m Model) error {
			genreBooks, err := bookRepo.ByGenre(e.ID)
			if err != nil {
				return err
			}
			m["genre_books"] = genreBooks
			return nil
		},
	})
}
