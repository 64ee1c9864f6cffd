package workflow

import (
	"net/url"

	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/guard"
	"github.com/openshelf/catalog/internal/validation"
)

// NewAuthorController wires the author workflow: alphanumeric name
// validation, optional life dates, and the book dependency guard.
func NewAuthorController(repo *authors.Repository, bookRepo *books.Repository, g *guard.Guard) *Controller[entities.Author] {
	return NewController(Definition[entities.Author]{
		Type:     "author",
		Singular: "Author",
		ModelKey: "author",
		ListKey:  "author_list",
		Views: Views{
			List:   "author_list",
			Detail: "author_detail",
			Form:   "author_form",
			Delete: "author_delete",
		},
		ListPath: "/catalog/authors",
		DetailPath: func(a *entities.Author) string {
			return a.URL()
		},
		UpdatePath: func(a *entities.Author) string {
			return "/catalog/authors"
		},
		Store:       repo,
		Guard:       g,
		DeleteModel: func() any { return &entities.Author{} },
		Validate: func(values url.Values, id uint) (*entities.Author, []validation.FieldError, error) {
			f := validation.NewForm(values)
			firstChain := f.Field("first_name").Trim().
				Required("First name must be specified.")
			familyChain := f.Field("family_name").Trim().
				Required("Family name must be specified.")
			// The character-class restriction applies on create only;
			// updates accept existing names as they are.
			if id == 0 {
				firstChain.Alphanumeric("First name has non-alphanumeric characters.")
				familyChain.Alphanumeric("Family name has non-alphanumeric characters.")
			}
			first := firstChain.Escape().Value()
			family := familyChain.Escape().Value()
			birth := f.Field("date_of_birth").Trim().Optional().
				ISODate("Invalid date of birth").Date()
			death := f.Field("date_of_death").Trim().Optional().
				ISODate("Invalid date of death").Date()

			author := &entities.Author{
				ID:          id,
				FirstName:   first,
				FamilyName:  family,
				DateOfBirth: birth,
				DateOfDeath: death,
			}
			return author, f.Errors(), nil
		},
		Related: func(a *entities.Author, m Model) error {
			authorBooks, err := bookRepo.ByAuthor(a.ID)
			if err != nil {
				return err
			}
			m["author_books"] = authorBooks
			return nil
		},
	})
}
