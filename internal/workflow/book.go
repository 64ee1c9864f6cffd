package workflow

import (
	"errors"
	"net/url"
	"strconv"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/database/genres"
	"github.com/openshelf/catalog/internal/database/instances"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/guard"
	"github.com/openshelf/catalog/internal/validation"
)

// NewBookController wires the book workflow. Beyond field sanitization,
// the submitted author must resolve to an existing Author and every
// submitted genre to an existing Genre before the book is persisted;
// failures surface as field errors alongside the pipeline's own.
func NewBookController(
	repo *books.Repository,
	authorRepo *authors.Repository,
	genreRepo *genres.Repository,
	instanceRepo *instances.Repository,
	g *guard.Guard,
) *Controller[entities.Book] {
	return NewController(Definition[entities.Book]{
		Type:     "book",
		Singular: "Book",
		ModelKey: "book",
		ListKey:  "book_list",
		Views: Views{
			List:   "book_list",
			Detail: "book_detail",
			Form:   "book_form",
			Delete: "book_delete",
		},
		ListPath: "/catalog/books",
		DetailPath: func(b *entities.Book) string {
			return b.URL()
		},
		Store:       repo,
		Guard:       g,
		DeleteModel: func() any { return &entities.Book{} },
		Validate: func(values url.Values, id uint) (*entities.Book, []validation.FieldError, error) {
			f := validation.NewForm(values)
			title := f.Field("title").Trim().
				Required("Title must not be empty.").
				Escape().Value()
			summary := f.Field("summary").Trim().
				Required("Summary must not be empty.").
				Escape().Value()
			isbn := f.Field("isbn").Trim().
				Required("ISBN must not be empty.").
				Escape().Value()
			authorRaw := f.Field("author").Trim().
				Required("Author must be specified.").Value()

			book := &entities.Book{
				ID:      id,
				Title:   title,
				Summary: summary,
				ISBN:    isbn,
			}
			errs := f.Errors()

			if authorRaw != "" {
				authorID, convErr := strconv.ParseUint(authorRaw, 10, 32)
				if convErr != nil {
					errs = append(errs, validation.FieldError{Field: "author", Message: "Author must be specified."})
				} else {
					book.AuthorID = uint(authorID)
					_, err := authorRepo.ByID(book.AuthorID)
					if errors.Is(err, gorm.ErrRecordNotFound) {
						errs = append(errs, validation.FieldError{Field: "author", Message: "Selected author does not exist."})
					} else if err != nil {
						return nil, nil, err
					}
				}
			}

			var genreIDs []uint
			seen := make(map[uint]bool)
			for _, raw := range values["genre"] {
				gid, convErr := strconv.ParseUint(raw, 10, 32)
				if convErr != nil {
					errs = append(errs, validation.FieldError{Field: "genre", Message: "Invalid genre selection."})
					continue
				}
				// Repeated ids collapse to one selection.
				if seen[uint(gid)] {
					continue
				}
				seen[uint(gid)] = true
				genreIDs = append(genreIDs, uint(gid))
			}
			selected, err := genreRepo.ByIDs(genreIDs)
			if err != nil {
				return nil, nil, err
			}
			if len(selected) != len(genreIDs) {
				errs = append(errs, validation.FieldError{Field: "genre", Message: "Selected genre does not exist."})
			}
			book.Genres = selected

			return book, errs, nil
		},
		References: func(m Model) error {
			allAuthors, err := authorRepo.All()
			if err != nil {
				return err
			}
			allGenres, err := genreRepo.All()
			if err != nil {
				return err
			}
			m["authors"] = allAuthors
			m["genres"] = allGenres
			return nil
		},
		Related: func(b *entities.Book, m Model) error {
			copies, err := instanceRepo.ByBook(b.ID)
			if err != nil {
				return err
			}
			m["book_instances"] = copies
			return nil
		},
	})
}
