package workflow

import (
	"errors"
	"net/url"
	"strconv"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/database/instances"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/guard"
	"github.com/openshelf/catalog/internal/validation"
)

func instanceStatusStrings() []string {
	statuses := entities.InstanceStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// NewInstanceController wires the book-copy workflow. The submitted book
// must resolve to an existing Book, and the status must be one of the
// four known states. Nothing references a copy, so deletes are never
// blocked.
func NewInstanceController(repo *instances.Repository, bookRepo *books.Repository, g *guard.Guard) *Controller[entities.BookInstance] {
	return NewController(Definition[entities.BookInstance]{
		Type:     "bookinstance",
		Singular: "Book Instance",
		ModelKey: "bookinstance",
		ListKey:  "bookinstance_list",
		Views: Views{
			List:   "bookinstance_list",
			Detail: "bookinstance_detail",
			Form:   "bookinstance_form",
			Delete: "bookinstance_delete",
		},
		ListPath: "/catalog/bookinstances",
		DetailPath: func(i *entities.BookInstance) string {
			return i.URL()
		},
		UpdatePath: func(i *entities.BookInstance) string {
			return "/catalog/bookinstances"
		},
		Store:       repo,
		Guard:       g,
		DeleteModel: func() any { return &entities.BookInstance{} },
		Validate: func(values url.Values, id uint) (*entities.BookInstance, []validation.FieldError, error) {
			f := validation.NewForm(values)
			bookRaw := f.Field("book").Trim().
				Required("Book must be specified").Value()
			imprint := f.Field("imprint").Trim().
				Required("Imprint must be specified").
				MinLength(3, "Imprint must contain at least 3 characters").
				Escape().Value()
			status := f.Field("status").Trim().
				Required("Status must be specified").
				OneOf("Invalid status", instanceStatusStrings()...).Value()
			dueBack := f.Field("due_back").Trim().Optional().
				ISODate("Invalid date").Date()

			instance := &entities.BookInstance{
				ID:      id,
				Imprint: imprint,
				Status:  entities.InstanceStatus(status),
				DueBack: dueBack,
			}
			errs := f.Errors()

			if bookRaw != "" {
				bookID, convErr := strconv.ParseUint(bookRaw, 10, 32)
				if convErr != nil {
					errs = append(errs, validation.FieldError{Field: "book", Message: "Book must be specified"})
				} else {
					instance.BookID = uint(bookID)
					_, err := bookRepo.ByID(instance.BookID)
					if errors.Is(err, gorm.ErrRecordNotFound) {
						errs = append(errs, validation.FieldError{Field: "book", Message: "Selected book does not exist."})
					} else if err != nil {
						return nil, nil, err
					}
				}
			}

			return instance, errs, nil
		},
		References: func(m Model) error {
			allBooks, err := bookRepo.All()
			if err != nil {
				return err
			}
			m["book_list"] = allBooks
			m["statuses"] = entities.InstanceStatuses()
			return nil
		},
	})
}
