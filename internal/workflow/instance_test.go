package workflow

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/catalog/internal/entities"
)

func (e *testEnv) instanceController() *Controller[entities.BookInstance] {
	return NewInstanceController(e.instances, e.books, e.guard)
}

func (e *testEnv) seedBook(t *testing.T, title string) *entities.Book {
	t.Helper()
	author := &entities.Author{FirstName: "Herman", FamilyName: "Melville"}
	require.NoError(t, e.authors.Create(author))
	book := &entities.Book{Title: title, Summary: "s", ISBN: "1", AuthorID: author.ID}
	require.NoError(t, e.books.Create(book))
	return book
}

func TestInstanceCreate_Persists(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	out, err := ct.Create(url.Values{
		"book":     {fmt.Sprint(book.ID)},
		"imprint":  {"Harper & Brothers, 1851"},
		"status":   {"Available"},
		"due_back": {""},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Equal(t, "Book Instance created", out.Flash)

	all, err := env.instances.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entities.StatusAvailable, all[0].Status)
}

func TestInstanceCreate_UnknownStatusRejected(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	out, err := ct.Create(url.Values{
		"book":    {fmt.Sprint(book.ID)},
		"imprint": {"First edition"},
		"status":  {"Lost"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRender, out.Kind)
	assert.Contains(t, fieldMessages(out.Model), "Invalid status")

	all, err := env.instances.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInstanceCreate_UnknownBookRejected(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()

	out, err := ct.Create(url.Values{
		"book":    {"999"},
		"imprint": {"First edition"},
		"status":  {"Available"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRender, out.Kind)
	assert.Contains(t, fieldMessages(out.Model), "Selected book does not exist.")
}

func TestInstanceCreate_BadDueDateRejected(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	out, err := ct.Create(url.Values{
		"book":     {fmt.Sprint(book.ID)},
		"imprint":  {"First edition"},
		"status":   {"Loaned"},
		"due_back": {"next tuesday"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRender, out.Kind)
	assert.Contains(t, fieldMessages(out.Model), "Invalid date")
}

func TestInstanceCreateForm_CarriesBooksAndStatuses(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	env.seedBook(t, "Moby Dick")

	out, err := ct.CreateForm()

	require.NoError(t, err)
	assert.Equal(t, "bookinstance_form", out.View)
	assert.Len(t, out.Model["book_list"], 1)
	assert.Equal(t, entities.InstanceStatuses(), out.Model["statuses"])
}

func TestInstanceDetail_ResolvesBook(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	inst := &entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusReserved}
	require.NoError(t, env.instances.Create(inst))

	out, err := ct.Detail(inst.ID)

	require.NoError(t, err)
	assert.Equal(t, "bookinstance_detail", out.View)
	got := out.Model["bookinstance"].(*entities.BookInstance)
	assert.Equal(t, "Moby Dick", got.Book.Title)
}

func TestInstanceUpdate_RedirectsToList(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	inst := &entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusMaintenance}
	require.NoError(t, env.instances.Create(inst))

	out, err := ct.Update(inst.ID, url.Values{
		"book":     {fmt.Sprint(book.ID)},
		"imprint":  {"First edition"},
		"status":   {"Loaned"},
		"due_back": {"2026-09-15"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Equal(t, "/catalog/bookinstances", out.Location)

	got, err := env.instances.ByID(inst.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusLoaned, got.Status)
	require.NotNil(t, got.DueBack)
}

func TestInstanceDelete_NeverBlocked(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ct := env.instanceController()
	book := env.seedBook(t, "Moby Dick")

	inst := &entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusLoaned}
	require.NoError(t, env.instances.Create(inst))

	out, err := ct.Delete(inst.ID)

	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Equal(t, "/catalog/bookinstances", out.Location)
}
