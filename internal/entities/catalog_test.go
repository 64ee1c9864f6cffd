package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time {
	return &t
}

func TestAuthorName(t *testing.T) {
	author := Author{FirstName: "Jane", FamilyName: "Austen"}
	assert.Equal(t, "Austen, Jane", author.Name())
}

func TestAuthorName_EmptyWhenPartMissing(t *testing.T) {
	assert.Equal(t, "", Author{FirstName: "Jane"}.Name())
	assert.Equal(t, "", Author{FamilyName: "Austen"}.Name())
	assert.Equal(t, "", Author{}.Name())
}

func TestAuthorLifespan(t *testing.T) {
	cases := []struct {
		name   string
		author Author
		want   string
	}{
		{
			name: "both dates",
			author: Author{
				DateOfBirth: ptr(time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)),
				DateOfDeath: ptr(time.Date(1817, time.July, 18, 0, 0, 0, 0, time.UTC)),
			},
			want: "Dec 16, 1775 - Jul 18, 1817",
		},
		{
			name: "birth only",
			author: Author{
				DateOfBirth: ptr(time.Date(1948, time.September, 20, 0, 0, 0, 0, time.UTC)),
			},
			want: "Sep 20, 1948 - ",
		},
		{
			name:   "no dates",
			author: Author{},
			want:   "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.author.Lifespan())
		})
	}
}

func TestEntityURLs(t *testing.T) {
	assert.Equal(t, "/catalog/author/3", Author{ID: 3}.URL())
	assert.Equal(t, "/catalog/book/7", Book{ID: 7}.URL())
	assert.Equal(t, "/catalog/genre/2", Genre{ID: 2}.URL())
	assert.Equal(t, "/catalog/bookinstance/9", BookInstance{ID: 9}.URL())
}

func TestBookHasGenre(t *testing.T) {
	book := Book{Genres: []Genre{{ID: 1, Name: "Fiction"}, {ID: 4, Name: "Romance"}}}

	assert.True(t, book.HasGenre(1))
	assert.True(t, book.HasGenre(4))
	assert.False(t, book.HasGenre(2))
}

func TestInstanceDueBackDisplay(t *testing.T) {
	due := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sep 15, 2026", BookInstance{DueBack: &due}.DueBackDisplay())
	assert.Equal(t, "", BookInstance{}.DueBackDisplay())
}

func TestInstanceStatuses(t *testing.T) {
	statuses := InstanceStatuses()

	assert.Equal(t, []InstanceStatus{
		StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved,
	}, statuses)
}
