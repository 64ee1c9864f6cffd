package entities

import (
	"fmt"
	"time"
)

// InstanceStatus tracks where a physical copy currently is.
type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses returns all valid statuses in display order.
func InstanceStatuses() []InstanceStatus {
	return []InstanceStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}
}

const dateDisplayFormat = "Jan 2, 2006"

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the display name in "family, first" form.
// Empty when either part is missing, so broken records don't render half a name.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s", a.FamilyName, a.FirstName)
}

// Lifespan formats the birth and death dates, e.g. "Dec 16, 1775 - Jul 18, 1817".
// Either side may be blank; both absent yields an empty string.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	born, died := "", ""
	if a.DateOfBirth != nil {
		born = a.DateOfBirth.Format(dateDisplayFormat)
	}
	if a.DateOfDeath != nil {
		died = a.DateOfDeath.Format(dateDisplayFormat)
	}
	return born + " - " + died
}

func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"index;size:512" json:"title"`
	Summary   string         `gorm:"type:text" json:"summary"`
	ISBN      string         `gorm:"size:20" json:"isbn"`
	AuthorID  uint           `gorm:"index" json:"author_id"`
	Author    Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres    []Genre        `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Instances []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

// HasGenre reports whether the book carries the given genre.
// Used by form templates to restore checkbox state on re-render.
func (b Book) HasGenre(id uint) bool {
	for _, g := range b.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

type BookInstance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BookID    uint           `gorm:"index" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string         `gorm:"size:256" json:"imprint"`
	Status    InstanceStatus `gorm:"size:20;default:'Maintenance'" json:"status"`
	DueBack   *time.Time     `json:"due_back,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (i BookInstance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", i.ID)
}

// DueBackDisplay formats the due date for detail pages.
// Only meaningful while the copy is loaned or reserved.
func (i BookInstance) DueBackDisplay() string {
	if i.DueBack == nil {
		return ""
	}
	return i.DueBack.Format(dateDisplayFormat)
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}
