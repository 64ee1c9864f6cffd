// Package guard answers "what still references this entity?" before a
// delete is allowed. Relations are declared as (target type, dependent
// table, foreign-key column) tuples, so every entity type gets the same
// protection instead of hard-coding one dependency.
//
// Dependents is a read-only query; callers decide what to do with a
// non-empty result. The check and a later delete are still two separate
// statements with a window between them, so DeleteIfUnreferenced runs
// both inside one transaction for the enforcement path.
package guard

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrBlocked is returned by DeleteIfUnreferenced when dependents exist.
var ErrBlocked = errors.New("entity is still referenced")

// Dependent is one entity blocking a delete, with enough context to render.
type Dependent struct {
	Type  string // dependent entity type, e.g. "Book"
	ID    uint
	Label string // display text, e.g. the book title
	URL   string // detail route of the dependent
}

// Relation declares that rows of a dependent table block deletion of a
// target type. Direct relations name the foreign-key column on the
// dependent table; many-to-many relations go through a join table.
type Relation struct {
	Target      string // target entity type, e.g. "author"
	Dependent   string // dependent entity type, e.g. "Book"
	Table       string // dependent table, e.g. "books"
	LabelColumn string // column used as the display label
	URLFormat   string // fmt pattern for the dependent's detail route

	// Direct foreign key on Table. Empty for join-table relations.
	ForeignKey string

	// Join table linking Table to the target, e.g. "book_genres".
	JoinTable     string
	JoinTargetKey string // column on JoinTable referencing the target
	JoinSourceKey string // column on JoinTable referencing Table rows
}

// Guard evaluates declared relations against the store.
type Guard struct {
	db        *gorm.DB
	relations map[string][]Relation
}

// New creates a guard with no relations registered.
func New(db *gorm.DB) *Guard {
	return &Guard{db: db, relations: make(map[string][]Relation)}
}

// Register adds a relation to the guard.
func (g *Guard) Register(rel Relation) {
	g.relations[rel.Target] = append(g.relations[rel.Target], rel)
}

// NewCatalogGuard creates a guard with the catalog's relation set:
// books block their author and their genres, copies block their book.
// Book instances have no dependents, so no relation is declared for them.
func NewCatalogGuard(db *gorm.DB) *Guard {
	g := New(db)
	g.Register(Relation{
		Target:      "author",
		Dependent:   "Book",
		Table:       "books",
		ForeignKey:  "author_id",
		LabelColumn: "title",
		URLFormat:   "/catalog/book/%d",
	})
	g.Register(Relation{
		Target:      "book",
		Dependent:   "BookInstance",
		Table:       "book_instances",
		ForeignKey:  "book_id",
		LabelColumn: "imprint",
		URLFormat:   "/catalog/bookinstance/%d",
	})
	g.Register(Relation{
		Target:        "genre",
		Dependent:     "Book",
		Table:         "books",
		JoinTable:     "book_genres",
		JoinTargetKey: "genre_id",
		JoinSourceKey: "book_id",
		LabelColumn:   "title",
		URLFormat:     "/catalog/book/%d",
	})
	return g
}

type dependentRow struct {
	ID    uint
	Label string
}

func (g *Guard) query(db *gorm.DB, rel Relation, id uint) *gorm.DB {
	q := db.Table(rel.Table).
		Select(fmt.Sprintf("%s.id AS id, %s.%s AS label", rel.Table, rel.Table, rel.LabelColumn))
	if rel.JoinTable != "" {
		return q.Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id",
			rel.JoinTable, rel.JoinTable, rel.JoinSourceKey, rel.Table)).
			Where(fmt.Sprintf("%s.%s = ?", rel.JoinTable, rel.JoinTargetKey), id)
	}
	return q.Where(fmt.Sprintf("%s.%s = ?", rel.Table, rel.ForeignKey), id)
}

// Dependents returns every entity that references the target, across all
// declared relations. A target type with no relations, or an identity
// with no referencing rows, yields an empty set; callers must check
// entity existence separately before treating that as safe.
func (g *Guard) Dependents(target string, id uint) ([]Dependent, error) {
	var deps []Dependent
	for _, rel := range g.relations[target] {
		var rows []dependentRow
		if err := g.query(g.db, rel, id).Order("label ASC").Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("querying %s dependents of %s %d: %w", rel.Dependent, target, id, err)
		}
		for _, row := range rows {
			deps = append(deps, Dependent{
				Type:  rel.Dependent,
				ID:    row.ID,
				Label: row.Label,
				URL:   fmt.Sprintf(rel.URLFormat, row.ID),
			})
		}
	}
	return deps, nil
}

func (g *Guard) countDependents(db *gorm.DB, target string, id uint) (int64, error) {
	var total int64
	for _, rel := range g.relations[target] {
		var n int64
		if err := g.query(db, rel, id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// DeleteIfUnreferenced deletes the target row only if no dependents
// exist, running the check and the delete in one transaction. Returns
// ErrBlocked when the dependent set is non-empty. model must be a
// pointer to the target's entity type so GORM resolves the table.
func (g *Guard) DeleteIfUnreferenced(target string, id uint, model any) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		n, err := g.countDependents(tx, target, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBlocked
		}
		return tx.Delete(model, id).Error
	})
}
