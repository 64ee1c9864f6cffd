// Package workflow implements the list/detail/create/update/delete cycle
// shared by all four catalog entity types. One generic controller carries
// the orchestration; per-entity behavior (validation, reference lists,
// related display data, redirect targets) lives in a Definition.
//
// Every operation returns an Outcome (render, redirect or not-found)
// plus an error reserved for store failures, which the HTTP layer turns
// into a generic server error. Validation failures and blocked deletes
// are normal outcomes, not errors.
package workflow

import (
	"errors"
	"net/url"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/guard"
	"github.com/openshelf/catalog/internal/validation"
)

// Store is the persistence surface one entity type's workflow needs.
type Store[E any] interface {
	All() ([]E, error)
	ByID(id uint) (*E, error)
	Create(e *E) error
	Update(e *E) error
}

// Views names the templates one entity type renders.
type Views struct {
	List   string
	Detail string
	Form   string
	Delete string
}

// Definition wires one entity type into the shared workflow.
type Definition[E any] struct {
	// Type is the guard target name, e.g. "author".
	Type string
	// Singular is the display name, e.g. "Author".
	Singular string
	// ModelKey and ListKey name the entity and list entries in render models.
	ModelKey string
	ListKey  string

	Views    Views
	ListPath string
	// DetailPath builds the detail route of a persisted entity.
	DetailPath func(e *E) string
	// UpdatePath builds the post-update redirect target. Defaults to DetailPath.
	UpdatePath func(e *E) string

	Store Store[E]
	Guard *guard.Guard
	// DeleteModel returns a fresh pointer for the guard's conditional delete.
	DeleteModel func() any

	// Validate sanitizes the submitted fields and constructs the candidate
	// entity carrying the given identity (zero on create). The candidate is
	// always returned, even on failure, so the form can re-render with it.
	Validate func(values url.Values, id uint) (*E, []validation.FieldError, error)
	// References loads selection lists needed by the form view. Optional.
	References func(m Model) error
	// Related loads display data joined to one entity for the detail view. Optional.
	Related func(e *E, m Model) error
}

// Controller orchestrates validation, store and guard for one entity type.
type Controller[E any] struct {
	def Definition[E]
}

// NewController builds a controller from a definition.
func NewController[E any](def Definition[E]) *Controller[E] {
	if def.UpdatePath == nil {
		def.UpdatePath = def.DetailPath
	}
	return &Controller[E]{def: def}
}

// List fetches all entities of the type for the listing view.
func (ct *Controller[E]) List() (Outcome, error) {
	items, err := ct.def.Store.All()
	if err != nil {
		return Outcome{}, err
	}
	return Render(ct.def.Views.List, Model{
		"title":        ct.def.Singular + " List",
		ct.def.ListKey: items,
	}), nil
}

// Detail fetches one entity and its related display data.
func (ct *Controller[E]) Detail(id uint) (Outcome, error) {
	e, err := ct.def.Store.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(ct.def.Singular + " not found"), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	m := Model{
		"title":         ct.def.Singular + " detail",
		ct.def.ModelKey: e,
	}
	if ct.def.Related != nil {
		if err := ct.def.Related(e, m); err != nil {
			return Outcome{}, err
		}
	}
	return Render(ct.def.Views.Detail, m), nil
}

// CreateForm renders an empty form with its reference lists.
func (ct *Controller[E]) CreateForm() (Outcome, error) {
	m := Model{"title": "Create " + ct.def.Singular}
	if err := ct.loadReferences(m); err != nil {
		return Outcome{}, err
	}
	return Render(ct.def.Views.Form, m), nil
}

// Create validates the submission and either persists and redirects to
// the new entity, or re-renders the form with the candidate and every
// collected error. Nothing is persisted on failure.
func (ct *Controller[E]) Create(values url.Values) (Outcome, error) {
	candidate, fieldErrs, err := ct.def.Validate(values, 0)
	if err != nil {
		return Outcome{}, err
	}
	if len(fieldErrs) > 0 {
		m := Model{
			"title":         "Create " + ct.def.Singular,
			ct.def.ModelKey: candidate,
			"errors":        fieldErrs,
		}
		if err := ct.loadReferences(m); err != nil {
			return Outcome{}, err
		}
		return Render(ct.def.Views.Form, m), nil
	}
	if err := ct.def.Store.Create(candidate); err != nil {
		return Outcome{}, err
	}
	return RedirectFlash(ct.def.DetailPath(candidate), ct.def.Singular+" created"), nil
}

// UpdateForm renders the form pre-filled from the existing entity.
func (ct *Controller[E]) UpdateForm(id uint) (Outcome, error) {
	e, err := ct.def.Store.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(ct.def.Singular + " not found"), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	m := Model{
		"title":         "Update " + ct.def.Singular,
		ct.def.ModelKey: e,
	}
	if err := ct.loadReferences(m); err != nil {
		return Outcome{}, err
	}
	return Render(ct.def.Views.Form, m), nil
}

// Update validates the submission against the path identity and either
// replaces the stored fields wholesale and redirects, or re-renders the
// form with the candidate and errors. No write occurs on failure.
func (ct *Controller[E]) Update(id uint, values url.Values) (Outcome, error) {
	if _, err := ct.def.Store.ByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound(ct.def.Singular + " not found"), nil
		}
		return Outcome{}, err
	}
	candidate, fieldErrs, err := ct.def.Validate(values, id)
	if err != nil {
		return Outcome{}, err
	}
	if len(fieldErrs) > 0 {
		m := Model{
			"title":         "Update " + ct.def.Singular,
			ct.def.ModelKey: candidate,
			"errors":        fieldErrs,
		}
		if err := ct.loadReferences(m); err != nil {
			return Outcome{}, err
		}
		return Render(ct.def.Views.Form, m), nil
	}
	if err := ct.def.Store.Update(candidate); err != nil {
		return Outcome{}, err
	}
	return RedirectFlash(ct.def.UpdatePath(candidate), ct.def.Singular+" updated"), nil
}

// DeleteForm renders the confirmation view with the entity and any
// dependents still blocking the delete. A missing target redirects to
// the list; the redirect is terminal, nothing renders after it.
func (ct *Controller[E]) DeleteForm(id uint) (Outcome, error) {
	e, err := ct.def.Store.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Redirect(ct.def.ListPath), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	deps, err := ct.def.Guard.Dependents(ct.def.Type, id)
	if err != nil {
		return Outcome{}, err
	}
	return Render(ct.def.Views.Delete, ct.deleteModel(e, deps)), nil
}

// Delete is the enforcement point of the integrity invariant: dependents
// are re-checked here, and a non-empty set aborts the delete and
// re-renders the confirmation view. The final existence check and row
// delete run in one store transaction, so a dependent created between
// the check and the delete still blocks it.
func (ct *Controller[E]) Delete(id uint) (Outcome, error) {
	e, err := ct.def.Store.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Redirect(ct.def.ListPath), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	deps, err := ct.def.Guard.Dependents(ct.def.Type, id)
	if err != nil {
		return Outcome{}, err
	}
	if len(deps) > 0 {
		return Render(ct.def.Views.Delete, ct.deleteModel(e, deps)), nil
	}
	err = ct.def.Guard.DeleteIfUnreferenced(ct.def.Type, id, ct.def.DeleteModel())
	if errors.Is(err, guard.ErrBlocked) {
		// Lost the race: a dependent appeared since the check above.
		deps, derr := ct.def.Guard.Dependents(ct.def.Type, id)
		if derr != nil {
			return Outcome{}, derr
		}
		return Render(ct.def.Views.Delete, ct.deleteModel(e, deps)), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return RedirectFlash(ct.def.ListPath, ct.def.Singular+" deleted"), nil
}

func (ct *Controller[E]) loadReferences(m Model) error {
	if ct.def.References == nil {
		return nil
	}
	return ct.def.References(m)
}

func (ct *Controller[E]) deleteModel(e *E, deps []guard.Dependent) Model {
	return Model{
		"title":         "Delete " + ct.def.Singular,
		ct.def.ModelKey: e,
		"dependents":    deps,
	}
}
