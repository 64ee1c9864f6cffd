package workflow

// OutcomeKind discriminates what a workflow operation decided.
type OutcomeKind int

const (
	// OutcomeRender presents a named view with a model.
	OutcomeRender OutcomeKind = iota
	// OutcomeRedirect sends the caller to another route. A redirect is a
	// terminal outcome: nothing renders after it.
	OutcomeRedirect
	// OutcomeNotFound signals that the requested identity does not exist.
	OutcomeNotFound
)

// Model is the named-value map handed to the renderer. The workflow only
// decides what to present, never how.
type Model map[string]any

// Outcome is the single result of a workflow operation.
type Outcome struct {
	Kind     OutcomeKind
	View     string
	Model    Model
	Location string // redirect target
	Flash    string // optional one-shot notice carried across a redirect
	Message  string // not-found message
}

// Render presents the named view with the given model.
func Render(view string, m Model) Outcome {
	return Outcome{Kind: OutcomeRender, View: view, Model: m}
}

// Redirect sends the caller to the given route.
func Redirect(location string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Location: location}
}

// RedirectFlash redirects and carries a one-shot notice for the next page.
func RedirectFlash(location, flash string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Location: location, Flash: flash}
}

// NotFound reports a missing entity with a human-readable message.
func NotFound(message string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Message: message}
}
