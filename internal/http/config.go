package http

import (
	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
	"github.com/openshelf/catalog/internal/web"
	"github.com/openshelf/catalog/internal/workflow"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Entity workflow controllers
	Authors   *workflow.Controller[entities.Author]
	Books     *workflow.Controller[entities.Book]
	Genres    *workflow.Controller[entities.Genre]
	Instances *workflow.Controller[entities.BookInstance]

	// Sessions for flash notices (optional)
	SessionManager *web.SessionManager

	// CSRF protection for form submissions (disabled when empty)
	CSRFSecret    []byte
	SecureCookies bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
