package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(web.SecurityHeadersMiddleware())

	// CSRF must run before sessions so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(web.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Template helpers for date inputs and display formatting
	funcMap := template.FuncMap{
		"dateValue": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	renderer := &outcomeRenderer{sessions: cfg.SessionManager}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	index := NewIndexController(cfg.Database, renderer)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/catalog")
	})
	router.GET("/catalog", index.Home)

	catalog := router.Group("/catalog")
	registerEntityRoutes(catalog, "author", "authors", cfg.Authors, renderer)
	registerEntityRoutes(catalog, "book", "books", cfg.Books, renderer)
	registerEntityRoutes(catalog, "genre", "genres", cfg.Genres, renderer)
	registerEntityRoutes(catalog, "bookinstance", "bookinstances", cfg.Instances, renderer)

	return router
}
