package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/web"
	"github.com/openshelf/catalog/internal/workflow"
)

// outcomeRenderer adapts workflow outcomes to HTTP responses: render
// becomes an HTML page (with CSRF token and any pending flash notice
// added to the model), redirect becomes 303 See Other, not-found becomes
// the shared 404 view.
type outcomeRenderer struct {
	sessions *web.SessionManager
}

func (r *outcomeRenderer) respond(c *gin.Context, out workflow.Outcome, err error, context string) {
	if err != nil {
		renderServerError(c, err, context)
		return
	}
	switch out.Kind {
	case workflow.OutcomeRedirect:
		if out.Flash != "" && r.sessions != nil {
			r.sessions.PutFlash(c.Request.Context(), out.Flash)
		}
		c.Redirect(http.StatusSeeOther, out.Location)
	case workflow.OutcomeNotFound:
		renderNotFound(c, out.Message)
	default:
		model := gin.H{}
		for k, v := range out.Model {
			model[k] = v
		}
		model["csrf_token"] = web.GetCSRFToken(c)
		if r.sessions != nil {
			model["flash"] = r.sessions.PopFlash(c.Request.Context())
		}
		c.HTML(http.StatusOK, out.View, model)
	}
}

// registerEntityRoutes wires the eight-operation protocol for one entity
// type under the catalog group: list, detail, and the create/update/
// delete form pairs.
func registerEntityRoutes[E any](group *gin.RouterGroup, slug, plural string, wf *workflow.Controller[E], r *outcomeRenderer) {
	group.GET("/"+plural, func(c *gin.Context) {
		out, err := wf.List()
		r.respond(c, out, err, slug+" list")
	})
	group.GET("/"+slug+"/create", func(c *gin.Context) {
		out, err := wf.CreateForm()
		r.respond(c, out, err, slug+" create form")
	})
	group.POST("/"+slug+"/create", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			renderServerError(c, err, slug+" create")
			return
		}
		out, err := wf.Create(c.Request.PostForm)
		r.respond(c, out, err, slug+" create")
	})
	group.GET("/"+slug+"/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		out, err := wf.Detail(id)
		r.respond(c, out, err, slug+" detail")
	})
	group.GET("/"+slug+"/:id/update", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		out, err := wf.UpdateForm(id)
		r.respond(c, out, err, slug+" update form")
	})
	group.POST("/"+slug+"/:id/update", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			renderServerError(c, err, slug+" update")
			return
		}
		out, err := wf.Update(id, c.Request.PostForm)
		r.respond(c, out, err, slug+" update")
	})
	group.GET("/"+slug+"/:id/delete", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		out, err := wf.DeleteForm(id)
		r.respond(c, out, err, slug+" delete form")
	})
	group.POST("/"+slug+"/:id/delete", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		out, err := wf.Delete(id)
		r.respond(c, out, err, slug+" delete")
	})
}

// IndexController renders the catalog home page with entity counts.
type IndexController struct {
	db       *database.Database
	renderer *outcomeRenderer
}

func NewIndexController(db *database.Database, renderer *outcomeRenderer) *IndexController {
	return &IndexController{db: db, renderer: renderer}
}

func (ic *IndexController) Home(c *gin.Context) {
	stats, err := ic.db.GetStats()
	if err != nil {
		renderServerError(c, err, "catalog home")
		return
	}
	ic.renderer.respond(c, workflow.Render("index", workflow.Model{
		"title": "Local Catalog Home",
		"stats": stats,
	}), nil, "catalog home")
}
