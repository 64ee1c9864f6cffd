package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts a numeric identity from the named route
// parameter. On failure it renders a 404 and reports false; an
// unparseable id can never resolve to an entity.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		renderNotFound(c, "Invalid identifier")
		return 0, false
	}
	return uint(id), true
}

// renderNotFound renders the shared error view with 404 semantics.
func renderNotFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "error", gin.H{
		"title":   "Not Found",
		"status":  http.StatusNotFound,
		"message": message,
	})
}

// renderServerError logs the underlying error and renders a generic
// error view; the cause is never exposed to the client.
func renderServerError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"title":   "Server Error",
		"status":  http.StatusInternalServerError,
		"message": "Something went wrong handling the request.",
	})
}
