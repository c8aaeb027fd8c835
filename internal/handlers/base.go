package handlers

import (
	"net/http"

	"blogicum/internal/middleware"
	"blogicum/internal/models"

	"github.com/gin-gonic/gin"
)

// Listings show 10 items per page.
const perPage = 10

// Render injects common variables like the current user before rendering.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// NotFound is the uniform not-found response: unknown ids and records the
// visibility rules hide look the same from outside.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// currentUser returns the session user, or nil for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
