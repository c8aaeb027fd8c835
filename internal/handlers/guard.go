package handlers

import (
	"net/http"

	"blogicum/internal/config"
	"blogicum/internal/models"

	"github.com/gin-gonic/gin"
)

// guard decides whether the acting user may mutate a resource and, when not,
// what they get instead. Denial is a policy: the soft redirect to the
// resource's read view, or a hard error page.
type guard struct {
	policy string
}

// allowAuthor reports whether user may edit/delete a resource authored by
// authorID; on denial it responds for the caller.
func (g guard) allowAuthor(c *gin.Context, user *models.User, authorID uint, detailPath string) bool {
	if user != nil && user.ID == authorID {
		return true
	}
	if g.policy == config.DenyError {
		RenderError(c, http.StatusForbidden, "Only the author can do that")
		return false
	}
	c.Redirect(http.StatusFound, detailPath)
	return false
}
