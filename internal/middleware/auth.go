package middleware

import (
	"net/http"

	"blogicum/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in; anonymous requests are redirected
// to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if _, exists := c.Get(CheckUserKey); !exists {
			// Session references a user that no longer exists.
			session.Clear()
			session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session user and sets it on the request context.
func LoadUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID, ok := session.Get("user_id").(uint); ok {
			if user, err := users.Find(userID); err == nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}
