package handlers

import (
	"errors"
	"net/http"
	"time"

	"blogicum/internal/forms"
	"blogicum/internal/store"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	store *store.Store
}

func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

// Profile lists one author's posts. The owner sees everything they wrote,
// including drafts-by-date; other viewers get the published subset.
func (h *ProfileHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.store.Users.ByUsername(username)
	if err != nil {
		NotFound(c)
		return
	}

	page := utils.ParsePage(c.Query("page"))
	posts, total, err := h.store.Posts.ListVisible(store.ByAuthor(username), currentUser(c), time.Now(), page, perPage)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c)
			return
		}
		RenderError(c, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	Render(c, http.StatusOK, "profile/detail.html", gin.H{
		"Title":       profile.Username,
		"Profile":     profile,
		"Posts":       posts,
		"CurrentPage": page,
		"TotalPages":  utils.TotalPages(total, perPage),
	})
}

func (h *ProfileHandler) ShowEdit(c *gin.Context) {
	user := currentUser(c)
	Render(c, http.StatusOK, "profile/edit.html", gin.H{
		"Title": "Edit profile",
		"Form": forms.ProfileForm{
			Username: user.Username,
			Email:    user.Email,
			Bio:      user.Bio,
		},
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user := currentUser(c)

	form := forms.BindProfileForm(c)
	if err := form.Validate(); err != nil {
		Render(c, http.StatusBadRequest, "profile/edit.html", gin.H{
			"Title":  "Edit profile",
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	user.Username = form.Username
	user.Email = form.Email
	user.Bio = form.Bio

	if err := h.store.Users.Save(user); err != nil {
		// Most likely the unique username/email constraint.
		Render(c, http.StatusConflict, "profile/edit.html", gin.H{
			"Title":  "Edit profile",
			"Form":   form,
			"Errors": map[string]string{"_": "Username or email is already taken"},
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}
