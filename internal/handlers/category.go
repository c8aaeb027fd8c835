package handlers

import (
	"errors"
	"net/http"
	"time"

	"blogicum/internal/store"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// List shows the visible posts of one published category. An unpublished or
// future-dated category is a 404 for the whole listing, not an empty page.
func (h *CategoryHandler) List(c *gin.Context) {
	slug := c.Param("slug")
	now := time.Now()

	category, err := h.store.Categories.BySlug(slug)
	if err != nil {
		NotFound(c)
		return
	}
	if !store.CategoryVisible(category, now) {
		NotFound(c)
		return
	}

	page := utils.ParsePage(c.Query("page"))
	posts, total, err := h.store.Posts.ListVisible(store.InCategory(slug), currentUser(c), now, page, perPage)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c)
			return
		}
		RenderError(c, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	Render(c, http.StatusOK, "category/list.html", gin.H{
		"Title":       category.Title,
		"Category":    category,
		"Posts":       posts,
		"CurrentPage": page,
		"TotalPages":  utils.TotalPages(total, perPage),
	})
}
