package handlers

import (
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateComment handles POST /posts/<id>/comment/. Auth is enforced by the
// route group; the post must be fetchable by the requester.
func (h *PostHandler) CreateComment(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}
	post, err := h.fetchVisible(id, user)
	if err != nil {
		NotFound(c)
		return
	}

	form := forms.BindCommentForm(c)
	if err := form.Validate(); err != nil {
		h.renderDetail(c, post, http.StatusBadRequest, form, forms.FieldErrors(err))
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID, // never the client-submitted author
		Text:     form.Text,
	}
	if err := h.store.Comments.Save(&comment); err != nil {
		h.renderDetail(c, post, http.StatusInternalServerError, form,
			map[string]string{"_": "Failed to save the comment"})
		return
	}

	c.Redirect(http.StatusFound, postPath(post.ID))
}

// fetchComment resolves a comment under its post; a comment id that exists
// but belongs to another post is treated as unknown.
func (h *PostHandler) fetchComment(c *gin.Context) (*models.Comment, bool) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	commentID, ok := parseID(c.Param("cid"))
	if !ok {
		NotFound(c)
		return nil, false
	}

	comment, err := h.store.Comments.Find(commentID)
	if err != nil || comment.PostID != postID {
		NotFound(c)
		return nil, false
	}
	return comment, true
}

func (h *PostHandler) ShowEditComment(c *gin.Context) {
	comment, ok := h.fetchComment(c)
	if !ok {
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), comment.AuthorID, postPath(comment.PostID)) {
		return
	}

	Render(c, http.StatusOK, "comments/form.html", gin.H{
		"Title":   "Edit comment",
		"Comment": comment,
		"Form":    forms.CommentForm{Text: comment.Text},
	})
}

func (h *PostHandler) UpdateComment(c *gin.Context) {
	comment, ok := h.fetchComment(c)
	if !ok {
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), comment.AuthorID, postPath(comment.PostID)) {
		return
	}

	form := forms.BindCommentForm(c)
	if err := form.Validate(); err != nil {
		Render(c, http.StatusBadRequest, "comments/form.html", gin.H{
			"Title":   "Edit comment",
			"Comment": comment,
			"Form":    form,
			"Errors":  forms.FieldErrors(err),
		})
		return
	}

	comment.Text = form.Text
	if err := h.store.Comments.Save(comment); err != nil {
		Render(c, http.StatusInternalServerError, "comments/form.html", gin.H{
			"Title":   "Edit comment",
			"Comment": comment,
			"Form":    form,
			"Errors":  map[string]string{"_": "Failed to save the comment"},
		})
		return
	}

	c.Redirect(http.StatusFound, postPath(comment.PostID))
}

// ShowDeleteComment renders the comment deletion confirmation; the write
// method performs it.
func (h *PostHandler) ShowDeleteComment(c *gin.Context) {
	comment, ok := h.fetchComment(c)
	if !ok {
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), comment.AuthorID, postPath(comment.PostID)) {
		return
	}

	Render(c, http.StatusOK, "comments/delete.html", gin.H{
		"Title":   "Delete comment",
		"Comment": comment,
	})
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	comment, ok := h.fetchComment(c)
	if !ok {
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), comment.AuthorID, postPath(comment.PostID)) {
		return
	}

	if err := h.store.Comments.Delete(comment); err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to delete the comment")
		return
	}

	c.Redirect(http.StatusFound, postPath(comment.PostID))
}
