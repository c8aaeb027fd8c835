package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/store"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the post routes and, like the comments-live-on-the-post
// detail page itself, the comment routes (comment.go).
type PostHandler struct {
	store *store.Store
	guard guard
	cache *utils.PageCache
}

func NewPostHandler(s *store.Store, cfg *config.Config) *PostHandler {
	return &PostHandler{
		store: s,
		guard: guard{policy: cfg.DenialPolicy},
		cache: utils.NewPageCache(256),
	}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// indexPage is the cacheable part of an index render. Render adds per-request
// keys to the template context, so the cache must never hold the gin.H itself;
// it holds this payload and every request gets a fresh map.
type indexPage struct {
	Posts       []models.Post
	CurrentPage int
	TotalPages  int
}

func (h *PostHandler) renderIndex(c *gin.Context, page indexPage) {
	Render(c, http.StatusOK, "posts/list.html", gin.H{
		"Title":       "Latest posts",
		"Posts":       page.Posts,
		"CurrentPage": page.CurrentPage,
		"TotalPages":  page.TotalPages,
	})
}

// Index lists effectively visible posts, newest publication date first.
// There is no owner bypass here; even authors see only published content on
// the front page, which keeps the page cacheable for everyone.
func (h *PostHandler) Index(c *gin.Context) {
	page := utils.ParsePage(c.Query("page"))

	cacheKey := fmt.Sprintf("posts:index:page:%d", page)
	if cached := h.cache.Get(cacheKey); cached != nil {
		if data, ok := cached.(indexPage); ok {
			h.renderIndex(c, data)
			return
		}
	}

	posts, total, err := h.store.Posts.ListVisible(store.Global(), nil, time.Now(), page, perPage)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	data := indexPage{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  utils.TotalPages(total, perPage),
	}
	h.cache.Set(cacheKey, data, 1*time.Minute)

	h.renderIndex(c, data)
}

// invalidateIndex drops the cached first index page after a mutation. Deeper
// pages keep serving their cached content until the TTL expires, at most a
// minute of staleness.
func (h *PostHandler) invalidateIndex() {
	h.cache.Delete("posts:index:page:1")
}

type renderedComment struct {
	models.Comment
	TextHTML template.HTML
}

// renderDetail builds the full detail context; the comment form state is
// threaded through so a failed comment submission re-renders in place.
func (h *PostHandler) renderDetail(c *gin.Context, post *models.Post, code int, commentForm forms.CommentForm, commentErrors map[string]string) {
	comments, err := h.store.Comments.ForPost(post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load comments")
		return
	}

	rendered := make([]renderedComment, len(comments))
	for i, comment := range comments {
		rendered[i] = renderedComment{
			Comment:  comment,
			TextHTML: utils.RenderMarkdown(comment.Text),
		}
	}

	Render(c, code, "posts/detail.html", gin.H{
		"Title":         post.Title,
		"Post":          post,
		"PostText":      utils.RenderMarkdown(post.Text),
		"Comments":      rendered,
		"CommentForm":   commentForm,
		"CommentErrors": commentErrors,
	})
}

// Detail shows one post with its comments. The author sees their own post in
// any state; everyone else only when it is effectively visible.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	post, err := h.store.Posts.Find(id)
	if err != nil {
		NotFound(c)
		return
	}
	if !store.PostVisibleTo(post, currentUser(c), time.Now()) {
		NotFound(c)
		return
	}

	h.renderDetail(c, post, http.StatusOK, forms.CommentForm{}, nil)
}

// renderPostForm shows the create/edit form with select options loaded.
func (h *PostHandler) renderPostForm(c *gin.Context, code int, data gin.H) {
	categories, err := h.store.Categories.ListPublished()
	if err == nil {
		data["Categories"] = categories
	}
	locations, err := h.store.Locations.ListPublished()
	if err == nil {
		data["Locations"] = locations
	}
	Render(c, code, "posts/form.html", data)
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, gin.H{
		"Title": "New post",
		"Form":  forms.PostForm{PubDate: time.Now().Format("2006-01-02")},
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	form := forms.BindPostForm(c)
	if err := form.Validate(); err != nil {
		h.renderPostForm(c, http.StatusBadRequest, gin.H{
			"Title":  "New post",
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	// Authorship comes from the session, never from the form, and new posts
	// start published; the pub_date alone schedules them.
	post := models.Post{
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDateTime(),
		IsPublished: true,
		AuthorID:    user.ID,
		CategoryID:  form.CategoryRef(),
		LocationID:  form.LocationRef(),
	}

	if err := h.store.Posts.Save(&post); err != nil {
		h.renderPostForm(c, http.StatusInternalServerError, gin.H{
			"Title":  "New post",
			"Form":   form,
			"Errors": map[string]string{"_": "Failed to save the post"},
		})
		return
	}

	h.invalidateIndex()
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	post, err := h.store.Posts.Find(id)
	if err != nil {
		NotFound(c)
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), post.AuthorID, postPath(post.ID)) {
		return
	}

	form := forms.PostForm{
		Title:   post.Title,
		Text:    post.Text,
		PubDate: forms.FormatPubDate(post.PubDate),
	}
	if post.CategoryID != nil {
		form.CategoryID = strconv.Itoa(int(*post.CategoryID))
	}
	if post.LocationID != nil {
		form.LocationID = strconv.Itoa(int(*post.LocationID))
	}

	h.renderPostForm(c, http.StatusOK, gin.H{
		"Title": "Edit post",
		"Post":  post,
		"Form":  form,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	post, err := h.store.Posts.Find(id)
	if err != nil {
		NotFound(c)
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), post.AuthorID, postPath(post.ID)) {
		return
	}

	form := forms.BindPostForm(c)
	if err := form.Validate(); err != nil {
		h.renderPostForm(c, http.StatusBadRequest, gin.H{
			"Title":  "Edit post",
			"Post":   post,
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	// Author and created_at stay as they are; only the submitted fields move.
	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDateTime()
	post.CategoryID = form.CategoryRef()
	post.LocationID = form.LocationRef()

	if err := h.store.Posts.Save(post); err != nil {
		h.renderPostForm(c, http.StatusInternalServerError, gin.H{
			"Title":  "Edit post",
			"Post":   post,
			"Form":   form,
			"Errors": map[string]string{"_": "Failed to save the post"},
		})
		return
	}

	h.invalidateIndex()
	c.Redirect(http.StatusFound, postPath(post.ID))
}

// ShowDelete renders the confirmation view with the record's current data.
// Nothing is deleted on the read method.
func (h *PostHandler) ShowDelete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	post, err := h.store.Posts.Find(id)
	if err != nil {
		NotFound(c)
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), post.AuthorID, postPath(post.ID)) {
		return
	}

	Render(c, http.StatusOK, "posts/delete.html", gin.H{
		"Title": "Delete post",
		"Post":  post,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	post, err := h.store.Posts.Find(id)
	if err != nil {
		NotFound(c)
		return
	}
	if !h.guard.allowAuthor(c, currentUser(c), post.AuthorID, postPath(post.ID)) {
		return
	}

	if err := h.store.Posts.Delete(post); err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to delete the post")
		return
	}

	h.invalidateIndex()
	c.Redirect(http.StatusFound, "/")
}

// fetchVisible loads a post the requester is allowed to see, for the comment
// routes that hang off the detail page.
func (h *PostHandler) fetchVisible(id uint, viewer *models.User) (*models.Post, error) {
	post, err := h.store.Posts.Find(id)
	if err != nil {
		return nil, err
	}
	if !store.PostVisibleTo(post, viewer, time.Now()) {
		return nil, store.ErrNotFound
	}
	return post, nil
}
