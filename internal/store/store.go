// Package store puts all persistence behind small repository interfaces so the
// visibility rules can be exercised without a running database. The gorm
// implementation (gorm.go) is what the server wires up; the in-memory
// implementation (memory.go) backs the tests.
package store

import (
	"errors"
	"time"

	"blogicum/internal/models"
)

// ErrNotFound covers unknown ids/slugs/usernames and records excluded by the
// visibility rules. Callers compare with errors.Is.
var ErrNotFound = errors.New("store: record not found")

type ScopeKind int

const (
	// ScopeGlobal lists every effectively visible post.
	ScopeGlobal ScopeKind = iota
	// ScopeCategory lists visible posts inside one published category.
	ScopeCategory
	// ScopeProfile lists one author's posts; the author themself sees all of
	// them, everyone else only the effectively visible ones.
	ScopeProfile
)

// Scope is the listing context passed to PostStore.ListVisible.
type Scope struct {
	Kind     ScopeKind
	Slug     string // ScopeCategory
	Username string // ScopeProfile
}

func Global() Scope                  { return Scope{Kind: ScopeGlobal} }
func InCategory(slug string) Scope   { return Scope{Kind: ScopeCategory, Slug: slug} }
func ByAuthor(username string) Scope { return Scope{Kind: ScopeProfile, Username: username} }

type PostStore interface {
	// Find returns any post by id with Author, Category and Location loaded,
	// regardless of visibility. Visibility is the caller's decision because
	// the author bypasses it.
	Find(id uint) (*models.Post, error)

	// ListVisible returns one page of posts visible to viewer (nil for
	// anonymous) under the given scope, newest pub_date first, plus the total
	// match count. A category scope whose category is unknown, unpublished or
	// future-dated fails with ErrNotFound, as does a profile scope with an
	// unknown username.
	ListVisible(scope Scope, viewer *models.User, now time.Time, page, perPage int) ([]models.Post, int64, error)

	Save(post *models.Post) error
	Delete(post *models.Post) error
}

type CommentStore interface {
	Find(id uint) (*models.Comment, error)
	// ForPost returns the post's comments oldest first with authors loaded.
	ForPost(postID uint) ([]models.Comment, error)
	Save(comment *models.Comment) error
	Delete(comment *models.Comment) error
}

type CategoryStore interface {
	BySlug(slug string) (*models.Category, error)
	ListPublished() ([]models.Category, error)
	Save(category *models.Category) error
}

type LocationStore interface {
	ListPublished() ([]models.Location, error)
	Save(location *models.Location) error
}

type UserStore interface {
	Find(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	Save(user *models.User) error
}

// Store bundles the repositories handed to the handlers.
type Store struct {
	Posts      PostStore
	Comments   CommentStore
	Categories CategoryStore
	Locations  LocationStore
	Users      UserStore
}
