package store

import (
	"time"

	"blogicum/internal/models"
)

// PostVisible is the effective-visibility predicate: published, publish date
// reached, and the category (when set) published too. It is the single
// definition both storage backends and the handlers rely on.
func PostVisible(p *models.Post, now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil {
		if p.Category == nil || !p.Category.IsPublished {
			return false
		}
	}
	return true
}

// PostVisibleTo adds the owner bypass: the author always sees their own post.
func PostVisibleTo(p *models.Post, viewer *models.User, now time.Time) bool {
	if viewer != nil && viewer.ID == p.AuthorID {
		return true
	}
	return PostVisible(p, now)
}

// CategoryVisible gates category-scoped listings. An unpublished or
// future-dated category hides its whole listing, not just its posts.
func CategoryVisible(c *models.Category, now time.Time) bool {
	return c.IsPublished && !c.CreatedAt.After(now)
}
