package store

import (
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestPostVisible(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	published := models.Category{ID: 7, IsPublished: true, CreatedAt: now.AddDate(0, -1, 0)}
	unpublished := models.Category{ID: 8, IsPublished: false, CreatedAt: now.AddDate(0, -1, 0)}

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{
			name: "published past post without category",
			post: models.Post{IsPublished: true, PubDate: now.Add(-time.Hour)},
			want: true,
		},
		{
			name: "unpublished post",
			post: models.Post{IsPublished: false, PubDate: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "future pub date",
			post: models.Post{IsPublished: true, PubDate: now.Add(24 * time.Hour)},
			want: false,
		},
		{
			name: "pub date exactly now",
			post: models.Post{IsPublished: true, PubDate: now},
			want: true,
		},
		{
			name: "published category",
			post: models.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: uintPtr(7), Category: &published},
			want: true,
		},
		{
			name: "unpublished category hides the post",
			post: models.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: uintPtr(8), Category: &unpublished},
			want: false,
		},
		{
			name: "category reference without loaded category",
			post: models.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: uintPtr(9)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostVisible(&tt.post, now))
		})
	}
}

func TestPostVisibleTo(t *testing.T) {
	now := time.Now()
	author := &models.User{ID: 1}
	other := &models.User{ID: 2}
	draft := &models.Post{AuthorID: 1, IsPublished: false, PubDate: now.Add(48 * time.Hour)}

	assert.True(t, PostVisibleTo(draft, author, now), "author sees own unpublished future post")
	assert.False(t, PostVisibleTo(draft, other, now))
	assert.False(t, PostVisibleTo(draft, nil, now), "anonymous viewer gets the generic predicate")

	public := &models.Post{AuthorID: 1, IsPublished: true, PubDate: now.Add(-time.Hour)}
	assert.True(t, PostVisibleTo(public, other, now))
	assert.True(t, PostVisibleTo(public, nil, now))
}

func TestCategoryVisible(t *testing.T) {
	now := time.Now()

	assert.True(t, CategoryVisible(&models.Category{IsPublished: true, CreatedAt: now.Add(-time.Hour)}, now))
	assert.False(t, CategoryVisible(&models.Category{IsPublished: false, CreatedAt: now.Add(-time.Hour)}, now))
	assert.False(t, CategoryVisible(&models.Category{IsPublished: true, CreatedAt: now.Add(time.Hour)}, now))
}
