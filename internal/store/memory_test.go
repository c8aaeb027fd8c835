package store

import (
	"fmt"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, s.Users.Save(user))
	return user
}

func seedPost(t *testing.T, s *Store, author *models.User, title string, pubDate time.Time, published bool, categoryID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "text of " + title,
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    author.ID,
		CategoryID:  categoryID,
	}
	require.NoError(t, s.Posts.Save(post))
	return post
}

func TestListVisibleGlobal(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	author := seedUser(t, s, "alice")

	hiddenCat := &models.Category{Title: "Hidden", Slug: "hidden", IsPublished: false, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.Categories.Save(hiddenCat))

	visible := seedPost(t, s, author, "visible", now.Add(-time.Hour), true, nil)
	seedPost(t, s, author, "future", now.Add(24*time.Hour), true, nil)
	seedPost(t, s, author, "draft", now.Add(-time.Hour), false, nil)
	seedPost(t, s, author, "hidden-category", now.Add(-time.Hour), true, &hiddenCat.ID)

	posts, total, err := s.Posts.ListVisible(Global(), nil, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author.Username, "author association is loaded")
}

func TestListVisibleOrderAndPagination(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	author := seedUser(t, s, "alice")

	for i := 0; i < 25; i++ {
		seedPost(t, s, author, fmt.Sprintf("post-%02d", i), now.Add(-time.Duration(i)*time.Hour), true, nil)
	}

	page1, total, err := s.Posts.ListVisible(Global(), nil, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "post-00", page1[0].Title, "newest pub_date first")
	assert.Equal(t, "post-09", page1[9].Title)

	page3, _, err := s.Posts.ListVisible(Global(), nil, now, 3, 10)
	require.NoError(t, err)
	require.Len(t, page3, 5)
	assert.Equal(t, "post-24", page3[4].Title)

	empty, _, err := s.Posts.ListVisible(Global(), nil, now, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListVisibleCategoryScope(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	author := seedUser(t, s, "alice")

	news := &models.Category{Title: "News", Slug: "news", IsPublished: true, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.Categories.Save(news))
	seedPost(t, s, author, "in-news", now.Add(-time.Hour), true, &news.ID)
	seedPost(t, s, author, "future-in-news", now.Add(time.Hour), true, &news.ID)
	seedPost(t, s, author, "elsewhere", now.Add(-time.Hour), true, nil)

	posts, total, err := s.Posts.ListVisible(InCategory("news"), nil, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "in-news", posts[0].Title)

	_, _, err = s.Posts.ListVisible(InCategory("no-such"), nil, now, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListVisibleUnpublishedCategoryIsNotFound(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	author := seedUser(t, s, "alice")

	hidden := &models.Category{Title: "Hidden", Slug: "hidden", IsPublished: false, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.Categories.Save(hidden))
	seedPost(t, s, author, "in-hidden", now.Add(-time.Hour), true, &hidden.ID)

	// NotFound for the whole listing, not an empty list.
	_, _, err := s.Posts.ListVisible(InCategory("hidden"), nil, now, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	future := &models.Category{Title: "Future", Slug: "future", IsPublished: true, CreatedAt: now.Add(time.Hour)}
	require.NoError(t, s.Categories.Save(future))
	_, _, err = s.Posts.ListVisible(InCategory("future"), nil, now, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListVisibleProfileScope(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	seedPost(t, s, alice, "published", now.Add(-time.Hour), true, nil)
	seedPost(t, s, alice, "draft", now.Add(-time.Hour), false, nil)
	seedPost(t, s, alice, "scheduled", now.Add(time.Hour), true, nil)

	own, total, err := s.Posts.ListVisible(ByAuthor("alice"), alice, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total, "owner sees every own post")
	assert.Len(t, own, 3)

	others, total, err := s.Posts.ListVisible(ByAuthor("alice"), bob, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, others, 1)
	assert.Equal(t, "published", others[0].Title)

	anon, total, err := s.Posts.ListVisible(ByAuthor("alice"), nil, now, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, anon, 1)

	_, _, err = s.Posts.ListVisible(ByAuthor("nobody"), nil, now, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	alice := seedUser(t, s, "alice")
	post := seedPost(t, s, alice, "post", now.Add(-time.Hour), true, nil)

	comment := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Text: "hello"}
	require.NoError(t, s.Comments.Save(comment))

	require.NoError(t, s.Posts.Delete(post))

	_, err := s.Posts.Find(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Comments.Find(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound, "comments go with their post")
}

func TestCommentsForPostOrder(t *testing.T) {
	s := NewMemory()
	now := time.Now()
	alice := seedUser(t, s, "alice")
	post := seedPost(t, s, alice, "post", now.Add(-time.Hour), true, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Comments.Save(&models.Comment{
			PostID: post.ID, AuthorID: alice.ID, Text: fmt.Sprintf("comment %d", i),
		}))
	}

	comments, err := s.Comments.ForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "comment 0", comments[0].Text, "oldest first")
	assert.Equal(t, "comment 2", comments[2].Text)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestUserUniqueness(t *testing.T) {
	s := NewMemory()
	seedUser(t, s, "alice")

	err := s.Users.Save(&models.User{Username: "alice", Email: "fresh@example.com", Password: "x"})
	assert.Error(t, err)
	err = s.Users.Save(&models.User{Username: "fresh", Email: "alice@example.com", Password: "x"})
	assert.Error(t, err)
}
