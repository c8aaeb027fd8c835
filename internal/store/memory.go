package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"blogicum/internal/models"
)

// NewMemory returns a Store backed by plain maps. It mirrors the storage-level
// behavior the gorm implementation gets for free: auto-assigned ids, created_at
// stamping, unique user constraints and the post -> comments cascade delete.
// Tests run against it so the visibility logic never needs postgres.
func NewMemory() *Store {
	m := &memory{
		users:      map[uint]models.User{},
		posts:      map[uint]models.Post{},
		comments:   map[uint]models.Comment{},
		categories: map[uint]models.Category{},
		locations:  map[uint]models.Location{},
	}
	return &Store{
		Posts:      (*memPosts)(m),
		Comments:   (*memComments)(m),
		Categories: (*memCategories)(m),
		Locations:  (*memLocations)(m),
		Users:      (*memUsers)(m),
	}
}

type memory struct {
	mu         sync.Mutex
	nextID     uint
	users      map[uint]models.User
	posts      map[uint]models.Post
	comments   map[uint]models.Comment
	categories map[uint]models.Category
	locations  map[uint]models.Location
}

func (m *memory) id() uint {
	m.nextID++
	return m.nextID
}

// attach resolves the association fields the gorm preloads would fill.
func (m *memory) attach(p *models.Post) {
	p.Author = m.users[p.AuthorID]
	if p.CategoryID != nil {
		if c, ok := m.categories[*p.CategoryID]; ok {
			p.Category = &c
		}
	} else {
		p.Category = nil
	}
	if p.LocationID != nil {
		if l, ok := m.locations[*p.LocationID]; ok {
			p.Location = &l
		}
	} else {
		p.Location = nil
	}
	count := 0
	for _, c := range m.comments {
		if c.PostID == p.ID {
			count++
		}
	}
	p.CommentCount = count
}

type memPosts memory

func (s *memPosts) Find(id uint) (*models.Post, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.attach(&post)
	return &post, nil
}

func (s *memPosts) ListVisible(scope Scope, viewer *models.User, now time.Time, page, perPage int) ([]models.Post, int64, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	match := func(p *models.Post) bool { return PostVisible(p, now) }

	switch scope.Kind {
	case ScopeCategory:
		var category *models.Category
		for _, c := range m.categories {
			if c.Slug == scope.Slug {
				cc := c
				category = &cc
				break
			}
		}
		if category == nil || !CategoryVisible(category, now) {
			return nil, 0, ErrNotFound
		}
		match = func(p *models.Post) bool {
			return p.CategoryID != nil && *p.CategoryID == category.ID &&
				p.IsPublished && !p.PubDate.After(now)
		}
	case ScopeProfile:
		var owner *models.User
		for _, u := range m.users {
			if u.Username == scope.Username {
				uu := u
				owner = &uu
				break
			}
		}
		if owner == nil {
			return nil, 0, ErrNotFound
		}
		if viewer != nil && viewer.ID == owner.ID {
			match = func(p *models.Post) bool { return p.AuthorID == owner.ID }
		} else {
			match = func(p *models.Post) bool {
				return p.AuthorID == owner.ID && PostVisible(p, now)
			}
		}
	}

	var all []models.Post
	for _, p := range m.posts {
		post := p
		m.attach(&post)
		if match(&post) {
			all = append(all, post)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].PubDate.Equal(all[j].PubDate) {
			return all[i].PubDate.After(all[j].PubDate)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	lo := (page - 1) * perPage
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + perPage
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (s *memPosts) Save(post *models.Post) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if post.ID == 0 {
		post.ID = m.id()
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	m.posts[post.ID] = *post
	return nil
}

func (s *memPosts) Delete(post *models.Post) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.posts, post.ID)
	for id, c := range m.comments {
		if c.PostID == post.ID {
			delete(m.comments, id)
		}
	}
	return nil
}

type memComments memory

func (s *memComments) Find(id uint) (*models.Comment, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	comment.Author = m.users[comment.AuthorID]
	return &comment, nil
}

func (s *memComments) ForPost(postID uint) ([]models.Comment, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	var comments []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			c.Author = m.users[c.AuthorID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (s *memComments) Save(comment *models.Comment) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	if comment.ID == 0 {
		comment.ID = m.id()
		comment.CreatedAt = time.Now()
	}
	m.comments[comment.ID] = *comment
	return nil
}

func (s *memComments) Delete(comment *models.Comment) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.comments, comment.ID)
	return nil
}

type memCategories memory

func (s *memCategories) BySlug(slug string) (*models.Category, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCategories) ListPublished() ([]models.Category, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	var categories []models.Category
	for _, c := range m.categories {
		if c.IsPublished {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

func (s *memCategories) Save(category *models.Category) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	if category.ID == 0 {
		category.ID = m.id()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	m.categories[category.ID] = *category
	return nil
}

type memLocations memory

func (s *memLocations) ListPublished() ([]models.Location, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	var locations []models.Location
	for _, l := range m.locations {
		if l.IsPublished {
			locations = append(locations, l)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (s *memLocations) Save(location *models.Location) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	if location.ID == 0 {
		location.ID = m.id()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}
	m.locations[location.ID] = *location
	return nil
}

type memUsers memory

func (s *memUsers) Find(id uint) (*models.User, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *memUsers) ByUsername(username string) (*models.User, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) ByEmail(email string) (*models.User, error) {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) Save(user *models.User) error {
	m := (*memory)(s)
	m.mu.Lock()
	defer m.mu.Unlock()

	// Mimic the unique indexes on username and email.
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username {
			return fmt.Errorf("store: duplicate username %q", user.Username)
		}
		if u.Email == user.Email {
			return fmt.Errorf("store: duplicate email %q", user.Email)
		}
	}

	now := time.Now()
	if user.ID == 0 {
		user.ID = m.id()
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	m.users[user.ID] = *user
	return nil
}
