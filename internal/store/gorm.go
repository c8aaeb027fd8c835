package store

import (
	"errors"
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// NewGorm wires the gorm-backed repositories.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Posts:      &gormPosts{db: db},
		Comments:   &gormComments{db: db},
		Categories: &gormCategories{db: db},
		Locations:  &gormLocations{db: db},
		Users:      &gormUsers{db: db},
	}
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormPosts struct {
	db *gorm.DB
}

func (s *gormPosts) Find(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Category").Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &post, nil
}

// visibleFilter is the SQL form of PostVisible. The LEFT JOIN keeps posts
// without a category in the result set.
func visibleFilter(now time.Time) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

func (s *gormPosts) ListVisible(scope Scope, viewer *models.User, now time.Time, page, perPage int) ([]models.Post, int64, error) {
	var filter func(tx *gorm.DB) *gorm.DB

	switch scope.Kind {
	case ScopeCategory:
		var category models.Category
		if err := s.db.Where("slug = ?", scope.Slug).First(&category).Error; err != nil {
			return nil, 0, mapErr(err)
		}
		if !CategoryVisible(&category, now) {
			return nil, 0, ErrNotFound
		}
		filter = func(tx *gorm.DB) *gorm.DB {
			return tx.
				Where("posts.category_id = ?", category.ID).
				Where("posts.is_published = ?", true).
				Where("posts.pub_date <= ?", now)
		}
	case ScopeProfile:
		var owner models.User
		if err := s.db.Where("username = ?", scope.Username).First(&owner).Error; err != nil {
			return nil, 0, mapErr(err)
		}
		if viewer != nil && viewer.ID == owner.ID {
			filter = func(tx *gorm.DB) *gorm.DB {
				return tx.Where("posts.author_id = ?", owner.ID)
			}
		} else {
			filter = func(tx *gorm.DB) *gorm.DB {
				return visibleFilter(now)(tx).Where("posts.author_id = ?", owner.ID)
			}
		}
	default:
		filter = visibleFilter(now)
	}

	var total int64
	if err := s.db.Model(&models.Post{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := s.db.Model(&models.Post{}).Scopes(filter).
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.pub_date DESC, posts.id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	if err := s.fillCommentCounts(posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *gormPosts) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countRow struct {
		PostID uint
		Count  int
	}
	var rows []countRow
	err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

func (s *gormPosts) Save(post *models.Post) error {
	return s.db.Save(post).Error
}

func (s *gormPosts) Delete(post *models.Post) error {
	// Comment rows go with the post via the FK ON DELETE CASCADE.
	return s.db.Delete(post).Error
}

type gormComments struct {
	db *gorm.DB
}

func (s *gormComments) Find(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &comment, nil
}

func (s *gormComments) ForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (s *gormComments) Save(comment *models.Comment) error {
	return s.db.Save(comment).Error
}

func (s *gormComments) Delete(comment *models.Comment) error {
	return s.db.Delete(comment).Error
}

type gormCategories struct {
	db *gorm.DB
}

func (s *gormCategories) BySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, mapErr(err)
	}
	return &category, nil
}

func (s *gormCategories) ListPublished() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_published = ?", true).Order("title ASC").Find(&categories).Error
	return categories, err
}

func (s *gormCategories) Save(category *models.Category) error {
	return s.db.Save(category).Error
}

type gormLocations struct {
	db *gorm.DB
}

func (s *gormLocations) ListPublished() ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Where("is_published = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (s *gormLocations) Save(location *models.Location) error {
	return s.db.Save(location).Error
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Find(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *gormUsers) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *gormUsers) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *gormUsers) Save(user *models.User) error {
	return s.db.Save(user).Error
}
