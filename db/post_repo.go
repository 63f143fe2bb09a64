package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// PostRepository persists posts and serves the paginated listings. Every
// listing is a fixed-size window over its route's defined order.
type PostRepository interface {
	CreatePost(post *models.Post) error
	UpdatePost(post *models.Post) error
	FindPostByID(id uint) (*models.Post, error)
	ListPosts(page int) ([]models.Post, models.Page, error)
	ListPostsByGroup(groupID uint, page int) ([]models.Post, models.Page, error)
	ListPostsByAuthor(authorID uint, page int) ([]models.Post, models.Page, error)
	ListFeedPosts(userID uint, page int) ([]models.Post, models.Page, error)
	CountPostsByAuthor(authorID uint) (int64, error)
}

type postRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *GormDB) PostRepository {
	return &postRepo{db.DB}
}

func (r *postRepo) CreatePost(post *models.Post) error {
	if err := r.DB.Omit("Author", "Group").Create(post).Error; err != nil {
		return errors.Wrap(err, "could not create post")
	}
	return nil
}

func (r *postRepo) UpdatePost(post *models.Post) error {
	err := r.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return errors.Wrap(err, "could not update post")
	}
	return nil
}

func (r *postRepo) FindPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns all posts, newest first.
func (r *postRepo) ListPosts(page int) ([]models.Post, models.Page, error) {
	return r.list(r.DB.Model(&models.Post{}), "pub_date DESC, id DESC", page)
}

// ListPostsByGroup returns a group's posts, oldest first.
func (r *postRepo) ListPostsByGroup(groupID uint, page int) ([]models.Post, models.Page, error) {
	q := r.DB.Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.list(q, "pub_date ASC, id ASC", page)
}

// ListPostsByAuthor returns an author's posts, oldest first.
func (r *postRepo) ListPostsByAuthor(authorID uint, page int) ([]models.Post, models.Page, error) {
	q := r.DB.Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.list(q, "pub_date ASC, id ASC", page)
}

// ListFeedPosts returns posts authored by anyone the user follows, newest first.
func (r *postRepo) ListFeedPosts(userID uint, page int) ([]models.Post, models.Page, error) {
	followed := r.DB.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
	q := r.DB.Model(&models.Post{}).Where("author_id IN (?)", followed)
	return r.list(q, "pub_date DESC, id DESC", page)
}

func (r *postRepo) CountPostsByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *postRepo) list(q *gorm.DB, order string, page int) ([]models.Post, models.Page, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, models.Page{}, errors.Wrap(err, "could not count posts")
	}

	offset, meta := clampPage(page, count)

	var posts []models.Post
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Group").
		Order(order).
		Limit(DefaultPageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.Page{}, errors.Wrap(err, "could not list posts")
	}
	return posts, meta, nil
}
