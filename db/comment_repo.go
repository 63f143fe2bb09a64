package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// CommentRepository persists comments. Comments have no edit path; ordering
// within a post is creation order.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	ListCommentsByPost(postID uint) ([]models.Comment, error)
}

type commentRepo struct {
	DB *gorm.DB
}

func NewCommentRepo(db *GormDB) CommentRepository {
	return &commentRepo{db.DB}
}

func (r *commentRepo) CreateComment(comment *models.Comment) error {
	if err := r.DB.Omit("Author").Create(comment).Error; err != nil {
		return errors.Wrap(err, "could not create comment")
	}
	return nil
}

func (r *commentRepo) ListCommentsByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list comments")
	}
	return comments, nil
}
