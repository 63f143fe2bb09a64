package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// FollowRepository persists directed user->author subscriptions.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
}

type followRepo struct {
	DB *gorm.DB
}

func NewFollowRepo(db *GormDB) FollowRepository {
	return &followRepo{db.DB}
}

// CreateFollow is idempotent: an existing (user, author) row is left as is.
func (r *followRepo) CreateFollow(follow *models.Follow) error {
	err := r.DB.Where(models.Follow{UserID: follow.UserID, AuthorID: follow.AuthorID}).
		FirstOrCreate(follow).Error
	if err != nil {
		return errors.Wrap(err, "could not create follow")
	}
	return nil
}

// DeleteFollow removes the subscription if present; absent rows are a no-op.
func (r *followRepo) DeleteFollow(userID, authorID uint) error {
	err := r.DB.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return errors.Wrap(err, "could not delete follow")
	}
	return nil
}

func (r *followRepo) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not count follows")
	}
	return count > 0, nil
}
