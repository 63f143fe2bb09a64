package models

import (
	"errors"
	"time"
)

// Follow records that UserID subscribes to AuthorID's posts. The composite
// unique index keeps at most one row per (user, author) pair.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_user_author"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_follow_user_author"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

var ErrSelfFollow = errors.New("users cannot follow themselves")

// NewFollow constructs a follow, rejecting self-subscription.
func NewFollow(userID, authorID uint) (*Follow, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	return &Follow{UserID: userID, AuthorID: authorID}, nil
}
