package models

// Comment is immutable text attached to exactly one post.
type Comment struct {
	Model
	Text     string `json:"text" gorm:"type:text;not null"`
	PostID   uint   `json:"post_id" gorm:"not null;index"`
	AuthorID uint   `json:"author_id" gorm:"not null"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
}

// CommentRequest binds the comment form; post and author come from the caller.
type CommentRequest struct {
	Text string `form:"text" conform:"trim" binding:"required"`
}
