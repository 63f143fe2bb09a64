package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is authored content. The group reference is optional and survives
// group deletion with the reference cleared.
type Post struct {
	Model
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"index"`
	Image    string    `json:"image,omitempty"`
	GroupID  *uint     `json:"group_id,omitempty"`
	Group    *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}

// PostRequest binds the post create/edit form. The author is injected by the
// handler from the authenticated user, never taken from the client.
type PostRequest struct {
	Text    string `form:"text" conform:"trim" binding:"required"`
	GroupID *uint  `form:"group"`
}
