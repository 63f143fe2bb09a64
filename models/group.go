package models

// Group is a named topical collection posts may belong to.
// Groups are created administratively; slug is the URL-safe identifier.
type Group struct {
	Model
	Title       string `json:"title" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}
