package models

// Rendering contexts returned by the view operations. Template rendering is
// out of scope; these are the serialized page payloads.

type PostListPage struct {
	Posts []Post `json:"posts"`
	Page  Page   `json:"page"`
}

type GroupPage struct {
	Group Group  `json:"group"`
	Posts []Post `json:"posts"`
	Page  Page   `json:"page"`
}

type ProfilePage struct {
	Author    UserResponse `json:"author"`
	PostCount int64        `json:"post_count"`
	Posts     []Post       `json:"posts"`
	Page      Page         `json:"page"`
}

type PostDetailPage struct {
	Post            Post           `json:"post"`
	AuthorPostCount int64          `json:"author_post_count"`
	Comments        []Comment      `json:"comments"`
	CommentForm     CommentRequest `json:"comment_form"`
}

type PostFormPage struct {
	Form   PostRequest `json:"form"`
	Groups []Group     `json:"groups"`
	IsEdit bool        `json:"is_edit"`
	Post   *Post       `json:"post,omitempty"`
}
