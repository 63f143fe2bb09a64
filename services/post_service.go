package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/techagentng/blogx/config"
	"github.com/techagentng/blogx/db"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// PostService serves the listing, detail, create, edit and comment
// operations. Ownership checks live here; the handler layer only decides how
// a denial is surfaced.
type PostService interface {
	GetHomePage(page int) (*models.PostListPage, *apiError.Error)
	GetGroupPage(slug string, page int) (*models.GroupPage, *apiError.Error)
	GetProfilePage(username string, page int) (*models.ProfilePage, *apiError.Error)
	GetPostDetail(postID uint) (*models.PostDetailPage, *apiError.Error)
	GetPostForm() (*models.PostFormPage, *apiError.Error)
	GetEditForm(userID, postID uint) (*models.PostFormPage, *apiError.Error)
	CreatePost(authorID uint, request *models.PostRequest, imagePath string) (*models.Post, *apiError.Error)
	UpdatePost(userID, postID uint, request *models.PostRequest, imagePath string) (*models.Post, *apiError.Error)
	AddComment(authorID, postID uint, request *models.CommentRequest) *apiError.Error
}

type postService struct {
	Config      *config.Config
	postRepo    db.PostRepository
	groupRepo   db.GroupRepository
	commentRepo db.CommentRepository
	authRepo    db.AuthRepository
}

func NewPostService(postRepo db.PostRepository, groupRepo db.GroupRepository, commentRepo db.CommentRepository, authRepo db.AuthRepository, conf *config.Config) PostService {
	return &postService{
		Config:      conf,
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		authRepo:    authRepo,
	}
}

func (s *postService) GetHomePage(page int) (*models.PostListPage, *apiError.Error) {
	posts, meta, err := s.postRepo.ListPosts(page)
	if err != nil {
		log.Printf("error listing posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.PostListPage{Posts: posts, Page: meta}, nil
}

func (s *postService) GetGroupPage(slug string, page int) (*models.GroupPage, *apiError.Error) {
	group, err := s.groupRepo.FindGroupBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("group not found", http.StatusNotFound)
		}
		log.Printf("error finding group %q: %v", slug, err)
		return nil, apiError.ErrInternalServerError
	}

	posts, meta, err := s.postRepo.ListPostsByGroup(group.ID, page)
	if err != nil {
		log.Printf("error listing group posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.GroupPage{Group: *group, Posts: posts, Page: meta}, nil
}

func (s *postService) GetProfilePage(username string, page int) (*models.ProfilePage, *apiError.Error) {
	author, err := s.authRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("error finding user %q: %v", username, err)
		return nil, apiError.ErrInternalServerError
	}

	posts, meta, err := s.postRepo.ListPostsByAuthor(author.ID, page)
	if err != nil {
		log.Printf("error listing author posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	count, err := s.postRepo.CountPostsByAuthor(author.ID)
	if err != nil {
		log.Printf("error counting author posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.ProfilePage{
		Author:    author.Response(),
		PostCount: count,
		Posts:     posts,
		Page:      meta,
	}, nil
}

func (s *postService) GetPostDetail(postID uint) (*models.PostDetailPage, *apiError.Error) {
	post, apiErr := s.findPost(postID)
	if apiErr != nil {
		return nil, apiErr
	}

	comments, err := s.commentRepo.ListCommentsByPost(post.ID)
	if err != nil {
		log.Printf("error listing comments: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	count, err := s.postRepo.CountPostsByAuthor(post.AuthorID)
	if err != nil {
		log.Printf("error counting author posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.PostDetailPage{
		Post:            *post,
		AuthorPostCount: count,
		Comments:        comments,
	}, nil
}

func (s *postService) GetPostForm() (*models.PostFormPage, *apiError.Error) {
	groups, err := s.groupRepo.ListGroups()
	if err != nil {
		log.Printf("error listing groups: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.PostFormPage{Groups: groups}, nil
}

func (s *postService) GetEditForm(userID, postID uint) (*models.PostFormPage, *apiError.Error) {
	post, apiErr := s.findPost(postID)
	if apiErr != nil {
		return nil, apiErr
	}
	if post.AuthorID != userID {
		return nil, apiError.ErrNotPostAuthor
	}

	groups, err := s.groupRepo.ListGroups()
	if err != nil {
		log.Printf("error listing groups: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	form := models.PostRequest{Text: post.Text, GroupID: post.GroupID}
	return &models.PostFormPage{Form: form, Groups: groups, IsEdit: true, Post: post}, nil
}

func (s *postService) CreatePost(authorID uint, request *models.PostRequest, imagePath string) (*models.Post, *apiError.Error) {
	groupID, apiErr := s.resolveGroup(request.GroupID)
	if apiErr != nil {
		return nil, apiErr
	}

	post := &models.Post{
		Text:     request.Text,
		GroupID:  groupID,
		Image:    imagePath,
		AuthorID: authorID,
	}
	if err := s.postRepo.CreatePost(post); err != nil {
		log.Printf("error creating post: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

func (s *postService) UpdatePost(userID, postID uint, request *models.PostRequest, imagePath string) (*models.Post, *apiError.Error) {
	post, apiErr := s.findPost(postID)
	if apiErr != nil {
		return nil, apiErr
	}
	if post.AuthorID != userID {
		return nil, apiError.ErrNotPostAuthor
	}

	groupID, apiErr := s.resolveGroup(request.GroupID)
	if apiErr != nil {
		return nil, apiErr
	}

	post.Text = request.Text
	post.GroupID = groupID
	post.Group = nil
	if imagePath != "" {
		post.Image = imagePath
	}
	if err := s.postRepo.UpdatePost(post); err != nil {
		log.Printf("error updating post: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

// AddComment attaches a comment to a post. An unknown post is an error; an
// invalid comment is silently dropped and the caller redirects regardless.
func (s *postService) AddComment(authorID, postID uint, request *models.CommentRequest) *apiError.Error {
	post, apiErr := s.findPost(postID)
	if apiErr != nil {
		return apiErr
	}

	if request == nil || request.Text == "" {
		return nil
	}

	comment := &models.Comment{
		Text:     request.Text,
		PostID:   post.ID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		log.Printf("error creating comment: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *postService) findPost(postID uint) (*models.Post, *apiError.Error) {
	post, err := s.postRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("post not found", http.StatusNotFound)
		}
		log.Printf("error finding post %d: %v", postID, err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

// resolveGroup verifies an optional group selection against existing groups.
// An empty selection binds as zero and means "no group".
func (s *postService) resolveGroup(groupID *uint) (*uint, *apiError.Error) {
	if groupID == nil || *groupID == 0 {
		return nil, nil
	}
	group, err := s.groupRepo.FindGroupByID(*groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("unknown group", http.StatusBadRequest)
		}
		log.Printf("error finding group %d: %v", *groupID, err)
		return nil, apiError.ErrInternalServerError
	}
	return &group.ID, nil
}
