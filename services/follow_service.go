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

// FollowService serves the follow/unfollow operations and the followed
// authors' feed.
type FollowService interface {
	GetFeedPage(userID uint, page int) (*models.PostListPage, *apiError.Error)
	FollowAuthor(userID uint, username string) (*models.User, *apiError.Error)
	UnfollowAuthor(userID uint, username string) (*models.User, *apiError.Error)
}

type followService struct {
	Config     *config.Config
	followRepo db.FollowRepository
	postRepo   db.PostRepository
	authRepo   db.AuthRepository
}

func NewFollowService(followRepo db.FollowRepository, postRepo db.PostRepository, authRepo db.AuthRepository, conf *config.Config) FollowService {
	return &followService{
		Config:     conf,
		followRepo: followRepo,
		postRepo:   postRepo,
		authRepo:   authRepo,
	}
}

func (s *followService) GetFeedPage(userID uint, page int) (*models.PostListPage, *apiError.Error) {
	posts, meta, err := s.postRepo.ListFeedPosts(userID, page)
	if err != nil {
		log.Printf("error listing feed posts: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.PostListPage{Posts: posts, Page: meta}, nil
}

// FollowAuthor idempotently subscribes userID to the named author. Following
// yourself is a silent no-op.
func (s *followService) FollowAuthor(userID uint, username string) (*models.User, *apiError.Error) {
	author, apiErr := s.findAuthor(username)
	if apiErr != nil {
		return nil, apiErr
	}

	follow, err := models.NewFollow(userID, author.ID)
	if err != nil {
		// self-follow: never created, not an error at this surface
		return author, nil
	}
	if err := s.followRepo.CreateFollow(follow); err != nil {
		log.Printf("error creating follow: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}

// UnfollowAuthor removes the subscription if it exists.
func (s *followService) UnfollowAuthor(userID uint, username string) (*models.User, *apiError.Error) {
	author, apiErr := s.findAuthor(username)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.followRepo.DeleteFollow(userID, author.ID); err != nil {
		log.Printf("error deleting follow: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}

func (s *followService) findAuthor(username string) (*models.User, *apiError.Error) {
	author, err := s.authRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("error finding user %q: %v", username, err)
		return nil, apiError.ErrInternalServerError
	}
	return author, nil
}
