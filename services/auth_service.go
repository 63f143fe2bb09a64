package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/techagentng/blogx/config"
	"github.com/techagentng/blogx/db"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/models"
	"github.com/techagentng/blogx/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error)
	LoginUser(request *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiates an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (a *authService) SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error) {
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := a.authRepo.IsUsernameExist(request.Username); err != nil {
		return nil, apiError.New("username already in use", http.StatusConflict)
	}
	if err := a.authRepo.IsEmailExist(request.Email); err != nil {
		return nil, apiError.New("email already in use", http.StatusConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Fullname:       request.Fullname,
		Username:       request.Username,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
	}
	user, err = a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

// LoginUser checks the credentials and returns a signed access token.
func (a *authService) LoginUser(request *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByUsername(request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid username or password", http.StatusUnprocessableEntity)
		}
		log.Printf("error finding user by username: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := foundUser.VerifyPassword(request.Password); err != nil {
		return nil, apiError.New("invalid username or password", http.StatusUnprocessableEntity)
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating access token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: foundUser.Response(),
		AccessToken:  accessToken,
	}, nil
}
