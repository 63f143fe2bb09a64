package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

// User represents an author or reader of the application.
type User struct {
	Model
	Fullname       string `json:"fullname"`
	Username       string `json:"username" gorm:"uniqueIndex;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	Password       string `json:"password,omitempty" gorm:"-"`
	HashedPassword string `json:"-"`
	IsAdmin        bool   `json:"is_admin"`
}

type SignupRequest struct {
	Fullname string `json:"fullname" conform:"trim"`
	Username string `json:"username" conform:"trim" binding:"required,min=2"`
	Email    string `json:"email" conform:"trim,lower" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" conform:"trim" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(
		goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// VerifyPassword compares the collected password with the user's hashed password.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Username: u.Username,
		Email:    u.Email,
	}
}
