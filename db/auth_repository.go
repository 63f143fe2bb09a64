package db

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// AuthRepository persists and resolves users.
type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	IsUsernameExist(username string) error
	IsEmailExist(email string) error
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	err := a.DB.Create(user).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) IsUsernameExist(username string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("username already in use")
	}
	return nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("email already in use")
	}
	return nil
}
