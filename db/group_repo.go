package db

import (
	"github.com/techagentng/blogx/models"
	"gorm.io/gorm"
)

// GroupRepository persists and resolves groups.
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	FindGroupBySlug(slug string) (*models.Group, error)
	FindGroupByID(id uint) (*models.Group, error)
	ListGroups() ([]models.Group, error)
	DeleteGroup(id uint) error
}

type groupRepo struct {
	DB *gorm.DB
}

func NewGroupRepo(db *GormDB) GroupRepository {
	return &groupRepo{db.DB}
}

func (r *groupRepo) CreateGroup(group *models.Group) error {
	return r.DB.Create(group).Error
}

func (r *groupRepo) FindGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.DB.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) FindGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	err := r.DB.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	err := r.DB.Order("title ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteGroup removes a group and clears the group reference on its posts.
// Posts themselves are never deleted with their group.
func (r *groupRepo) DeleteGroup(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}
