package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAdvisors() ([]model.User, error)
	FindByCompanyID(companyID uint) ([]model.User, error)
	Update(user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAdvisors returns advisor accounts in stable id order, for deterministic
// auto-assignment tie-breaking.
func (r *userRepository) FindAdvisors() ([]model.User, error) {
	var advisors []model.User
	err := r.db.Where("role = ?", model.RoleAdvisor).Order("id ASC").Find(&advisors).Error
	if err != nil {
		return nil, err
	}
	return advisors, nil
}

func (r *userRepository) FindByCompanyID(companyID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}
