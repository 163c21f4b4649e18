package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindByCredentials 按 (email, 摘要) 单次查找。
// 错误口令与未知邮箱返回同样的 gorm.ErrRecordNotFound，不可区分。
func (r *UserRepository) FindByCredentials(email, passwordDigest string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? AND password = ?", email, passwordDigest).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindStudentByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? AND role = ?", email, model.Student).First(&user).Error
	return &user, err
}
