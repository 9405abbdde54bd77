package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

func (r *TeacherRepository) Create(teacher *model.Teacher) error {
	return r.DB.Create(teacher).Error
}

func (r *TeacherRepository) FindByID(id uint) (*model.Teacher, error) {
	var t model.Teacher
	err := r.DB.Preload("Branch").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) FindByEmail(email string) (*model.Teacher, error) {
	var t model.Teacher
	err := r.DB.Where("email = ?", email).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) List() ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.DB.Preload("Branch").Order("last_name asc, first_name asc").Find(&teachers).Error
	return teachers, err
}

func (r *TeacherRepository) Update(teacher *model.Teacher) error {
	return r.DB.Save(teacher).Error
}

func (r *TeacherRepository) UpdateProfileImage(id uint, url, filename string) error {
	return r.DB.Model(&model.Teacher{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"profile_image_url":      url,
			"profile_image_filename": filename,
		}).Error
}

func (r *TeacherRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Teacher{}, id).Error
}
