package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	err := r.DB.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) FindByEmail(email string) (*model.Student, error) {
	var s model.Student
	err := r.DB.Where("email = ?", email).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) List() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Order("last_name asc, first_name asc").Find(&students).Error
	return students, err
}

func (r *StudentRepository) ListByClass(classLevel, section string) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("class_level = ? AND section = ?", classLevel, section).Find(&students).Error
	return students, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Student{}, id).Error
}
