package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.Preload("Teacher").Preload("Category").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) List(teacherID uint, classLevel, section string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	query := r.DB.Preload("Teacher").Preload("Category")
	if teacherID > 0 {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if classLevel != "" {
		query = query.Where("class_level = ?", classLevel)
	}
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Order("due_date asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assignment{}, id).Error
}
