package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type ParentRepository struct {
	DB *gorm.DB
}

func NewParentRepository(db *gorm.DB) *ParentRepository {
	return &ParentRepository{DB: db}
}

func (r *ParentRepository) Create(parent *model.Parent) error {
	return r.DB.Create(parent).Error
}

func (r *ParentRepository) FindByID(id uint) (*model.Parent, error) {
	var p model.Parent
	err := r.DB.Preload("Students").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParentRepository) FindByEmail(email string) (*model.Parent, error) {
	var p model.Parent
	err := r.DB.Where("email = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParentRepository) List() ([]model.Parent, error) {
	var parents []model.Parent
	err := r.DB.Preload("Students").Order("last_name asc, first_name asc").Find(&parents).Error
	return parents, err
}

func (r *ParentRepository) Update(parent *model.Parent) error {
	return r.DB.Save(parent).Error
}

func (r *ParentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Parent{}, id).Error
}
