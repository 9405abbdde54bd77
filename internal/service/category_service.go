package service

import (
	"errors"
	"fmt"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryReq struct {
	Name string `json:"name" binding:"required"`
}

func (s *CategoryService) Create(req *CategoryReq) (*model.Category, error) {
	if _, err := s.repo.FindByName(req.Name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", util.ErrValidation, req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{Name: req.Name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.repo.List()
}

func (s *CategoryService) GetByID(id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}
