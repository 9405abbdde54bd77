package service

import (
	"errors"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	assignments *repository.AssignmentRepository
	categories  *repository.CategoryRepository
}

func NewAssignmentService(assignments *repository.AssignmentRepository, categories *repository.CategoryRepository) *AssignmentService {
	return &AssignmentService{assignments: assignments, categories: categories}
}

type AssignmentReq struct {
	Title       string    `json:"title" binding:"required"`
	ClassLevel  string    `json:"classLevel" binding:"required"`
	Section     string    `json:"section" binding:"required"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Description string    `json:"description" binding:"required"`
	CategoryID  uint      `json:"categoryId" binding:"required"`
}

func (s *AssignmentService) Create(teacherID uint, req *AssignmentReq) (*model.Assignment, error) {
	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	assignment := &model.Assignment{
		Title:       req.Title,
		ClassLevel:  req.ClassLevel,
		Section:     req.Section,
		DueDate:     req.DueDate,
		Description: req.Description,
		TeacherID:   teacherID,
		CategoryID:  req.CategoryID,
	}
	if err := s.assignments.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// List filters by any combination of teacher, class level and section; zero
// values mean no filter.
func (s *AssignmentService) List(teacherID uint, classLevel, section string) ([]model.Assignment, error) {
	return s.assignments.List(teacherID, classLevel, section)
}

func (s *AssignmentService) GetByID(id uint) (*model.Assignment, error) {
	assignment, err := s.assignments.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Update(id, teacherID uint, req *AssignmentReq) (*model.Assignment, error) {
	assignment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assignment.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	assignment.Title = req.Title
	assignment.ClassLevel = req.ClassLevel
	assignment.Section = req.Section
	assignment.DueDate = req.DueDate
	assignment.Description = req.Description
	assignment.CategoryID = req.CategoryID
	if err := s.assignments.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(id, teacherID uint) error {
	assignment, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if assignment.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.assignments.Delete(id)
}
