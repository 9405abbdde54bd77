package service

import (
	"errors"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonService manages lessons and their topics. Creating a lesson enrolls
// every student of the matching class and section.
type LessonService struct {
	lessons    *repository.LessonRepository
	students   *repository.StudentRepository
	categories *repository.CategoryRepository
	logger     *zap.Logger
}

func NewLessonService(lessons *repository.LessonRepository, students *repository.StudentRepository, categories *repository.CategoryRepository, logger *zap.Logger) *LessonService {
	return &LessonService{lessons: lessons, students: students, categories: categories, logger: logger}
}

// LessonReq binds from multipart form data so the attachment can ride along.
type LessonReq struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Grade       string `form:"grade" json:"grade" binding:"required"`
	Section     string `form:"section" json:"section" binding:"required"`
	CategoryID  uint   `form:"categoryId" json:"categoryId" binding:"required"`
	Note        string `form:"note" json:"note"`
}

// LessonFile carries the metadata of an already-uploaded attachment.
type LessonFile struct {
	URL  string
	Name string
	Type string
	Size int64
}

func (s *LessonService) Create(teacherID uint, req *LessonReq, file *LessonFile) (*model.Lesson, error) {
	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
		Grade:       req.Grade,
		Section:     req.Section,
		CategoryID:  req.CategoryID,
		Note:        req.Note,
	}
	if file != nil {
		lesson.FileURL = file.URL
		lesson.FileName = file.Name
		lesson.FileType = file.Type
		lesson.FileSize = file.Size
	}

	enrolled, err := s.students.ListByClass(req.Grade, req.Section)
	if err != nil {
		return nil, err
	}
	if err := s.lessons.Create(lesson, enrolled); err != nil {
		return nil, err
	}
	s.logger.Info("lesson created",
		zap.Uint("lessonId", lesson.ID),
		zap.Uint("teacherId", teacherID),
		zap.Int("enrolled", len(enrolled)))
	return lesson, nil
}

func (s *LessonService) List() ([]model.Lesson, error) {
	return s.lessons.List()
}

func (s *LessonService) ListByTeacher(teacherID uint) ([]model.Lesson, error) {
	return s.lessons.ListByTeacher(teacherID)
}

func (s *LessonService) GetByID(id uint) (*model.Lesson, error) {
	lesson, err := s.lessons.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

type LessonUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Note        *string `json:"note"`
}

func (s *LessonService) Update(id, teacherID uint, req *LessonUpdateReq) (*model.Lesson, error) {
	lesson, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lesson.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Note != nil {
		lesson.Note = *req.Note
	}
	if err := s.lessons.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Delete removes the lesson and returns the name of its stored attachment, if
// any, so the caller can delete the file too.
func (s *LessonService) Delete(id, teacherID uint) (string, error) {
	lesson, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	if lesson.TeacherID != teacherID {
		return "", util.ErrPermissionDenied
	}
	if err := s.lessons.Delete(id); err != nil {
		return "", err
	}
	return lesson.FileName, nil
}

type LessonTopicReq struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	TeacherNotes string `json:"teacherNotes"`
}

func (s *LessonService) AddTopic(lessonID, teacherID uint, req *LessonTopicReq) (*model.LessonTopic, error) {
	lesson, err := s.GetByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	topic := &model.LessonTopic{
		LessonID:     lessonID,
		Title:        req.Title,
		Description:  req.Description,
		TeacherNotes: req.TeacherNotes,
	}
	if err := s.lessons.CreateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *LessonService) ListTopics(lessonID uint) ([]model.LessonTopic, error) {
	if _, err := s.GetByID(lessonID); err != nil {
		return nil, err
	}
	return s.lessons.ListTopics(lessonID)
}
