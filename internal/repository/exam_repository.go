package repository

import (
	"time"

	"school_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// Create stores the exam together with its question bank.
func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var e model.Exam
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, created_at asc")
		}).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExamRepository) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc")
		}).
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&exams).Error
	return exams, err
}

// ListForClass returns active exams for the class/section whose due date has
// not passed, ordered by exam date.
func (r *ExamRepository) ListForClass(classLevel, section string, now time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Where("class_level = ? AND section = ? AND is_active = ? AND due_date >= ?", classLevel, section, true, now).
		Order("exam_date asc").
		Find(&exams).Error
	return exams, err
}

// Update replaces the exam row and its question bank in one transaction.
func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", exam.ID).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(exam).Error
	})
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Exam{}).Error
	})
}

// HasResponses reports whether any attempt references the exam; such exams
// are immutable.
func (r *ExamRepository) HasResponses(examID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamResponse{}).Where("exam_id = ?", examID).Count(&count).Error
	return count > 0, err
}
