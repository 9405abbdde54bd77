package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// Create stores the lesson and enrolls the given students in one transaction.
func (r *LessonRepository) Create(lesson *model.Lesson, students []model.Student) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
		if len(students) > 0 {
			if err := tx.Model(lesson).Association("Students").Append(students); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.
		Preload("Teacher").
		Preload("Category").
		Preload("Students").
		Preload("Topics").
		First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LessonRepository) List() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Preload("Teacher").
		Preload("Category").
		Order("created_at desc").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByTeacher(teacherID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Preload("Category").
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func (r *LessonRepository) CreateTopic(topic *model.LessonTopic) error {
	return r.DB.Create(topic).Error
}

func (r *LessonRepository) ListTopics(lessonID uint) ([]model.LessonTopic, error) {
	var topics []model.LessonTopic
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at asc").Find(&topics).Error
	return topics, err
}
