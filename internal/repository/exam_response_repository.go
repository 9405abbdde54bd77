package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type ExamResponseRepository struct {
	DB *gorm.DB
}

func NewExamResponseRepository(db *gorm.DB) *ExamResponseRepository {
	return &ExamResponseRepository{DB: db}
}

func (r *ExamResponseRepository) Create(response *model.ExamResponse) error {
	return r.DB.Create(response).Error
}

func (r *ExamResponseRepository) FindByID(id string) (*model.ExamResponse, error) {
	var resp model.ExamResponse
	err := r.DB.
		Preload("Answers").
		Where("id = ?", id).
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindLatestByExamAndStudent returns the student's most recent attempt at the
// exam, or gorm.ErrRecordNotFound.
func (r *ExamResponseRepository) FindLatestByExamAndStudent(examID string, studentID uint) (*model.ExamResponse, error) {
	var resp model.ExamResponse
	err := r.DB.
		Preload("Answers").
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Order("attempt_no desc").
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ExamResponseRepository) ListByExam(examID string) ([]model.ExamResponse, error) {
	var responses []model.ExamResponse
	err := r.DB.
		Preload("Student").
		Preload("Answers").
		Where("exam_id = ?", examID).
		Order("score desc").
		Find(&responses).Error
	return responses, err
}

func (r *ExamResponseRepository) ListByStudent(studentID uint, statuses []model.ResponseStatus) ([]model.ExamResponse, error) {
	var responses []model.ExamResponse
	query := r.DB.
		Preload("Exam").
		Where("student_id = ?", studentID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at desc").Find(&responses).Error
	return responses, err
}

// UpsertAnswer replaces the answer for (response, question) or inserts it.
func (r *ExamResponseRepository) UpsertAnswer(answer *model.ExamAnswer) error {
	var existing model.ExamAnswer
	err := r.DB.
		Where("response_id = ? AND question_id = ?", answer.ResponseID, answer.QuestionID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(answer).Error
	}
	if err != nil {
		return err
	}
	answer.UUIDBase = existing.UUIDBase
	return r.DB.Save(answer).Error
}

// Save persists the response row and all of its answers in one transaction so
// a submit or grade either fully applies or not at all.
func (r *ExamResponseRepository) Save(response *model.ExamResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers", "Exam", "Student").Save(response).Error; err != nil {
			return err
		}
		for i := range response.Answers {
			if err := tx.Save(&response.Answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
