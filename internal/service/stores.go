package service

import (
	"time"

	"school_backend/internal/model"
)

// Storage contracts of the exam subsystem. The gorm repositories satisfy
// them; tests swap in in-memory fakes.

type ExamStore interface {
	Create(exam *model.Exam) error
	FindByID(id string) (*model.Exam, error)
	ListByTeacher(teacherID uint) ([]model.Exam, error)
	ListForClass(classLevel, section string, now time.Time) ([]model.Exam, error)
	Update(exam *model.Exam) error
	Delete(id string) error
	HasResponses(examID string) (bool, error)
}

type ExamResponseStore interface {
	Create(response *model.ExamResponse) error
	FindByID(id string) (*model.ExamResponse, error)
	FindLatestByExamAndStudent(examID string, studentID uint) (*model.ExamResponse, error)
	ListByExam(examID string) ([]model.ExamResponse, error)
	ListByStudent(studentID uint, statuses []model.ResponseStatus) ([]model.ExamResponse, error)
	UpsertAnswer(answer *model.ExamAnswer) error
	Save(response *model.ExamResponse) error
}

type StudentDirectory interface {
	FindByID(id uint) (*model.Student, error)
}
