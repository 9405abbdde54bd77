package model

import "time"

type ResponseStatus string

// Response status moves strictly forward: started -> submitted -> graded.
const (
	ResponseStarted   ResponseStatus = "started"
	ResponseSubmitted ResponseStatus = "submitted"
	ResponseGraded    ResponseStatus = "graded"
)

// ExamResponse is one student's attempt at an exam. The unique index on
// (exam_id, student_id, attempt_no) closes the concurrent-start race: when
// retakes are disallowed every start writes attempt_no = 1, so a racing
// duplicate fails the insert instead of creating a second attempt.
// swagger:model ExamResponse
type ExamResponse struct {
	UUIDBase
	ExamID    string   `gorm:"type:varchar(36);not null;uniqueIndex:idx_exam_student_attempt" json:"examId"`
	Exam      *Exam    `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	StudentID uint     `gorm:"not null;uniqueIndex:idx_exam_student_attempt" json:"studentId"`
	Student   *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	AttemptNo int      `gorm:"not null;default:1;uniqueIndex:idx_exam_student_attempt" json:"attemptNo"`

	StartedAt      time.Time  `gorm:"not null" json:"startedAt"`
	EndTime        *time.Time `json:"endTime,omitempty"` // startedAt + exam duration
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CompletionTime int        `gorm:"default:0" json:"completionTime"` // minutes

	Status     ResponseStatus `gorm:"size:20;not null;default:'started'" json:"status"`
	Score      int            `gorm:"default:0" json:"score"`
	MaxScore   int            `gorm:"default:0" json:"maxScore"`
	Percentage float64        `gorm:"default:0" json:"percentage"`
	Passed     bool           `gorm:"default:false" json:"passed"`

	GradedBy *uint      `json:"gradedBy,omitempty"`
	GradedAt *time.Time `json:"gradedAt,omitempty"`

	Answers []ExamAnswer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
}

func (ExamResponse) TableName() string {
	return "exam_responses"
}

// ExamAnswer is one answer within a response, keyed by the question id. Nil
// IsCorrect/Points mean the answer is unresolved and awaits manual grading;
// unresolved answers never contribute to the aggregate score.
// swagger:model ExamAnswer
type ExamAnswer struct {
	UUIDBase
	ResponseID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_response_question" json:"responseId"`
	QuestionID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_response_question" json:"questionId"`

	SelectedOption string `gorm:"size:36" json:"selectedOption,omitempty"`
	TextAnswer     string `gorm:"type:text" json:"textAnswer,omitempty"`
	ImageAnswer    string `gorm:"size:255" json:"imageAnswer,omitempty"`

	IsCorrect *bool  `json:"isCorrect,omitempty"`
	Points    *int   `json:"points,omitempty"`
	Feedback  string `gorm:"type:text" json:"feedback,omitempty"`
	IsGraded  bool   `gorm:"default:false" json:"isGraded"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}

// Resolved reports whether the answer carries final correctness and points.
func (a *ExamAnswer) Resolved() bool {
	return a.IsCorrect != nil && a.Points != nil
}
