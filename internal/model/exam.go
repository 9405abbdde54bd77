package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionOpenEnded      QuestionType = "open_ended"
	QuestionImageBased     QuestionType = "image_based"
)

// QuestionOption is one selectable choice of a multiple-choice question,
// stored as JSON on the question row.
type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// swagger:model Exam
type Exam struct {
	UUIDBase
	TeacherID   uint         `gorm:"index;not null" json:"teacherId"`
	Teacher     *Teacher     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Branch      string       `gorm:"size:100;not null" json:"branch"`
	ClassLevel  string       `gorm:"size:10;not null" json:"classLevel"`
	Section     string       `gorm:"size:10;not null" json:"section"`
	ExamDate    time.Time    `gorm:"not null" json:"examDate"`
	DueDate     time.Time    `gorm:"not null" json:"dueDate"` // no attempt may start after this
	Duration    int          `gorm:"not null" json:"duration"` // minutes, 5-180
	TotalPoints int          `gorm:"default:0" json:"totalPoints"`
	IsActive    bool         `gorm:"default:true" json:"isActive"`
	Settings    ExamSettings `gorm:"embedded;embeddedPrefix:setting_" json:"settings"`

	Questions []ExamQuestion `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

type ExamSettings struct {
	RandomizeQuestions bool `json:"randomizeQuestions"`
	PassingScore       int  `gorm:"default:50" json:"passingScore"`
	ShowResults        bool `gorm:"default:true" json:"showResults"`
	AllowRetake        bool `json:"allowRetake"`
}

// ExamQuestion is one entry of an exam's question bank. Its id is the join key
// answers reference, so it stays stable for the exam's lifetime; the bank is
// never reordered once a response exists.
// swagger:model ExamQuestion
type ExamQuestion struct {
	UUIDBase
	ExamID        string          `gorm:"index;type:varchar(36);not null" json:"examId"`
	Order         int             `gorm:"default:0" json:"order"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Type          QuestionType    `gorm:"size:30;not null" json:"type"`
	Points        int             `gorm:"not null" json:"points"` // 1-100
	Options       json.RawMessage `gorm:"type:json" json:"options,omitempty"`       // []QuestionOption, multiple choice
	CorrectAnswer string          `gorm:"type:text" json:"correctAnswer,omitempty"` // reference text, open ended
	ImageURL      string          `gorm:"size:255" json:"imageUrl,omitempty"`       // image based
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// DecodeOptions unmarshals the JSON option list. Nil for question types
// without options.
func (q *ExamQuestion) DecodeOptions() ([]QuestionOption, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []QuestionOption
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// ComputeTotalPoints sums the point values of a question bank.
func ComputeTotalPoints(questions []ExamQuestion) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
