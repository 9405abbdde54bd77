package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService owns exam authoring and the teacher-facing result views.
type ExamService struct {
	exams     ExamStore
	responses ExamResponseStore
	students  StudentDirectory
	logger    *zap.Logger
	now       func() time.Time
}

func NewExamService(exams ExamStore, responses ExamResponseStore, students StudentDirectory, logger *zap.Logger) *ExamService {
	return &ExamService{exams: exams, responses: responses, students: students, logger: logger, now: time.Now}
}

type QuestionOptionReq struct {
	ID        string `json:"id"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type ExamQuestionReq struct {
	Text          string              `json:"text" binding:"required"`
	Type          model.QuestionType  `json:"type" binding:"required"`
	Points        int                 `json:"points" binding:"required"`
	Options       []QuestionOptionReq `json:"options"`
	CorrectAnswer string              `json:"correctAnswer"`
	ImageURL      string              `json:"imageUrl"`
}

type ExamReq struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Branch      string              `json:"branch" binding:"required"`
	ClassLevel  string              `json:"classLevel" binding:"required"`
	Section     string              `json:"section" binding:"required"`
	ExamDate    time.Time           `json:"examDate" binding:"required"`
	DueDate     time.Time           `json:"dueDate" binding:"required"`
	Duration    int                 `json:"duration" binding:"required"`
	IsActive    *bool               `json:"isActive"`
	Settings    *model.ExamSettings `json:"settings"`
	Questions   []ExamQuestionReq   `json:"questions" binding:"required"`
}

func validateExamReq(req *ExamReq) error {
	if req.Duration < 5 || req.Duration > 180 {
		return fmt.Errorf("%w: duration must be between 5 and 180 minutes", util.ErrValidation)
	}
	if !req.DueDate.After(req.ExamDate) {
		return fmt.Errorf("%w: due date must be after the exam date", util.ErrValidation)
	}
	if len(req.Questions) == 0 {
		return fmt.Errorf("%w: exam needs at least one question", util.ErrValidation)
	}
	for i, q := range req.Questions {
		if q.Points < 1 || q.Points > 100 {
			return fmt.Errorf("%w: question %d: points must be between 1 and 100", util.ErrValidation, i+1)
		}
		switch q.Type {
		case model.QuestionMultipleChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: question %d: multiple choice needs at least two options", util.ErrValidation, i+1)
			}
			correct := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct == 0 {
				return fmt.Errorf("%w: question %d: no option is marked correct", util.ErrValidation, i+1)
			}
		case model.QuestionOpenEnded:
			// reference answer is optional, grading is manual anyway
		case model.QuestionImageBased:
			if q.ImageURL == "" {
				return fmt.Errorf("%w: question %d: image question needs an image url", util.ErrValidation, i+1)
			}
		default:
			return fmt.Errorf("%w: question %d: unknown question type %q", util.ErrValidation, i+1, q.Type)
		}
	}
	return nil
}

// buildQuestions turns request questions into bank rows, assigning sequential
// option ids (a, b, c, ...) where the client left them empty.
func buildQuestions(reqs []ExamQuestionReq) ([]model.ExamQuestion, error) {
	questions := make([]model.ExamQuestion, 0, len(reqs))
	for i, qr := range reqs {
		q := model.ExamQuestion{
			Order:         i,
			Text:          qr.Text,
			Type:          qr.Type,
			Points:        qr.Points,
			CorrectAnswer: qr.CorrectAnswer,
			ImageURL:      qr.ImageURL,
		}
		if len(qr.Options) > 0 {
			opts := make([]model.QuestionOption, len(qr.Options))
			for j, or := range qr.Options {
				id := or.ID
				if id == "" {
					id = string(rune('a' + j))
				}
				opts[j] = model.QuestionOption{ID: id, Text: or.Text, IsCorrect: or.IsCorrect}
			}
			raw, err := json.Marshal(opts)
			if err != nil {
				return nil, err
			}
			q.Options = raw
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *ExamService) Create(teacherID uint, req *ExamReq) (*model.Exam, error) {
	if err := validateExamReq(req); err != nil {
		return nil, err
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
		Branch:      req.Branch,
		ClassLevel:  req.ClassLevel,
		Section:     req.Section,
		ExamDate:    req.ExamDate,
		DueDate:     req.DueDate,
		Duration:    req.Duration,
		TotalPoints: model.ComputeTotalPoints(questions),
		IsActive:    true,
		Settings:    model.ExamSettings{PassingScore: 50, ShowResults: true},
		Questions:   questions,
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if req.Settings != nil {
		exam.Settings = *req.Settings
	}

	if err := s.exams.Create(exam); err != nil {
		return nil, err
	}
	s.logger.Info("exam created",
		zap.String("examId", exam.ID),
		zap.Uint("teacherId", teacherID),
		zap.Int("questions", len(exam.Questions)))
	return exam, nil
}

func (s *ExamService) GetByID(id string) (*model.Exam, error) {
	exam, err := s.exams.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	return s.exams.ListByTeacher(teacherID)
}

// StudentExamView is an exam as the student list shows it, annotated with the
// student's own attempt state.
type StudentExamView struct {
	model.Exam
	StudentStatus string   `json:"studentStatus"` // not_started, started, submitted, graded
	StudentScore  *int     `json:"studentScore,omitempty"`
	Percentage    *float64 `json:"studentPercentage,omitempty"`
}

// ListForStudent returns the active, not yet due exams of the student's class,
// each annotated with the latest attempt status and, once graded, the score.
func (s *ExamService) ListForStudent(studentID uint) ([]StudentExamView, error) {
	student, err := s.students.FindByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	exams, err := s.exams.ListForClass(student.ClassLevel, student.Section, s.now())
	if err != nil {
		return nil, err
	}
	attempts, err := s.responses.ListByStudent(studentID, nil)
	if err != nil {
		return nil, err
	}

	// Newest attempt per exam; ListByStudent returns newest first.
	latest := make(map[string]*model.ExamResponse, len(attempts))
	for i := range attempts {
		if _, ok := latest[attempts[i].ExamID]; !ok {
			latest[attempts[i].ExamID] = &attempts[i]
		}
	}

	views := make([]StudentExamView, 0, len(exams))
	for _, exam := range exams {
		view := StudentExamView{Exam: exam, StudentStatus: "not_started"}
		if resp, ok := latest[exam.ID]; ok {
			view.StudentStatus = string(resp.Status)
			if resp.Status == model.ResponseGraded {
				score, pct := resp.Score, resp.Percentage
				view.StudentScore = &score
				view.Percentage = &pct
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Update replaces the exam and its question bank. Exams with at least one
// attempt are immutable, question ids referenced by answers must stay valid.
func (s *ExamService) Update(examID string, teacherID uint, req *ExamReq) (*model.Exam, error) {
	exam, err := s.GetByID(examID)
	if err != nil {
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}
	has, err := s.exams.HasResponses(examID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, util.ErrExamHasResponses
	}
	if err := validateExamReq(req); err != nil {
		return nil, err
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].ExamID = exam.ID
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.Branch = req.Branch
	exam.ClassLevel = req.ClassLevel
	exam.Section = req.Section
	exam.ExamDate = req.ExamDate
	exam.DueDate = req.DueDate
	exam.Duration = req.Duration
	exam.TotalPoints = model.ComputeTotalPoints(questions)
	exam.Questions = questions
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if req.Settings != nil {
		exam.Settings = *req.Settings
	}

	if err := s.exams.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Delete(examID string, teacherID uint) error {
	exam, err := s.GetByID(examID)
	if err != nil {
		return err
	}
	if exam.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	has, err := s.exams.HasResponses(examID)
	if err != nil {
		return err
	}
	if has {
		return util.ErrExamHasResponses
	}
	return s.exams.Delete(examID)
}

// QuestionStat is the per-question share of correct answers among graded and
// submitted attempts.
type QuestionStat struct {
	QuestionID  string             `json:"questionId"`
	Text        string             `json:"text"`
	Type        model.QuestionType `json:"type"`
	Points      int                `json:"points"`
	Answered    int                `json:"answered"`
	Correct     int                `json:"correct"`
	CorrectRate float64            `json:"correctRate"` // 0 when nobody answered
}

type ExamStats struct {
	TotalResponses int            `json:"totalResponses"`
	Submitted      int            `json:"submitted"`
	Graded         int            `json:"graded"`
	AverageScore   float64        `json:"averageScore"`
	HighestScore   int            `json:"highestScore"`
	LowestScore    int            `json:"lowestScore"`
	PassCount      int            `json:"passCount"`
	PassRate       float64        `json:"passRate"`
	Questions      []QuestionStat `json:"questions"`
}

type ExamResultsView struct {
	Exam      *model.Exam          `json:"exam"`
	Responses []model.ExamResponse `json:"responses"`
	Stats     ExamStats            `json:"stats"`
}

// Results returns every attempt at the exam, highest score first, together
// with aggregate and per-question statistics. Only the owning teacher may see
// them. Attempts still in progress are listed but excluded from the stats.
func (s *ExamService) Results(examID string, teacherID uint) (*ExamResultsView, error) {
	exam, err := s.GetByID(examID)
	if err != nil {
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	responses, err := s.responses.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	stats := ExamStats{TotalResponses: len(responses)}
	scoreSum := 0
	finished := 0
	for i := range responses {
		r := &responses[i]
		switch r.Status {
		case model.ResponseSubmitted:
			stats.Submitted++
		case model.ResponseGraded:
			stats.Graded++
		default:
			continue
		}
		finished++
		scoreSum += r.Score
		if finished == 1 || r.Score > stats.HighestScore {
			stats.HighestScore = r.Score
		}
		if finished == 1 || r.Score < stats.LowestScore {
			stats.LowestScore = r.Score
		}
		if r.Passed {
			stats.PassCount++
		}
	}
	if finished > 0 {
		stats.AverageScore = math.Round(float64(scoreSum)/float64(finished)*100) / 100
		stats.PassRate = math.Round(float64(stats.PassCount)/float64(finished)*10000) / 100
	}

	stats.Questions = questionStats(exam.Questions, responses)

	return &ExamResultsView{Exam: exam, Responses: responses, Stats: stats}, nil
}

func questionStats(questions []model.ExamQuestion, responses []model.ExamResponse) []QuestionStat {
	stats := make([]QuestionStat, len(questions))
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		stats[i] = QuestionStat{QuestionID: q.ID, Text: q.Text, Type: q.Type, Points: q.Points}
		index[q.ID] = i
	}

	for i := range responses {
		r := &responses[i]
		if r.Status != model.ResponseSubmitted && r.Status != model.ResponseGraded {
			continue
		}
		for j := range r.Answers {
			a := &r.Answers[j]
			pos, ok := index[a.QuestionID]
			if !ok {
				continue
			}
			stats[pos].Answered++
			if a.IsCorrect != nil && *a.IsCorrect {
				stats[pos].Correct++
			}
		}
	}

	for i := range stats {
		if stats[i].Answered > 0 {
			stats[i].CorrectRate = math.Round(float64(stats[i].Correct)/float64(stats[i].Answered)*10000) / 100
		}
	}
	return stats
}
