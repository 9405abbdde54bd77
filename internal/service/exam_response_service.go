package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/scoring"
	"school_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamResponseService drives the attempt lifecycle: start, answer, submit and
// the teacher's manual grading pass.
type ExamResponseService struct {
	exams     ExamStore
	responses ExamResponseStore
	students  StudentDirectory
	logger    *zap.Logger
	now       func() time.Time
}

func NewExamResponseService(exams ExamStore, responses ExamResponseStore, students StudentDirectory, logger *zap.Logger) *ExamResponseService {
	return &ExamResponseService{
		exams:     exams,
		responses: responses,
		students:  students,
		logger:    logger,
		now:       time.Now,
	}
}

// StartResult is what the student receives when an attempt begins or resumes.
// Exam carries the question payload in display order, stripped of answer keys
// unless the exam shows results.
type StartResult struct {
	Response         *model.ExamResponse `json:"response"`
	Exam             *model.Exam         `json:"exam"`
	Resumed          bool                `json:"resumed"`
	RemainingSeconds int                 `json:"remainingSeconds"`
}

// Start begins a new attempt or resumes the student's running one. Starting
// twice never creates a second attempt unless the exam allows retakes and the
// previous attempt is finished.
func (s *ExamResponseService) Start(examID string, studentID uint) (*StartResult, error) {
	exam, err := s.findExam(examID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !exam.IsActive {
		return nil, util.ErrExamNotActive
	}
	if now.After(exam.DueDate) {
		return nil, util.ErrExamPastDue
	}

	student, err := s.students.FindByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.ClassLevel != exam.ClassLevel || student.Section != exam.Section {
		return nil, util.ErrExamNotForClass
	}

	attemptNo := 1
	latest, err := s.responses.FindLatestByExamAndStudent(examID, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if latest != nil {
		if latest.Status == model.ResponseStarted {
			return &StartResult{
				Response:         latest,
				Exam:             displayExam(exam),
				Resumed:          true,
				RemainingSeconds: remainingSeconds(latest, now),
			}, nil
		}
		if !exam.Settings.AllowRetake {
			return nil, util.ErrAlreadySubmitted
		}
		attemptNo = latest.AttemptNo + 1
	}

	endTime := now.Add(time.Duration(exam.Duration) * time.Minute)
	response := &model.ExamResponse{
		ExamID:    examID,
		StudentID: studentID,
		AttemptNo: attemptNo,
		StartedAt: now,
		EndTime:   &endTime,
		Status:    model.ResponseStarted,
	}
	if err := s.responses.Create(response); err != nil {
		return nil, err
	}
	s.logger.Info("exam attempt started",
		zap.String("examId", examID),
		zap.Uint("studentId", studentID),
		zap.Int("attemptNo", attemptNo))

	return &StartResult{
		Response:         response,
		Exam:             displayExam(exam),
		RemainingSeconds: remainingSeconds(response, now),
	}, nil
}

func remainingSeconds(r *model.ExamResponse, now time.Time) int {
	if r.EndTime == nil {
		return 0
	}
	left := int(r.EndTime.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// displayExam returns a copy of the exam prepared for the taking student:
// questions shuffled when the exam randomizes and stripped of answer keys when
// results are hidden. The stored exam is never touched.
func displayExam(exam *model.Exam) *model.Exam {
	view := *exam
	view.Questions = make([]model.ExamQuestion, len(exam.Questions))
	copy(view.Questions, exam.Questions)

	if exam.Settings.RandomizeQuestions {
		rand.Shuffle(len(view.Questions), func(i, j int) {
			view.Questions[i], view.Questions[j] = view.Questions[j], view.Questions[i]
		})
	}
	if !exam.Settings.ShowResults {
		for i := range view.Questions {
			view.Questions[i] = stripAnswerKey(view.Questions[i])
		}
	}
	return &view
}

func stripAnswerKey(q model.ExamQuestion) model.ExamQuestion {
	q.CorrectAnswer = ""
	opts, err := q.DecodeOptions()
	if err != nil || opts == nil {
		return q
	}
	for i := range opts {
		opts[i].IsCorrect = false
	}
	if raw, err := json.Marshal(opts); err == nil {
		q.Options = raw
	}
	return q
}

type AnswerReq struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedOption string `json:"selectedOption"`
	TextAnswer     string `json:"textAnswer"`
	ImageAnswer    string `json:"imageAnswer"`
}

// Answer records or replaces the student's answer to one question. Auto
// gradable questions are resolved immediately so a later submit only has to
// aggregate.
func (s *ExamResponseService) Answer(responseID string, studentID uint, req *AnswerReq) (*model.ExamAnswer, error) {
	response, err := s.findResponse(responseID)
	if err != nil {
		return nil, err
	}
	if response.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	if response.Status != model.ResponseStarted {
		return nil, util.ErrResponseNotStarted
	}
	now := s.now()
	if response.EndTime != nil && now.After(*response.EndTime) {
		return nil, util.ErrTimeExpired
	}

	exam, err := s.findExam(response.ExamID)
	if err != nil {
		return nil, err
	}
	var question *model.ExamQuestion
	for i := range exam.Questions {
		if exam.Questions[i].ID == req.QuestionID {
			question = &exam.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, util.ErrQuestionNotFound
	}

	answer := &model.ExamAnswer{
		ResponseID:     responseID,
		QuestionID:     req.QuestionID,
		SelectedOption: req.SelectedOption,
		TextAnswer:     req.TextAnswer,
		ImageAnswer:    req.ImageAnswer,
	}
	if res := scoring.ResolveAnswer(question, answer); res.Resolved {
		answer.IsCorrect = &res.Correct
		answer.Points = &res.Points
	}

	if err := s.responses.UpsertAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// SubmitResult summarizes a finished attempt. Score covers auto-graded
// answers only until a teacher resolves the rest.
type SubmitResult struct {
	Response           *model.ExamResponse `json:"response"`
	Score              int                 `json:"score"`
	TotalPossibleScore int                 `json:"totalPossibleScore"`
	Percentage         float64             `json:"percentage"`
	Passed             bool                `json:"passed"`
	NeedsGrading       bool                `json:"needsGrading"`
	CompletionTime     int                 `json:"completionTime"` // minutes
}

// Submit finalizes the attempt: resolves every auto-gradable answer, sums the
// resolved points against the full question bank and freezes the response.
func (s *ExamResponseService) Submit(responseID string, studentID uint) (*SubmitResult, error) {
	response, err := s.findResponse(responseID)
	if err != nil {
		return nil, err
	}
	if response.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	if response.Status != model.ResponseStarted {
		return nil, util.ErrAlreadySubmitted
	}

	exam, err := s.findExam(response.ExamID)
	if err != nil {
		return nil, err
	}

	summary := scoring.Evaluate(exam.Questions, response.Answers, exam.Settings.PassingScore)
	applyResolutions(response.Answers, summary.PerAnswer)

	now := s.now()
	response.CompletedAt = &now
	response.CompletionTime = completionMinutes(response.StartedAt, now)
	response.Status = model.ResponseSubmitted
	response.Score = summary.Score
	response.MaxScore = summary.MaxScore
	response.Percentage = summary.Percentage
	response.Passed = summary.Passed

	if err := s.responses.Save(response); err != nil {
		return nil, err
	}
	s.logger.Info("exam attempt submitted",
		zap.String("responseId", response.ID),
		zap.Int("score", summary.Score),
		zap.Bool("needsGrading", summary.NeedsGrading))

	return &SubmitResult{
		Response:           response,
		Score:              summary.Score,
		TotalPossibleScore: summary.MaxScore,
		Percentage:         summary.Percentage,
		Passed:             summary.Passed,
		NeedsGrading:       summary.NeedsGrading,
		CompletionTime:     response.CompletionTime,
	}, nil
}

func applyResolutions(answers []model.ExamAnswer, resolutions map[string]scoring.Resolution) {
	for i := range answers {
		res, ok := resolutions[answers[i].QuestionID]
		if !ok || !res.Resolved {
			continue
		}
		correct, points := res.Correct, res.Points
		answers[i].IsCorrect = &correct
		answers[i].Points = &points
	}
}

func completionMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}

// GetForUser returns the response with its exam for the owning student or the
// teacher who owns the exam; anyone else is refused.
func (s *ExamResponseService) GetForUser(responseID string, userID uint, role model.UserRole) (*model.ExamResponse, *model.Exam, error) {
	response, err := s.findResponse(responseID)
	if err != nil {
		return nil, nil, err
	}
	exam, err := s.findExam(response.ExamID)
	if err != nil {
		return nil, nil, err
	}
	switch role {
	case model.RoleStudent:
		if response.StudentID != userID {
			return nil, nil, util.ErrPermissionDenied
		}
	case model.RoleTeacher:
		if exam.TeacherID != userID {
			return nil, nil, util.ErrPermissionDenied
		}
	default:
		return nil, nil, util.ErrPermissionDenied
	}
	return response, exam, nil
}

// ListForStudent returns the student's finished attempts, newest first.
func (s *ExamResponseService) ListForStudent(studentID uint) ([]model.ExamResponse, error) {
	return s.responses.ListByStudent(studentID, []model.ResponseStatus{model.ResponseSubmitted, model.ResponseGraded})
}

type QuestionGrade struct {
	QuestionID string `json:"questionId" binding:"required"`
	Points     int    `json:"points"`
	Feedback   string `json:"feedback"`
}

type GradeReq struct {
	Grades []QuestionGrade `json:"grades" binding:"required"`
}

type GradeResult struct {
	Response           *model.ExamResponse `json:"response"`
	Score              int                 `json:"score"`
	TotalPossibleScore int                 `json:"totalPossibleScore"`
	Percentage         float64             `json:"percentage"`
	Passed             bool                `json:"passed"`
}

// Grade applies the teacher's points to manually graded answers and
// recomputes the aggregate. Points are clamped to [0, question points],
// correctness means any points at all. Entries that name an unknown question,
// an auto-graded question or an unanswered one are skipped; if nothing
// matches the call fails.
func (s *ExamResponseService) Grade(responseID string, teacherID uint, req *GradeReq) (*GradeResult, error) {
	response, err := s.findResponse(responseID)
	if err != nil {
		return nil, err
	}
	if response.Status == model.ResponseStarted {
		return nil, util.ErrNotYetSubmitted
	}

	exam, err := s.findExam(response.ExamID)
	if err != nil {
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	questions := make(map[string]*model.ExamQuestion, len(exam.Questions))
	for i := range exam.Questions {
		questions[exam.Questions[i].ID] = &exam.Questions[i]
	}
	answers := make(map[string]*model.ExamAnswer, len(response.Answers))
	for i := range response.Answers {
		answers[response.Answers[i].QuestionID] = &response.Answers[i]
	}

	graded := 0
	for _, g := range req.Grades {
		question, ok := questions[g.QuestionID]
		if !ok || !scoring.NeedsManualGrading(question) {
			continue
		}
		answer, ok := answers[g.QuestionID]
		if !ok {
			continue
		}
		points := g.Points
		if points < 0 {
			points = 0
		}
		if points > question.Points {
			points = question.Points
		}
		correct := points > 0
		answer.Points = &points
		answer.IsCorrect = &correct
		answer.Feedback = g.Feedback
		answer.IsGraded = true
		graded++
	}
	if graded == 0 {
		return nil, util.ErrNothingToGrade
	}

	summary := scoring.Evaluate(exam.Questions, response.Answers, exam.Settings.PassingScore)
	now := s.now()
	response.Status = model.ResponseGraded
	response.Score = summary.Score
	response.MaxScore = summary.MaxScore
	response.Percentage = summary.Percentage
	response.Passed = summary.Passed
	response.GradedBy = &teacherID
	response.GradedAt = &now

	if err := s.responses.Save(response); err != nil {
		return nil, err
	}
	s.logger.Info("exam attempt graded",
		zap.String("responseId", response.ID),
		zap.Uint("teacherId", teacherID),
		zap.Int("gradedAnswers", graded),
		zap.Int("score", summary.Score))

	return &GradeResult{
		Response:           response,
		Score:              summary.Score,
		TotalPossibleScore: summary.MaxScore,
		Percentage:         summary.Percentage,
		Passed:             summary.Passed,
	}, nil
}

func (s *ExamResponseService) findExam(id string) (*model.Exam, error) {
	exam, err := s.exams.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamResponseService) findResponse(id string) (*model.ExamResponse, error) {
	response, err := s.responses.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}
