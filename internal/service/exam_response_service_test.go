package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/util"

	"go.uber.org/zap"
)

type responseFixture struct {
	svc      *ExamResponseService
	exams    *fakeExamStore
	store    *fakeResponseStore
	students *fakeStudentDirectory
	exam     *model.Exam
	now      time.Time
}

// newResponseFixture wires the service against in-memory stores with one exam
// (10pt multiple choice + 20pt open ended) and one eligible student (id 1).
func newResponseFixture(t *testing.T) *responseFixture {
	t.Helper()

	exams := newFakeExamStore()
	store := newFakeResponseStore()
	students := newFakeStudentDirectory()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	options, err := json.Marshal([]model.QuestionOption{
		{ID: "a", Text: "four", IsCorrect: true},
		{ID: "b", Text: "five"},
	})
	if err != nil {
		t.Fatal(err)
	}
	exam := &model.Exam{
		TeacherID:  7,
		Title:      "Fractions midterm",
		Branch:     "Matematik",
		ClassLevel: "6",
		Section:    "A",
		ExamDate:   now.Add(-time.Hour),
		DueDate:    now.Add(24 * time.Hour),
		Duration:   60,
		IsActive:   true,
		Settings:   model.ExamSettings{PassingScore: 50, ShowResults: true},
		Questions: []model.ExamQuestion{
			{Order: 0, Text: "2+2?", Type: model.QuestionMultipleChoice, Points: 10, Options: options},
			{Order: 1, Text: "Explain fractions", Type: model.QuestionOpenEnded, Points: 20},
		},
	}
	if err := exams.Create(exam); err != nil {
		t.Fatal(err)
	}
	exam.TotalPoints = model.ComputeTotalPoints(exam.Questions)

	students.add(&model.Student{
		BaseModel:  model.BaseModel{ID: 1},
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		ClassLevel: "6",
		Section:    "A",
	})

	svc := NewExamResponseService(exams, store, students, zap.NewNop())
	svc.now = func() time.Time { return now }

	return &responseFixture{svc: svc, exams: exams, store: store, students: students, exam: exam, now: now}
}

func (f *responseFixture) question(order int) *model.ExamQuestion {
	for i := range f.exam.Questions {
		if f.exam.Questions[i].Order == order {
			return &f.exam.Questions[i]
		}
	}
	return nil
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	f := newResponseFixture(t)

	first, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.Resumed {
		t.Error("first start reported as resumed")
	}
	if first.Response.AttemptNo != 1 {
		t.Errorf("attemptNo = %d, want 1", first.Response.AttemptNo)
	}
	if got := first.RemainingSeconds; got != 60*60 {
		t.Errorf("RemainingSeconds = %d, want 3600", got)
	}

	second, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !second.Resumed {
		t.Error("second start should resume, not create")
	}
	if second.Response.ID != first.Response.ID {
		t.Errorf("second start returned a different attempt: %s vs %s", second.Response.ID, first.Response.ID)
	}
	if len(f.store.responses) != 1 {
		t.Errorf("stored attempts = %d, want 1", len(f.store.responses))
	}
}

func TestStartRejections(t *testing.T) {
	t.Run("past due", func(t *testing.T) {
		f := newResponseFixture(t)
		f.exam.DueDate = f.now.Add(-time.Minute)
		if _, err := f.svc.Start(f.exam.ID, 1); !errors.Is(err, util.ErrExamPastDue) {
			t.Errorf("err = %v, want ErrExamPastDue", err)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		f := newResponseFixture(t)
		f.exam.IsActive = false
		if _, err := f.svc.Start(f.exam.ID, 1); !errors.Is(err, util.ErrExamNotActive) {
			t.Errorf("err = %v, want ErrExamNotActive", err)
		}
	})

	t.Run("wrong class", func(t *testing.T) {
		f := newResponseFixture(t)
		f.students.add(&model.Student{BaseModel: model.BaseModel{ID: 2}, ClassLevel: "7", Section: "B"})
		if _, err := f.svc.Start(f.exam.ID, 2); !errors.Is(err, util.ErrExamNotForClass) {
			t.Errorf("err = %v, want ErrExamNotForClass", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		f := newResponseFixture(t)
		if _, err := f.svc.Start("missing", 1); !errors.Is(err, util.ErrExamNotFound) {
			t.Errorf("err = %v, want ErrExamNotFound", err)
		}
	})
}

func TestStartRetake(t *testing.T) {
	f := newResponseFixture(t)

	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(started.Response.ID, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Start(f.exam.ID, 1); !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("retake without allowRetake: err = %v, want ErrAlreadySubmitted", err)
	}

	f.exam.Settings.AllowRetake = true
	retake, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatalf("retake with allowRetake: %v", err)
	}
	if retake.Response.AttemptNo != 2 {
		t.Errorf("retake attemptNo = %d, want 2", retake.Response.AttemptNo)
	}
}

func TestStartHidesAnswerKeysWhenResultsHidden(t *testing.T) {
	f := newResponseFixture(t)
	f.exam.Settings.ShowResults = false
	f.exam.Questions[1].CorrectAnswer = "reference essay"

	result, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, q := range result.Exam.Questions {
		if q.CorrectAnswer != "" {
			t.Errorf("question %q still carries its reference answer", q.Text)
		}
		opts, err := q.DecodeOptions()
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range opts {
			if o.IsCorrect {
				t.Errorf("question %q still flags option %s as correct", q.Text, o.ID)
			}
		}
	}

	// The stored bank keeps its keys.
	opts, err := f.question(0).DecodeOptions()
	if err != nil {
		t.Fatal(err)
	}
	if !opts[0].IsCorrect {
		t.Error("stored question bank lost its answer key")
	}
}

func TestAnswerAutoGradesMultipleChoice(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	mcq := f.question(0)

	answer, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: mcq.ID, SelectedOption: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if answer.IsCorrect == nil || !*answer.IsCorrect || answer.Points == nil || *answer.Points != 10 {
		t.Errorf("correct option not auto graded: %+v", answer)
	}

	// Replacing the answer re-grades it and keeps a single row.
	answer, err = f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: mcq.ID, SelectedOption: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if answer.IsCorrect == nil || *answer.IsCorrect || *answer.Points != 0 {
		t.Errorf("replaced answer not re-graded: %+v", answer)
	}
	if got := len(f.store.responses[started.Response.ID].Answers); got != 1 {
		t.Errorf("answer rows = %d, want 1 (upsert)", got)
	}
}

func TestAnswerOpenEndedStaysUnresolved(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	answer, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(1).ID, TextAnswer: "essay"})
	if err != nil {
		t.Fatal(err)
	}
	if answer.IsCorrect != nil || answer.Points != nil {
		t.Errorf("open-ended answer should stay unresolved, got %+v", answer)
	}
}

func TestAnswerRejections(t *testing.T) {
	t.Run("after time expired", func(t *testing.T) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		f.svc.now = func() time.Time { return f.now.Add(61 * time.Minute) }
		_, err = f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(0).ID, SelectedOption: "a"})
		if !errors.Is(err, util.ErrTimeExpired) {
			t.Errorf("err = %v, want ErrTimeExpired", err)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: "ghost", SelectedOption: "a"})
		if !errors.Is(err, util.ErrQuestionNotFound) {
			t.Errorf("err = %v, want ErrQuestionNotFound", err)
		}
	})

	t.Run("someone else's attempt", func(t *testing.T) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.svc.Answer(started.Response.ID, 99, &AnswerReq{QuestionID: f.question(0).ID, SelectedOption: "a"})
		if !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("after submit", func(t *testing.T) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Submit(started.Response.ID, 1); err != nil {
			t.Fatal(err)
		}
		_, err = f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(0).ID, SelectedOption: "a"})
		if !errors.Is(err, util.ErrResponseNotStarted) {
			t.Errorf("err = %v, want ErrResponseNotStarted", err)
		}
	})
}

func TestSubmitAggregatesOverFullBank(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(0).ID, SelectedOption: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(1).ID, TextAnswer: "essay"}); err != nil {
		t.Fatal(err)
	}

	f.svc.now = func() time.Time { return f.now.Add(25 * time.Minute) }
	result, err := f.svc.Submit(started.Response.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	if result.Score != 10 {
		t.Errorf("Score = %d, want 10 (only the auto-graded answer counts)", result.Score)
	}
	if result.TotalPossibleScore != 30 {
		t.Errorf("TotalPossibleScore = %d, want 30 (all questions, answered or not)", result.TotalPossibleScore)
	}
	if !result.NeedsGrading {
		t.Error("NeedsGrading = false, want true with an open-ended question pending")
	}
	if result.CompletionTime != 25 {
		t.Errorf("CompletionTime = %d, want 25", result.CompletionTime)
	}
	if result.Response.Status != model.ResponseSubmitted {
		t.Errorf("status = %s, want submitted", result.Response.Status)
	}

	if _, err := f.svc.Submit(started.Response.ID, 1); !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Errorf("double submit: err = %v, want ErrAlreadySubmitted", err)
	}
}

func TestGradeClampsAndAggregates(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(0).ID, SelectedOption: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(1).ID, TextAnswer: "essay"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(started.Response.ID, 1); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.Grade(started.Response.ID, 7, &GradeReq{Grades: []QuestionGrade{
		{QuestionID: f.question(1).ID, Points: 35, Feedback: "good"}, // over max, clamps to 20
		{QuestionID: "ghost", Points: 5},                             // silently skipped
	}})
	if err != nil {
		t.Fatal(err)
	}

	if result.Score != 30 {
		t.Errorf("Score = %d, want 30 after clamping to the question maximum", result.Score)
	}
	if result.Percentage != 100 || !result.Passed {
		t.Errorf("percentage=%v passed=%v, want 100/true", result.Percentage, result.Passed)
	}
	if result.Response.Status != model.ResponseGraded {
		t.Errorf("status = %s, want graded", result.Response.Status)
	}
	if result.Response.GradedBy == nil || *result.Response.GradedBy != 7 {
		t.Error("GradedBy not recorded")
	}

	stored := f.store.responses[started.Response.ID]
	for _, a := range stored.Answers {
		if a.QuestionID == f.question(1).ID {
			if a.Points == nil || *a.Points != 20 {
				t.Errorf("graded points = %v, want 20", a.Points)
			}
			if a.IsCorrect == nil || !*a.IsCorrect {
				t.Error("positive points should mark the answer correct")
			}
			if a.Feedback != "good" {
				t.Errorf("feedback = %q, want %q", a.Feedback, "good")
			}
			if !a.IsGraded {
				t.Error("IsGraded not set")
			}
		}
	}
}

func TestGradeRejections(t *testing.T) {
	setup := func(t *testing.T) (*responseFixture, string) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(1).ID, TextAnswer: "essay"}); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Submit(started.Response.ID, 1); err != nil {
			t.Fatal(err)
		}
		return f, started.Response.ID
	}

	t.Run("not the owning teacher", func(t *testing.T) {
		f, responseID := setup(t)
		_, err := f.svc.Grade(responseID, 99, &GradeReq{Grades: []QuestionGrade{{QuestionID: f.question(1).ID, Points: 10}}})
		if !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("nothing gradable", func(t *testing.T) {
		f, responseID := setup(t)
		_, err := f.svc.Grade(responseID, 7, &GradeReq{Grades: []QuestionGrade{
			{QuestionID: "ghost", Points: 5},
			{QuestionID: f.question(0).ID, Points: 5}, // auto-graded, ignored
		}})
		if !errors.Is(err, util.ErrNothingToGrade) {
			t.Errorf("err = %v, want ErrNothingToGrade", err)
		}
	})

	t.Run("not yet submitted", func(t *testing.T) {
		f := newResponseFixture(t)
		started, err := f.svc.Start(f.exam.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.svc.Grade(started.Response.ID, 7, &GradeReq{Grades: []QuestionGrade{{QuestionID: f.question(1).ID, Points: 10}}})
		if !errors.Is(err, util.ErrNotYetSubmitted) {
			t.Errorf("err = %v, want ErrNotYetSubmitted", err)
		}
	})
}

func TestNegativeGradeClampsToZero(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Answer(started.Response.ID, 1, &AnswerReq{QuestionID: f.question(1).ID, TextAnswer: "essay"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(started.Response.ID, 1); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.Grade(started.Response.ID, 7, &GradeReq{Grades: []QuestionGrade{
		{QuestionID: f.question(1).ID, Points: -5},
	}})
	if err != nil {
		t.Fatal(err)
	}

	stored := f.store.responses[started.Response.ID]
	for _, a := range stored.Answers {
		if a.QuestionID == f.question(1).ID {
			if a.Points == nil || *a.Points != 0 {
				t.Errorf("points = %v, want 0", a.Points)
			}
			if a.IsCorrect == nil || *a.IsCorrect {
				t.Error("zero points should mark the answer incorrect")
			}
		}
	}
	if result.Passed {
		t.Error("Passed = true, want false at 0/30")
	}
}

func TestGetForUserVisibility(t *testing.T) {
	f := newResponseFixture(t)
	started, err := f.svc.Start(f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := f.svc.GetForUser(started.Response.ID, 1, model.RoleStudent); err != nil {
		t.Errorf("owning student refused: %v", err)
	}
	if _, _, err := f.svc.GetForUser(started.Response.ID, 7, model.RoleTeacher); err != nil {
		t.Errorf("owning teacher refused: %v", err)
	}
	if _, _, err := f.svc.GetForUser(started.Response.ID, 2, model.RoleStudent); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("other student: err = %v, want ErrPermissionDenied", err)
	}
	if _, _, err := f.svc.GetForUser(started.Response.ID, 8, model.RoleTeacher); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("other teacher: err = %v, want ErrPermissionDenied", err)
	}
	if _, _, err := f.svc.GetForUser(started.Response.ID, 1, model.RoleParent); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("parent: err = %v, want ErrPermissionDenied", err)
	}
}
