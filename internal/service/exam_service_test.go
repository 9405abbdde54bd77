package service

import (
	"errors"
	"testing"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/util"

	"go.uber.org/zap"
)

// examClock is the frozen reference time of the exam service tests; the
// fixtures pin the service clock to it so the due-date window is stable.
var examClock = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func validExamReq() *ExamReq {
	examDate := examClock.Add(24 * time.Hour)
	return &ExamReq{
		Title:      "Geometry quiz",
		Branch:     "Matematik",
		ClassLevel: "6",
		Section:    "A",
		ExamDate:   examDate,
		DueDate:    examDate.Add(48 * time.Hour),
		Duration:   45,
		Questions: []ExamQuestionReq{
			{
				Text:   "Angles of a triangle sum to?",
				Type:   model.QuestionMultipleChoice,
				Points: 10,
				Options: []QuestionOptionReq{
					{Text: "180", IsCorrect: true},
					{Text: "360"},
				},
			},
			{Text: "Define a rhombus", Type: model.QuestionOpenEnded, Points: 15},
		},
	}
}

func newExamServiceFixture() (*ExamService, *fakeExamStore, *fakeResponseStore, *fakeStudentDirectory) {
	exams := newFakeExamStore()
	responses := newFakeResponseStore()
	students := newFakeStudentDirectory()
	svc := NewExamService(exams, responses, students, zap.NewNop())
	svc.now = func() time.Time { return examClock }
	return svc, exams, responses, students
}

func TestCreateExamComputesTotalsAndOptionIDs(t *testing.T) {
	svc, _, _, _ := newExamServiceFixture()

	exam, err := svc.Create(7, validExamReq())
	if err != nil {
		t.Fatal(err)
	}

	if exam.TotalPoints != 25 {
		t.Errorf("TotalPoints = %d, want 25", exam.TotalPoints)
	}
	if exam.TeacherID != 7 {
		t.Errorf("TeacherID = %d, want 7", exam.TeacherID)
	}
	if exam.Settings.PassingScore != 50 || !exam.Settings.ShowResults {
		t.Errorf("default settings not applied: %+v", exam.Settings)
	}

	opts, err := exam.Questions[0].DecodeOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts[0].ID != "a" || opts[1].ID != "b" {
		t.Errorf("option ids = %q, %q; want a, b", opts[0].ID, opts[1].ID)
	}
	for i, q := range exam.Questions {
		if q.Order != i {
			t.Errorf("question %d order = %d", i, q.Order)
		}
	}
}

func TestCreateExamValidation(t *testing.T) {
	svc, _, _, _ := newExamServiceFixture()

	tests := []struct {
		name   string
		mutate func(*ExamReq)
	}{
		{"duration too short", func(r *ExamReq) { r.Duration = 4 }},
		{"duration too long", func(r *ExamReq) { r.Duration = 181 }},
		{"due before exam date", func(r *ExamReq) { r.DueDate = r.ExamDate.Add(-time.Hour) }},
		{"no questions", func(r *ExamReq) { r.Questions = nil }},
		{"points out of range", func(r *ExamReq) { r.Questions[0].Points = 0 }},
		{"single option", func(r *ExamReq) { r.Questions[0].Options = r.Questions[0].Options[:1] }},
		{"no correct option", func(r *ExamReq) {
			for i := range r.Questions[0].Options {
				r.Questions[0].Options[i].IsCorrect = false
			}
		}},
		{"image without url", func(r *ExamReq) {
			r.Questions[1] = ExamQuestionReq{Text: "Name the shape", Type: model.QuestionImageBased, Points: 5}
		}},
		{"unknown type", func(r *ExamReq) { r.Questions[1].Type = "true_false" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validExamReq()
			tt.mutate(req)
			if _, err := svc.Create(7, req); !errors.Is(err, util.ErrValidation) {
				t.Errorf("err = %v, want a validation error", err)
			}
		})
	}
}

func TestUpdateAndDeleteLockAfterFirstAttempt(t *testing.T) {
	svc, exams, _, _ := newExamServiceFixture()
	exam, err := svc.Create(7, validExamReq())
	if err != nil {
		t.Fatal(err)
	}

	exams.hasResponses[exam.ID] = true

	if _, err := svc.Update(exam.ID, 7, validExamReq()); !errors.Is(err, util.ErrExamHasResponses) {
		t.Errorf("update: err = %v, want ErrExamHasResponses", err)
	}
	if err := svc.Delete(exam.ID, 7); !errors.Is(err, util.ErrExamHasResponses) {
		t.Errorf("delete: err = %v, want ErrExamHasResponses", err)
	}

	exams.hasResponses[exam.ID] = false
	req := validExamReq()
	req.Title = "Geometry quiz v2"
	updated, err := svc.Update(exam.ID, 7, req)
	if err != nil {
		t.Fatalf("update without attempts: %v", err)
	}
	if updated.Title != "Geometry quiz v2" {
		t.Errorf("title = %q", updated.Title)
	}

	if _, err := svc.Update(exam.ID, 9, req); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign teacher update: err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(exam.ID, 7); err != nil {
		t.Fatalf("delete without attempts: %v", err)
	}
}

func TestListForStudentAnnotatesAttempts(t *testing.T) {
	svc, exams, responses, students := newExamServiceFixture()
	students.add(&model.Student{BaseModel: model.BaseModel{ID: 1}, ClassLevel: "6", Section: "A"})

	exam, err := svc.Create(7, validExamReq())
	if err != nil {
		t.Fatal(err)
	}
	otherReq := validExamReq()
	otherReq.Title = "Untouched exam"
	other, err := svc.Create(7, otherReq)
	if err != nil {
		t.Fatal(err)
	}
	_ = exams

	graded := &model.ExamResponse{
		ExamID:    exam.ID,
		StudentID: 1,
		AttemptNo: 1,
		Status:    model.ResponseGraded,
		Score:     20,
		MaxScore:  25,
	}
	graded.Percentage = 80
	if err := responses.Create(graded); err != nil {
		t.Fatal(err)
	}

	views, err := svc.ListForStudent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}

	byID := make(map[string]StudentExamView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	if got := byID[exam.ID]; got.StudentStatus != string(model.ResponseGraded) {
		t.Errorf("attempted exam status = %q, want graded", got.StudentStatus)
	} else if got.StudentScore == nil || *got.StudentScore != 20 {
		t.Errorf("StudentScore = %v, want 20", got.StudentScore)
	}
	if got := byID[other.ID]; got.StudentStatus != "not_started" {
		t.Errorf("untouched exam status = %q, want not_started", got.StudentStatus)
	} else if got.StudentScore != nil {
		t.Error("untouched exam should not carry a score")
	}
}

func TestListForStudentHidesPastDueExams(t *testing.T) {
	svc, _, _, students := newExamServiceFixture()
	students.add(&model.Student{BaseModel: model.BaseModel{ID: 1}, ClassLevel: "6", Section: "A"})

	exam, err := svc.Create(7, validExamReq())
	if err != nil {
		t.Fatal(err)
	}

	views, err := svc.ListForStudent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("open window: views = %d, want 1", len(views))
	}

	svc.now = func() time.Time { return exam.DueDate.Add(time.Minute) }
	views, err = svc.ListForStudent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 0 {
		t.Errorf("past due: views = %d, want 0", len(views))
	}
}

func TestResultsStats(t *testing.T) {
	svc, _, responses, _ := newExamServiceFixture()
	exam, err := svc.Create(7, validExamReq())
	if err != nil {
		t.Fatal(err)
	}
	mcqID := exam.Questions[0].ID
	openID := exam.Questions[1].ID

	yes, no := true, false
	ten, zero := 10, 0
	finished := []*model.ExamResponse{
		{
			ExamID: exam.ID, StudentID: 1, AttemptNo: 1,
			Status: model.ResponseGraded, Score: 25, Passed: true,
			Answers: []model.ExamAnswer{
				{QuestionID: mcqID, IsCorrect: &yes, Points: &ten},
				{QuestionID: openID, IsCorrect: &yes},
			},
		},
		{
			ExamID: exam.ID, StudentID: 2, AttemptNo: 1,
			Status: model.ResponseSubmitted, Score: 0, Passed: false,
			Answers: []model.ExamAnswer{
				{QuestionID: mcqID, IsCorrect: &no, Points: &zero},
			},
		},
	}
	for _, r := range finished {
		if err := responses.Create(r); err != nil {
			t.Fatal(err)
		}
	}
	// Still running, must not skew the stats.
	if err := responses.Create(&model.ExamResponse{
		ExamID: exam.ID, StudentID: 3, AttemptNo: 1, Status: model.ResponseStarted,
	}); err != nil {
		t.Fatal(err)
	}

	view, err := svc.Results(exam.ID, 7)
	if err != nil {
		t.Fatal(err)
	}

	s := view.Stats
	if s.TotalResponses != 3 || s.Submitted != 1 || s.Graded != 1 {
		t.Errorf("counts = total %d submitted %d graded %d", s.TotalResponses, s.Submitted, s.Graded)
	}
	if s.AverageScore != 12.5 {
		t.Errorf("AverageScore = %v, want 12.5", s.AverageScore)
	}
	if s.HighestScore != 25 || s.LowestScore != 0 {
		t.Errorf("high/low = %d/%d, want 25/0", s.HighestScore, s.LowestScore)
	}
	if s.PassCount != 1 || s.PassRate != 50 {
		t.Errorf("passCount=%d passRate=%v, want 1/50", s.PassCount, s.PassRate)
	}

	for _, q := range s.Questions {
		switch q.QuestionID {
		case mcqID:
			if q.Answered != 2 || q.Correct != 1 || q.CorrectRate != 50 {
				t.Errorf("mcq stats = %+v", q)
			}
		case openID:
			if q.Answered != 1 || q.Correct != 1 || q.CorrectRate != 100 {
				t.Errorf("open stats = %+v", q)
			}
		}
	}

	if _, err := svc.Results(exam.ID, 9); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign teacher: err = %v, want ErrPermissionDenied", err)
	}
}
