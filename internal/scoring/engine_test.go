package scoring

import (
	"encoding/json"
	"testing"

	"school_backend/internal/model"
)

func mustOptions(t *testing.T, opts []model.QuestionOption) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	return raw
}

func mcqQuestion(t *testing.T, id string, points int, correctOption string) model.ExamQuestion {
	t.Helper()
	return model.ExamQuestion{
		UUIDBase: model.UUIDBase{ID: id},
		Type:     model.QuestionMultipleChoice,
		Points:   points,
		Options: mustOptions(t, []model.QuestionOption{
			{ID: "a", Text: "first", IsCorrect: correctOption == "a"},
			{ID: "b", Text: "second", IsCorrect: correctOption == "b"},
			{ID: "c", Text: "third", IsCorrect: correctOption == "c"},
		}),
	}
}

func openQuestion(id string, points int) model.ExamQuestion {
	return model.ExamQuestion{
		UUIDBase: model.UUIDBase{ID: id},
		Type:     model.QuestionOpenEnded,
		Points:   points,
	}
}

func TestNeedsManualGrading(t *testing.T) {
	withCorrect := model.ExamQuestion{
		Type: model.QuestionImageBased,
		Options: json.RawMessage(
			`[{"id":"a","text":"left","isCorrect":true},{"id":"b","text":"right","isCorrect":false}]`),
	}
	withoutCorrect := model.ExamQuestion{
		Type: model.QuestionImageBased,
		Options: json.RawMessage(
			`[{"id":"a","text":"left","isCorrect":false}]`),
	}

	tests := []struct {
		name string
		q    model.ExamQuestion
		want bool
	}{
		{"multiple choice", mcqQuestion(t, "q1", 10, "a"), false},
		{"open ended", openQuestion("q2", 20), true},
		{"image without options", model.ExamQuestion{Type: model.QuestionImageBased}, true},
		{"image with correct option", withCorrect, false},
		{"image with no correct option", withoutCorrect, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsManualGrading(&tt.q); got != tt.want {
				t.Errorf("NeedsManualGrading() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveAnswer(t *testing.T) {
	mcq := mcqQuestion(t, "q1", 10, "b")
	open := openQuestion("q2", 20)

	gradedTrue := true
	gradedPoints := 15
	tests := []struct {
		name         string
		q            *model.ExamQuestion
		a            model.ExamAnswer
		wantResolved bool
		wantCorrect  bool
		wantPoints   int
	}{
		{"correct option", &mcq, model.ExamAnswer{SelectedOption: "b"}, true, true, 10},
		{"wrong option", &mcq, model.ExamAnswer{SelectedOption: "a"}, true, false, 0},
		{"no option selected", &mcq, model.ExamAnswer{}, true, false, 0},
		{"open ended ungraded", &open, model.ExamAnswer{TextAnswer: "essay"}, false, false, 0},
		{
			"open ended keeps teacher grade",
			&open,
			model.ExamAnswer{TextAnswer: "essay", IsGraded: true, IsCorrect: &gradedTrue, Points: &gradedPoints},
			true, true, 15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAnswer(tt.q, &tt.a)
			if got.Resolved != tt.wantResolved || got.Correct != tt.wantCorrect || got.Points != tt.wantPoints {
				t.Errorf("ResolveAnswer() = %+v, want resolved=%v correct=%v points=%d",
					got, tt.wantResolved, tt.wantCorrect, tt.wantPoints)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	questions := []model.ExamQuestion{
		mcqQuestion(t, "q1", 10, "a"),
		openQuestion("q2", 20),
	}
	answers := []model.ExamAnswer{
		{QuestionID: "q1", SelectedOption: "a"},
		{QuestionID: "q2", TextAnswer: "essay"},
		{QuestionID: "ghost", SelectedOption: "a"}, // unknown question, skipped
	}

	s := Evaluate(questions, answers, 50)

	if s.MaxScore != 30 {
		t.Errorf("MaxScore = %d, want 30", s.MaxScore)
	}
	if s.Score != 10 {
		t.Errorf("Score = %d, want 10 (unresolved answers contribute nothing)", s.Score)
	}
	if s.Percentage != 33.33 {
		t.Errorf("Percentage = %v, want 33.33", s.Percentage)
	}
	if s.Passed {
		t.Error("Passed = true, want false")
	}
	if !s.NeedsGrading {
		t.Error("NeedsGrading = false, want true")
	}
	if _, ok := s.PerAnswer["ghost"]; ok {
		t.Error("unknown question id should not appear in PerAnswer")
	}
	if res := s.PerAnswer["q2"]; res.Resolved {
		t.Error("open-ended answer should stay unresolved before manual grading")
	}

	// Same inputs, same outputs.
	again := Evaluate(questions, answers, 50)
	if again.Score != s.Score || again.Percentage != s.Percentage || again.MaxScore != s.MaxScore {
		t.Errorf("Evaluate is not idempotent: %+v vs %+v", again, s)
	}
}

func TestEvaluateEmptyBank(t *testing.T) {
	s := Evaluate(nil, nil, 50)
	if s.MaxScore != 0 || s.Score != 0 {
		t.Errorf("empty bank: got score %d/%d, want 0/0", s.Score, s.MaxScore)
	}
	if s.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 for empty bank", s.Percentage)
	}
	if s.Passed {
		t.Error("Passed = true, want false when nothing can be scored")
	}
}

func TestEvaluateFullMarks(t *testing.T) {
	questions := []model.ExamQuestion{
		mcqQuestion(t, "q1", 10, "a"),
		mcqQuestion(t, "q2", 40, "c"),
	}
	answers := []model.ExamAnswer{
		{QuestionID: "q1", SelectedOption: "a"},
		{QuestionID: "q2", SelectedOption: "c"},
	}

	s := Evaluate(questions, answers, 50)
	if s.Score != 50 || s.Percentage != 100 || !s.Passed {
		t.Errorf("full marks: got score=%d percentage=%v passed=%v", s.Score, s.Percentage, s.Passed)
	}
	if s.NeedsGrading {
		t.Error("NeedsGrading = true for an all-auto bank")
	}
}
