// Package scoring turns a question bank and an answer set into per-answer
// resolutions and an aggregate result. It is pure computation: evaluating the
// same inputs always yields the same output, so submits and re-grades can
// recompute the aggregate from scratch instead of adjusting it incrementally.
package scoring

import (
	"math"

	"school_backend/internal/model"
)

// Resolution is the outcome for a single answer. Resolved is false while the
// answer awaits manual grading; an unresolved answer contributes nothing to
// the aggregate, which is not the same as contributing zero.
type Resolution struct {
	Resolved bool
	Correct  bool
	Points   int
}

// Summary aggregates a full answer set against a question bank.
type Summary struct {
	Score        int     // sum of resolved points
	MaxScore     int     // sum of points over ALL questions, answered or not
	Percentage   float64 // 0 when MaxScore is 0
	Passed       bool
	NeedsGrading bool // at least one question requires a teacher
	PerAnswer    map[string]Resolution
}

// NeedsManualGrading reports whether the question can only be resolved by a
// teacher. Open-ended questions always do; image-based questions do unless
// they carry a multiple-choice option set with a flagged correct answer.
func NeedsManualGrading(q *model.ExamQuestion) bool {
	switch q.Type {
	case model.QuestionOpenEnded:
		return true
	case model.QuestionImageBased:
		opts, err := q.DecodeOptions()
		if err != nil {
			return true
		}
		for _, o := range opts {
			if o.IsCorrect {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ResolveAnswer computes the resolution of one answer against its question.
// Auto-gradable questions are resolved from the selected option every time;
// manually-graded questions keep a grade a teacher already assigned and stay
// unresolved otherwise.
func ResolveAnswer(q *model.ExamQuestion, a *model.ExamAnswer) Resolution {
	if NeedsManualGrading(q) {
		if a.IsGraded && a.Resolved() {
			return Resolution{Resolved: true, Correct: *a.IsCorrect, Points: *a.Points}
		}
		return Resolution{}
	}

	opts, err := q.DecodeOptions()
	if err != nil {
		return Resolution{}
	}
	correct := false
	for _, o := range opts {
		if o.IsCorrect && o.ID == a.SelectedOption {
			correct = true
			break
		}
	}
	points := 0
	if correct {
		points = q.Points
	}
	return Resolution{Resolved: true, Correct: correct, Points: points}
}

// Evaluate resolves every answer against the question bank and aggregates the
// result. Answers referencing unknown question ids are skipped.
func Evaluate(questions []model.ExamQuestion, answers []model.ExamAnswer, passingScore int) Summary {
	byID := make(map[string]*model.ExamQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	s := Summary{
		MaxScore:  model.ComputeTotalPoints(questions),
		PerAnswer: make(map[string]Resolution, len(answers)),
	}

	for i := range questions {
		if NeedsManualGrading(&questions[i]) {
			s.NeedsGrading = true
			break
		}
	}

	for i := range answers {
		a := &answers[i]
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		res := ResolveAnswer(q, a)
		s.PerAnswer[a.QuestionID] = res
		if res.Resolved {
			s.Score += res.Points
		}
	}

	if s.MaxScore > 0 {
		s.Percentage = math.Round(float64(s.Score)/float64(s.MaxScore)*10000) / 100
	}
	s.Passed = s.Percentage >= float64(passingScore)

	return s
}
