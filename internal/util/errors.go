package util

import "errors"

// Business-rule and lookup errors shared by the services. Controllers map
// them onto 400/403/404 before falling back to a generic 500.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrParentNotFound     = errors.New("parent not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrExamNotFound       = errors.New("exam not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrResponseNotFound   = errors.New("exam response not found")

	// ErrValidation wraps request-content failures so controllers can map
	// them to 400; use fmt.Errorf("%w: ...", ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrEmailRegistered    = errors.New("email address already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrExamHasResponses   = errors.New("exam has already been started and can no longer be changed")
	ErrExamNotActive      = errors.New("exam is not active")
	ErrExamPastDue        = errors.New("exam due date has passed")
	ErrExamNotForClass    = errors.New("exam is not offered to your class")
	ErrAlreadySubmitted   = errors.New("exam already submitted")
	ErrResponseNotStarted = errors.New("exam response is no longer accepting answers")
	ErrTimeExpired        = errors.New("exam time has expired")
	ErrNotYetSubmitted    = errors.New("exam response has not been submitted yet")
	ErrNothingToGrade     = errors.New("no answer matched a manually graded question")
)

// IsNotFound reports whether err is one of the lookup errors above.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrStudentNotFound),
		errors.Is(err, ErrTeacherNotFound),
		errors.Is(err, ErrParentNotFound),
		errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrAssignmentNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrExamNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrResponseNotFound):
		return true
	}
	return false
}

// IsBusinessRule reports whether err is a rule violation that should surface
// as 400 rather than 500.
func IsBusinessRule(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrExamHasResponses),
		errors.Is(err, ErrExamNotActive),
		errors.Is(err, ErrExamPastDue),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrResponseNotStarted),
		errors.Is(err, ErrTimeExpired),
		errors.Is(err, ErrNotYetSubmitted),
		errors.Is(err, ErrNothingToGrade):
		return true
	}
	return false
}
