package service

import (
	"time"

	"school_backend/internal/model"

	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories. They mirror the store
// contracts closely enough for the lifecycle tests: ids are assigned on
// create and missing rows surface as gorm.ErrRecordNotFound.

type fakeExamStore struct {
	exams        map[string]*model.Exam
	hasResponses map[string]bool
	deleted      []string
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{
		exams:        make(map[string]*model.Exam),
		hasResponses: make(map[string]bool),
	}
}

func (f *fakeExamStore) Create(exam *model.Exam) error {
	if exam.ID == "" {
		exam.ID = model.GenerateUUID()
	}
	for i := range exam.Questions {
		if exam.Questions[i].ID == "" {
			exam.Questions[i].ID = model.GenerateUUID()
		}
		exam.Questions[i].ExamID = exam.ID
	}
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamStore) FindByID(id string) (*model.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (f *fakeExamStore) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.exams {
		if e.TeacherID == teacherID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListForClass(classLevel, section string, now time.Time) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.exams {
		if e.ClassLevel == classLevel && e.Section == section && e.IsActive && !e.DueDate.Before(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExamStore) Update(exam *model.Exam) error {
	for i := range exam.Questions {
		if exam.Questions[i].ID == "" {
			exam.Questions[i].ID = model.GenerateUUID()
		}
	}
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamStore) Delete(id string) error {
	delete(f.exams, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeExamStore) HasResponses(examID string) (bool, error) {
	return f.hasResponses[examID], nil
}

type fakeResponseStore struct {
	responses map[string]*model.ExamResponse
	order     []string // creation order, oldest first
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: make(map[string]*model.ExamResponse)}
}

func (f *fakeResponseStore) Create(response *model.ExamResponse) error {
	if response.ID == "" {
		response.ID = model.GenerateUUID()
	}
	f.responses[response.ID] = response
	f.order = append(f.order, response.ID)
	return nil
}

func (f *fakeResponseStore) FindByID(id string) (*model.ExamResponse, error) {
	resp, ok := f.responses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return resp, nil
}

func (f *fakeResponseStore) FindLatestByExamAndStudent(examID string, studentID uint) (*model.ExamResponse, error) {
	var latest *model.ExamResponse
	for _, r := range f.responses {
		if r.ExamID != examID || r.StudentID != studentID {
			continue
		}
		if latest == nil || r.AttemptNo > latest.AttemptNo {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakeResponseStore) ListByExam(examID string) ([]model.ExamResponse, error) {
	var out []model.ExamResponse
	for _, id := range f.order {
		if r := f.responses[id]; r.ExamID == examID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResponseStore) ListByStudent(studentID uint, statuses []model.ResponseStatus) ([]model.ExamResponse, error) {
	var out []model.ExamResponse
	for i := len(f.order) - 1; i >= 0; i-- { // newest first
		r := f.responses[f.order[i]]
		if r.StudentID != studentID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if r.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResponseStore) UpsertAnswer(answer *model.ExamAnswer) error {
	resp, ok := f.responses[answer.ResponseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range resp.Answers {
		if resp.Answers[i].QuestionID == answer.QuestionID {
			answer.UUIDBase = resp.Answers[i].UUIDBase
			resp.Answers[i] = *answer
			return nil
		}
	}
	if answer.ID == "" {
		answer.ID = model.GenerateUUID()
	}
	resp.Answers = append(resp.Answers, *answer)
	return nil
}

func (f *fakeResponseStore) Save(response *model.ExamResponse) error {
	f.responses[response.ID] = response
	return nil
}

type fakeStudentDirectory struct {
	students map[uint]*model.Student
}

func newFakeStudentDirectory() *fakeStudentDirectory {
	return &fakeStudentDirectory{students: make(map[uint]*model.Student)}
}

func (f *fakeStudentDirectory) add(s *model.Student) {
	f.students[s.ID] = s
}

func (f *fakeStudentDirectory) FindByID(id uint) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}
