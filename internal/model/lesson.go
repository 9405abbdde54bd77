package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	TeacherID   uint          `gorm:"index;not null" json:"teacherId"`
	Teacher     *Teacher      `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Grade       string        `gorm:"size:10;not null" json:"grade"`
	Section     string        `gorm:"size:10;not null" json:"section"`
	CategoryID  uint          `gorm:"index;not null" json:"categoryId"`
	Category    *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Note        string        `gorm:"type:text" json:"note"`
	FileURL     string        `gorm:"size:255" json:"fileUrl"`
	FileName    string        `gorm:"size:255" json:"fileName"`
	FileType    string        `gorm:"size:100" json:"fileType"`
	FileSize    int64         `json:"fileSize"`
	Students    []Student     `gorm:"many2many:lesson_students" json:"students,omitempty"`
	Topics      []LessonTopic `gorm:"foreignKey:LessonID" json:"topics,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonTopic is one curriculum item inside a lesson with the teacher's notes.
type LessonTopic struct {
	BaseModel
	LessonID     uint   `gorm:"index;not null" json:"lessonId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	TeacherNotes string `gorm:"type:text" json:"teacherNotes"`
}

func (LessonTopic) TableName() string {
	return "lesson_topics"
}
