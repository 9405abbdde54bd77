package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	ClassLevel  string    `gorm:"size:10;not null" json:"classLevel"`
	Section     string    `gorm:"size:10;not null" json:"section"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`
	Description string    `gorm:"type:text;not null" json:"description"`
	TeacherID   uint      `gorm:"index;not null" json:"teacherId"`
	Teacher     *Teacher  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CategoryID  uint      `gorm:"index;not null" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
