package model

// swagger:model Student
type Student struct {
	BaseModel
	FirstName    string `gorm:"size:100;not null" json:"firstName"`
	LastName     string `gorm:"size:100;not null" json:"lastName"`
	Email        string `gorm:"size:100;unique;not null" json:"email"`
	Password     string `gorm:"size:100;not null" json:"-"`
	SchoolNumber string `gorm:"size:20;unique;not null" json:"schoolNumber"`
	ClassLevel   string `gorm:"size:10;not null;default:'5'" json:"classLevel"` // 5-8
	Section      string `gorm:"size:10;not null;default:'A'" json:"section"`    // A-C
	ParentID     *uint  `gorm:"index" json:"parentId,omitempty"`
	Avatar       string `gorm:"size:255" json:"avatar"`
}

func (Student) TableName() string {
	return "students"
}
