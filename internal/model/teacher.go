package model

// swagger:model Teacher
type Teacher struct {
	BaseModel
	FirstName            string    `gorm:"size:100;not null" json:"firstName"`
	LastName             string    `gorm:"size:100;not null" json:"lastName"`
	Email                string    `gorm:"size:100;unique;not null" json:"email"`
	Password             string    `gorm:"size:100;not null" json:"-"`
	Phone                string    `gorm:"size:30" json:"phone"`
	BranchID             uint      `gorm:"index" json:"branchId"` // subject category taught
	Branch               *Category `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	ProfileImageURL      string    `gorm:"size:255" json:"profileImageUrl"`
	ProfileImageFilename string    `gorm:"size:255" json:"-"`
}

func (Teacher) TableName() string {
	return "teachers"
}
