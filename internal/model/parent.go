package model

// swagger:model Parent
type Parent struct {
	BaseModel
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Students  []Student `gorm:"foreignKey:ParentID" json:"students,omitempty"`
}

func (Parent) TableName() string {
	return "parents"
}
