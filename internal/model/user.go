package model

// swagger:model User
type User struct {
	BaseModel
	Email     string `gorm:"size:100;unique;not null" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
}

func (User) TableName() string {
	return "users"
}
