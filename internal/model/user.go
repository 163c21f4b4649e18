package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:64;not null" json:"-"` // sha256 hex digest
	Role     UserRole `gorm:"size:20;default:'student';not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u.Role == Teacher
}
