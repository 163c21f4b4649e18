package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID uint      `gorm:"index;not null" json:"courseId"`
	Course   *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Section  string    `gorm:"size:100" json:"section"` // 自由分组标签，可为空
	DueDate  time.Time `json:"dueDate"`
}

func (Assignment) TableName() string {
	return "assignments"
}
