package model

// Course 归属于唯一的授课教师（创建者）
// swagger:model Course
type Course struct {
	BaseModel
	TeacherID uint   `gorm:"index;not null" json:"teacherId"`
	Teacher   *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Name      string `gorm:"size:255;not null" json:"name"`
}

func (Course) TableName() string {
	return "courses"
}
