package model

// Enrollment 学生与课程的多对多成员关系。
// (student_id, course_id) 上的唯一索引保证同一学生不会被重复选课。
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID uint    `gorm:"uniqueIndex:idx_enrollment_student_course;not null" json:"studentId"`
	Student   *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID  uint    `gorm:"uniqueIndex:idx_enrollment_student_course;not null" json:"courseId"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
