package model

// Question 作业下的可评分单元；一次作业的满分是其所有问题分值之和。
// swagger:model Question
type Question struct {
	BaseModel
	AssignmentID uint        `gorm:"index;not null" json:"assignmentId"`
	Assignment   *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Prompt       string      `gorm:"type:text;not null" json:"prompt"`
	Answer       string      `gorm:"type:text;not null" json:"answer"` // 参考答案
	Points       float64     `gorm:"default:0" json:"points"`
}

func (Question) TableName() string {
	return "questions"
}
