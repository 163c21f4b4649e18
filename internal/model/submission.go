package model

import (
	"encoding/json"
	"time"
)

// Submission 一名学生针对一道问题提交的一次作答。
// 同一 (student, question) 允许多次提交；聚合查询自行决定统计口径。
// ReportPath/ReportData 在后端评分（StoreReportData）之前保持为空，
// Score 在评分之前保持默认 0。评分是单向的：Created(unscored) -> Scored。
// swagger:model Submission
type Submission struct {
	BaseModel
	QuestionID  uint            `gorm:"index;not null" json:"questionId"`
	Question    *Question       `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	StudentID   uint            `gorm:"index;not null" json:"studentId"`
	Student     *User           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	SubmittedAt time.Time       `gorm:"autoCreateTime" json:"submittedAt"`
	ReportPath  *string         `gorm:"size:512" json:"reportPath,omitempty"`
	AnswerText  string          `gorm:"type:text" json:"answerText"`
	Score       float64         `gorm:"default:0" json:"score"`
	ReportData  json.RawMessage `gorm:"type:json" json:"reportData,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
