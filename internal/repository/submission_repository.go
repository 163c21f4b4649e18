package repository

import (
	"encoding/json"
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create 总是插入新行，保留同一 (student, question) 的历史提交
func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

// StoreReport 评分回写：唯一的分数写入口，Created(unscored) -> Scored 单向迁移
func (r *SubmissionRepository) StoreReport(id uint, reportPath string, reportData json.RawMessage, score float64) error {
	result := r.DB.Model(&model.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"report_path": reportPath,
			"report_data": reportData,
			"score":       score,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SubmissionRow 某学生在某次作业下的一次提交，连同题干
type SubmissionRow struct {
	model.Submission
	QuestionPrompt string `gorm:"column:question_prompt"`
}

func (r *SubmissionRepository) ListForAssignmentStudent(assignmentID, studentID uint) ([]SubmissionRow, error) {
	var rows []SubmissionRow
	err := r.DB.Model(&model.Submission{}).
		Select("submissions.*, questions.prompt AS question_prompt").
		Joins("JOIN questions ON questions.id = submissions.question_id AND questions.deleted_at IS NULL").
		Where("questions.assignment_id = ? AND submissions.student_id = ?", assignmentID, studentID).
		Order("submissions.id asc").
		Scan(&rows).Error
	return rows, err
}

// ReportPaths 学生在某次作业下已落盘的报告产物路径，按存储顺序返回
func (r *SubmissionRepository) ReportPaths(assignmentID, studentID uint) ([]string, error) {
	var paths []string
	err := r.DB.Model(&model.Submission{}).
		Select("submissions.report_path").
		Joins("JOIN questions ON questions.id = submissions.question_id AND questions.deleted_at IS NULL").
		Where("questions.assignment_id = ? AND submissions.student_id = ? AND submissions.report_path IS NOT NULL", assignmentID, studentID).
		Order("submissions.id asc").
		Scan(&paths).Error
	return paths, err
}

// SumScoreForCourse 学生在课程下全部提交的得分总和，SQL NULL 归一化为 0
func (r *SubmissionRepository) SumScoreForCourse(studentID, courseID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&model.Submission{}).
		Joins("JOIN questions ON questions.id = submissions.question_id AND questions.deleted_at IS NULL").
		Joins("JOIN assignments ON assignments.id = questions.assignment_id AND assignments.deleted_at IS NULL").
		Where("submissions.student_id = ? AND assignments.course_id = ?", studentID, courseID).
		Select("COALESCE(SUM(submissions.score), 0)").
		Scan(&total).Error
	return total, err
}

// AvgScoreForAssignment 学生在一次作业下全部提交的平均得分
func (r *SubmissionRepository) AvgScoreForAssignment(studentID, assignmentID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Submission{}).
		Joins("JOIN questions ON questions.id = submissions.question_id AND questions.deleted_at IS NULL").
		Where("submissions.student_id = ? AND questions.assignment_id = ?", studentID, assignmentID).
		Select("COALESCE(AVG(submissions.score), 0)").
		Scan(&avg).Error
	return avg, err
}

// CountForAssignment 引用某次作业问题的提交数，删除问题前的依赖检查用
func (r *SubmissionRepository) CountForAssignment(assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Joins("JOIN questions ON questions.id = submissions.question_id AND questions.deleted_at IS NULL").
		Where("questions.assignment_id = ?", assignmentID).
		Count(&count).Error
	return count, err
}
