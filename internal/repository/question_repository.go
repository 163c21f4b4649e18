package repository

import (
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) ListByAssignment(assignmentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("id asc").Find(&questions).Error
	return questions, err
}

// DeleteByAssignment 批量删除一次作业下的全部问题。
// 两段式：存在引用这些问题的提交时整体拒绝，绝不留下悬挂的 Submission。
func (r *QuestionRepository) DeleteByAssignment(assignmentID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&model.Question{}).
			Select("id").
			Where("assignment_id = ?", assignmentID)

		var dependents int64
		if err := tx.Model(&model.Submission{}).
			Where("question_id IN (?)", questionIDs).
			Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return util.ErrQuestionsHaveSubmissions
		}

		return tx.Where("assignment_id = ?", assignmentID).Delete(&model.Question{}).Error
	})
}

// SumPointsForCourse 课程满分：课程下所有作业全部问题分值之和，空集记 0
func (r *QuestionRepository) SumPointsForCourse(courseID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN assignments ON assignments.id = questions.assignment_id AND assignments.deleted_at IS NULL").
		Where("assignments.course_id = ?", courseID).
		Select("COALESCE(SUM(questions.points), 0)").
		Scan(&total).Error
	return total, err
}
