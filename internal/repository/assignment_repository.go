package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ?", courseID).Order("id asc").Find(&assignments).Error
	return assignments, err
}

// TeacherName 解析 Assignment -> Course -> 授课教师姓名
func (r *AssignmentRepository) TeacherName(assignmentID uint) (string, error) {
	var name string
	err := r.DB.Model(&model.User{}).
		Select("users.name").
		Joins("JOIN courses ON courses.teacher_id = users.id AND courses.deleted_at IS NULL").
		Joins("JOIN assignments ON assignments.course_id = courses.id AND assignments.deleted_at IS NULL").
		Where("assignments.id = ?", assignmentID).
		Take(&name).Error
	return name, err
}

// submittedAssignments 学生在某课程下提交过任意一题的作业集合（子查询）
func (r *AssignmentRepository) submittedAssignments(studentID uint) *gorm.DB {
	submitted := r.DB.Model(&model.Submission{}).
		Select("question_id").
		Where("student_id = ?", studentID)
	return r.DB.Model(&model.Question{}).
		Select("assignment_id").
		Where("id IN (?)", submitted)
}

// ListCompleted 学生已提交过至少一题的作业。
// “完成”的口径是任意一题有提交，与聚合查询的历史行为保持一致。
func (r *AssignmentRepository) ListCompleted(courseID, studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ? AND id IN (?)", courseID, r.submittedAssignments(studentID)).
		Order("id asc").
		Find(&assignments).Error
	return assignments, err
}

// ListIncomplete 与 ListCompleted 互补，二者恰好划分课程的全部作业
func (r *AssignmentRepository) ListIncomplete(courseID, studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ? AND id NOT IN (?)", courseID, r.submittedAssignments(studentID)).
		Order("id asc").
		Find(&assignments).Error
	return assignments, err
}
