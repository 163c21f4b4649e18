package repository

import (
	"errors"

	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll 幂等选课：已存在的 (student, course) 组合不会重复插入，
// 并发竞争由 (student_id, course_id) 唯一索引兜底。
// 返回值标记本次调用是否真正建立了新的选课关系。
func (r *EnrollmentRepository) Enroll(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err = r.DB.Create(&model.Enrollment{StudentID: studentID, CourseID: courseID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) ListCourses(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Model(&model.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id AND enrollments.deleted_at IS NULL").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.id asc").
		Find(&courses).Error
	return courses, err
}

func (r *EnrollmentRepository) ListStudents(courseID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Model(&model.User{}).
		Joins("JOIN enrollments ON enrollments.student_id = users.id AND enrollments.deleted_at IS NULL").
		Where("enrollments.course_id = ?", courseID).
		Order("users.id asc").
		Find(&students).Error
	return students, err
}
