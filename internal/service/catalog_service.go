package service

import (
	"errors"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// CatalogService 课程、作业、选课与题库的维护入口。
// 所有插入先校验被引用的行存在，杜绝悬挂外键。
type CatalogService struct {
	CourseRepo     *repository.CourseRepository
	AssignmentRepo *repository.AssignmentRepository
	QuestionRepo   *repository.QuestionRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	assignmentRepo *repository.AssignmentRepository,
	questionRepo *repository.QuestionRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
) *CatalogService {
	return &CatalogService{
		CourseRepo:     courseRepo,
		AssignmentRepo: assignmentRepo,
		QuestionRepo:   questionRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
	}
}

func (s *CatalogService) AddCourse(teacherID uint, name string) (*model.Course, error) {
	teacher, err := s.UserRepo.FindByID(teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if !teacher.IsTeacher() {
		return nil, util.ErrPermissionDenied
	}

	course := &model.Course{TeacherID: teacherID, Name: name}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) AddAssignment(courseID uint, name, section string, dueDate time.Time) (*model.Assignment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID: courseID,
		Name:     name,
		Section:  section,
		DueDate:  dueDate,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// AddStudentToCourse 幂等选课；重复调用返回 created=false 而非报错
func (s *CatalogService) AddStudentToCourse(studentID, courseID uint) (bool, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrUserNotFound
		}
		return false, err
	}
	if student.IsTeacher() {
		return false, util.ErrPermissionDenied
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrCourseNotFound
		}
		return false, err
	}

	return s.EnrollmentRepo.Enroll(studentID, courseID)
}

func (s *CatalogService) AddQuestionToAssignment(assignmentID uint, prompt, answer string, points float64) (*model.Question, error) {
	if points < 0 {
		return nil, util.ErrInvalidPoints
	}
	if _, err := s.AssignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	question := &model.Question{
		AssignmentID: assignmentID,
		Prompt:       prompt,
		Answer:       answer,
		Points:       points,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteAllQuestions 清空一次作业的题库。
// 已有提交引用这些问题时拒绝删除（util.ErrQuestionsHaveSubmissions）。
func (s *CatalogService) DeleteAllQuestions(assignmentID uint) error {
	if _, err := s.AssignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssignmentNotFound
		}
		return err
	}
	return s.QuestionRepo.DeleteByAssignment(assignmentID)
}

func (s *CatalogService) GetCourses(teacherID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByTeacher(teacherID)
}

func (s *CatalogService) GetStudentCourses(studentID uint) ([]model.Course, error) {
	return s.EnrollmentRepo.ListCourses(studentID)
}

func (s *CatalogService) GetCourseName(courseID uint) (string, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrCourseNotFound
		}
		return "", err
	}
	return course.Name, nil
}

func (s *CatalogService) GetAssignments(courseID uint) ([]model.Assignment, error) {
	return s.AssignmentRepo.ListByCourse(courseID)
}

func (s *CatalogService) GetAssignment(assignmentID uint) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// GetAssignmentDetails (Name, CourseID) 二元组视图
func (s *CatalogService) GetAssignmentDetails(assignmentID uint) (string, uint, error) {
	assignment, err := s.GetAssignment(assignmentID)
	if err != nil {
		return "", 0, err
	}
	return assignment.Name, assignment.CourseID, nil
}

func (s *CatalogService) GetTeacherName(assignmentID uint) (string, error) {
	name, err := s.AssignmentRepo.TeacherName(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrAssignmentNotFound
		}
		return "", err
	}
	return name, nil
}

// GetStudentUserID 按邮箱解析学生账号
func (s *CatalogService) GetStudentUserID(email string) (uint, error) {
	student, err := s.UserRepo.FindStudentByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrUserNotFound
		}
		return 0, err
	}
	return student.ID, nil
}
