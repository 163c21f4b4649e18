package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gradebook_backend/internal/config"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv 用内存 sqlite 搭起完整的服务栈，按测试名隔离数据库
type testEnv struct {
	db      *gorm.DB
	cfg     *config.Config
	auth    *AuthService
	catalog *CatalogService
	grading *GradingService
	reports *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-signing-secret-0123456789"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Reports.Type = "local"
	cfg.Reports.Dir = t.TempDir()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	return &testEnv{
		db:      db,
		cfg:     cfg,
		auth:    NewAuthService(userRepo, nil, config.NewStore(cfg)),
		catalog: NewCatalogService(courseRepo, assignmentRepo, questionRepo, enrollmentRepo, userRepo),
		grading: NewGradingService(questionRepo, submissionRepo, assignmentRepo, enrollmentRepo, userRepo),
		reports: NewReportService(submissionRepo, cfg),
	}
}

func (e *testEnv) signup(t *testing.T, name, email string, role model.UserRole) *model.User {
	t.Helper()
	user, err := e.auth.Signup(name, email, "pa55word", "pa55word", role)
	require.NoError(t, err)
	return user
}

func (e *testEnv) addCourse(t *testing.T, teacherID uint, name string) *model.Course {
	t.Helper()
	course, err := e.catalog.AddCourse(teacherID, name)
	require.NoError(t, err)
	return course
}

func (e *testEnv) addAssignment(t *testing.T, courseID uint, name string) *model.Assignment {
	t.Helper()
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	assignment, err := e.catalog.AddAssignment(courseID, name, "1", due)
	require.NoError(t, err)
	return assignment
}

func (e *testEnv) addQuestion(t *testing.T, assignmentID uint, prompt string, points float64) *model.Question {
	t.Helper()
	question, err := e.catalog.AddQuestionToAssignment(assignmentID, prompt, "expected answer", points)
	require.NoError(t, err)
	return question
}

func (e *testEnv) enroll(t *testing.T, studentID, courseID uint) {
	t.Helper()
	_, err := e.catalog.AddStudentToCourse(studentID, courseID)
	require.NoError(t, err)
}

func (e *testEnv) submit(t *testing.T, questionID, studentID uint) *model.Submission {
	t.Helper()
	submission, err := e.grading.MakeSubmission(questionID, studentID, "my answer")
	require.NoError(t, err)
	return submission
}

func (e *testEnv) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}
