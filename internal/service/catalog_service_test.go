package service

import (
	"testing"
	"time"

	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCourseRequiresTeacher(t *testing.T) {
	env := newTestEnv(t)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)

	_, err := env.catalog.AddCourse(student.ID, "Algorithms")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.catalog.AddCourse(9999, "Algorithms")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	course, err := env.catalog.AddCourse(teacher.ID, "Algorithms")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, course.TeacherID)

	courses, err := env.catalog.GetCourses(teacher.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algorithms", courses[0].Name)
}

func TestAddAssignmentUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.AddAssignment(42, "HW1", "1", time.Now())
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestEnrollmentIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.addCourse(t, teacher.ID, "Databases")

	created, err := env.catalog.AddStudentToCourse(student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.catalog.AddStudentToCourse(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)

	assert.EqualValues(t, 1, env.countRows(t, &model.Enrollment{}))

	courses, err := env.catalog.GetStudentCourses(student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)
}

func TestEnrollmentRejectsTeachersAndUnknowns(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.addCourse(t, teacher.ID, "Databases")

	_, err := env.catalog.AddStudentToCourse(teacher.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.catalog.AddStudentToCourse(9999, course.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = env.catalog.AddStudentToCourse(student.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAddQuestionValidation(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	course := env.addCourse(t, teacher.ID, "Compilers")
	assignment := env.addAssignment(t, course.ID, "HW1")

	_, err := env.catalog.AddQuestionToAssignment(assignment.ID, "negative", "a", -1)
	assert.ErrorIs(t, err, util.ErrInvalidPoints)

	_, err = env.catalog.AddQuestionToAssignment(9999, "orphan", "a", 5)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)

	question, err := env.catalog.AddQuestionToAssignment(assignment.ID, "What is a DFA?", "a", 5)
	require.NoError(t, err)
	assert.Equal(t, assignment.ID, question.AssignmentID)
}

func TestDeleteAllQuestions(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.addCourse(t, teacher.ID, "Networks")
	assignment := env.addAssignment(t, course.ID, "HW1")
	env.enroll(t, student.ID, course.ID)

	env.addQuestion(t, assignment.ID, "Q1", 5)
	env.addQuestion(t, assignment.ID, "Q2", 10)

	// 无提交时整批删除
	require.NoError(t, env.catalog.DeleteAllQuestions(assignment.ID))
	questions, err := env.grading.GetQuestions(assignment.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)

	// 已有提交时拒绝，题目原样保留
	q := env.addQuestion(t, assignment.ID, "Q3", 5)
	env.submit(t, q.ID, student.ID)

	err = env.catalog.DeleteAllQuestions(assignment.ID)
	assert.ErrorIs(t, err, util.ErrQuestionsHaveSubmissions)

	questions, err = env.grading.GetQuestions(assignment.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	assert.ErrorIs(t, env.catalog.DeleteAllQuestions(9999), util.ErrAssignmentNotFound)
}

func TestCatalogLookups(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina Turner", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.addCourse(t, teacher.ID, "Operating Systems")
	assignment := env.addAssignment(t, course.ID, "HW2")

	name, err := env.catalog.GetCourseName(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Operating Systems", name)

	_, err = env.catalog.GetCourseName(9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	aName, cID, err := env.catalog.GetAssignmentDetails(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, "HW2", aName)
	assert.Equal(t, course.ID, cID)

	teacherName, err := env.catalog.GetTeacherName(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tina Turner", teacherName)

	_, err = env.catalog.GetTeacherName(9999)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)

	id, err := env.catalog.GetStudentUserID("sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, student.ID, id)

	// 教师邮箱不会被当成学生解析
	_, err = env.catalog.GetStudentUserID("tina@example.com")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
