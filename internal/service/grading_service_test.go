package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradebookFixture 一名教师、一门课、一次作业（两道题）和一名选课学生
type gradebookFixture struct {
	teacher    *model.User
	student    *model.User
	course     *model.Course
	assignment *model.Assignment
	q1, q2     *model.Question
}

func newGradebookFixture(t *testing.T, env *testEnv) *gradebookFixture {
	t.Helper()
	f := &gradebookFixture{}
	f.teacher = env.signup(t, "Tina", "tina@example.com", model.Teacher)
	f.student = env.signup(t, "Sam", "sam@example.com", model.Student)
	f.course = env.addCourse(t, f.teacher.ID, "Distributed Systems")
	f.assignment = env.addAssignment(t, f.course.ID, "HW1")
	f.q1 = env.addQuestion(t, f.assignment.ID, "Explain CAP.", 5)
	f.q2 = env.addQuestion(t, f.assignment.ID, "Explain Raft.", 10)
	env.enroll(t, f.student.ID, f.course.ID)
	return f
}

func (e *testEnv) grade(t *testing.T, submissionID uint, path string, score float64) {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{"passed": score > 0, "score": score})
	require.NoError(t, err)
	require.NoError(t, e.grading.StoreReportData(submissionID, path, data, score))
}

func TestMakeSubmissionChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	_, err := env.grading.MakeSubmission(9999, f.student.ID, "x")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	_, err = env.grading.MakeSubmission(f.q1.ID, 9999, "x")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	sub := env.submit(t, f.q1.ID, f.student.ID)
	assert.Zero(t, sub.Score)
	assert.Nil(t, sub.ReportPath)

	// 重复作答追加新行，不覆盖历史
	env.submit(t, f.q1.ID, f.student.ID)
	assert.EqualValues(t, 2, env.countRows(t, &model.Submission{}))
}

func TestStoreReportDataUnknownSubmission(t *testing.T) {
	env := newTestEnv(t)

	err := env.grading.StoreReportData(123, "r.json", json.RawMessage(`{}`), 1)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

// 评分回写是 report_path 的唯一写入口，越界路径在这里整体拒绝
func TestStoreReportDataRejectsEscapingPath(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)
	sub := env.submit(t, f.q1.ID, f.student.ID)

	for _, path := range []string{"../escaped.json", "/tmp/escaped.json", ""} {
		err := env.grading.StoreReportData(sub.ID, path, json.RawMessage(`{}`), 5)
		assert.ErrorIs(t, err, util.ErrInvalidReportPath, "reportPath %q", path)
	}

	// 提交保持未评分
	paths, err := env.grading.GetAllReports(f.assignment.ID, f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

// 满分 5+10、得分 5+7 的课程计分板必须渲染为 "12.0/15.0"，
// 该作业的平均得分为 6.0
func TestScoreboardAndAverages(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	s1 := env.submit(t, f.q1.ID, f.student.ID)
	s2 := env.submit(t, f.q2.ID, f.student.ID)
	env.grade(t, s1.ID, "report-1.json", 5)
	env.grade(t, s2.ID, "report-2.json", 7)

	board, err := env.grading.GetStudents(f.course.ID)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, f.student.ID, board[0].UserID)
	assert.Equal(t, "Sam", board[0].Name)
	assert.Equal(t, "12.0/15.0", board[0].Score)

	completed, err := env.grading.GetCompletedAssignments(f.course.ID, f.student.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, f.assignment.ID, completed[0].ID)
	assert.Equal(t, 6.0, completed[0].AverageScore)
}

func TestScoreboardZeroCases(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	// 有题无提交
	board, err := env.grading.GetStudents(f.course.ID)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "0.0/15.0", board[0].Score)

	// 无题无提交的空课程
	empty := env.addCourse(t, f.teacher.ID, "Seminar")
	env.enroll(t, f.student.ID, empty.ID)

	board, err = env.grading.GetStudents(empty.ID)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "0.0/0.0", board[0].Score)
}

// 已完成与未完成必须构成课程作业的一个划分：并集齐全、交集为空
func TestAssignmentCompletionPartition(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	for i := 2; i <= 3; i++ {
		a := env.addAssignment(t, f.course.ID, fmt.Sprintf("HW%d", i))
		env.addQuestion(t, a.ID, "prompt", 5)
	}

	// 只对 HW1 的一道题作答：任意一次提交即视为完成
	env.submit(t, f.q1.ID, f.student.ID)

	completed, err := env.grading.GetCompletedAssignments(f.course.ID, f.student.ID)
	require.NoError(t, err)
	incomplete, err := env.grading.GetIncompleteAssignments(f.course.ID, f.student.ID)
	require.NoError(t, err)

	require.Len(t, completed, 1)
	assert.Equal(t, f.assignment.ID, completed[0].ID)
	require.Len(t, incomplete, 2)

	all, err := env.catalog.GetAssignments(f.course.ID)
	require.NoError(t, err)

	seen := map[uint]bool{}
	for _, a := range completed {
		seen[a.ID] = true
	}
	for _, a := range incomplete {
		assert.False(t, seen[a.ID], "assignment %d in both partitions", a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, len(all))
	for _, a := range all {
		assert.True(t, seen[a.ID], "assignment %d missing from both partitions", a.ID)
	}
}

func TestGetSubmissionsDecodesReports(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	s1 := env.submit(t, f.q1.ID, f.student.ID)
	env.submit(t, f.q2.ID, f.student.ID) // 未评分
	env.grade(t, s1.ID, "report-1.json", 5)

	reports, err := env.grading.GetSubmissions(f.assignment.ID, f.student.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, s1.ID, reports[0].SubmissionID)
	assert.Equal(t, "Explain CAP.", reports[0].Question)
	payload, ok := reports[0].Report.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, payload["passed"])
	assert.Equal(t, 5.0, payload["score"])

	// 未评分的提交报告为空
	assert.Equal(t, "Explain Raft.", reports[1].Question)
	assert.Nil(t, reports[1].Report)
}

func TestGetAllReportsSkipsUnscored(t *testing.T) {
	env := newTestEnv(t)
	f := newGradebookFixture(t, env)

	s1 := env.submit(t, f.q1.ID, f.student.ID)
	s2 := env.submit(t, f.q2.ID, f.student.ID)
	env.submit(t, f.q2.ID, f.student.ID) // 未评分，不产出报告
	env.grade(t, s1.ID, "report-1.json", 5)
	env.grade(t, s2.ID, "report-2.json", 7)

	paths, err := env.grading.GetAllReports(f.assignment.ID, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"report-1.json", "report-2.json"}, paths)
}
