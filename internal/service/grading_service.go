package service

import (
	"encoding/json"
	"errors"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"gradebook_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// GradingService 提交生命周期与成绩聚合。
// 所有成绩都是派生读，任何层级都不冗余存储聚合结果。
type GradingService struct {
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
}

func NewGradingService(
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
) *GradingService {
	return &GradingService{
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
	}
}

func (s *GradingService) GetQuestions(assignmentID uint) ([]model.Question, error) {
	return s.QuestionRepo.ListByAssignment(assignmentID)
}

func (s *GradingService) GetQuestion(questionID uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

// MakeSubmission 总是插入新行，不覆盖历史作答；
// 分数保持默认 0，报告字段保持为空，等待评分回写。
func (s *GradingService) MakeSubmission(questionID, studentID uint, answerText string) (*model.Submission, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	submission := &model.Submission{
		QuestionID: questionID,
		StudentID:  studentID,
		AnswerText: answerText,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.Inc()
	return submission, nil
}

// StoreReportData 评分回写，分数的唯一写入路径。
// reportPath 必须落在报告根目录之内，越界路径整体拒绝。
func (s *GradingService) StoreReportData(submissionID uint, reportPath string, reportData json.RawMessage, score float64) error {
	if !util.SafeRelPath(reportPath) {
		return util.ErrInvalidReportPath
	}
	err := s.SubmissionRepo.StoreReport(submissionID, reportPath, reportData, score)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrSubmissionNotFound
	}
	return err
}

// CompletedAssignment 已完成作业附带该生全部提交的平均得分（两位小数）
type CompletedAssignment struct {
	model.Assignment
	AverageScore float64 `json:"averageScore"`
}

func (s *GradingService) GetCompletedAssignments(courseID, studentID uint) ([]CompletedAssignment, error) {
	assignments, err := s.AssignmentRepo.ListCompleted(courseID, studentID)
	if err != nil {
		return nil, err
	}

	completed := make([]CompletedAssignment, 0, len(assignments))
	for _, a := range assignments {
		avg, err := s.SubmissionRepo.AvgScoreForAssignment(studentID, a.ID)
		if err != nil {
			return nil, err
		}
		completed = append(completed, CompletedAssignment{
			Assignment:   a,
			AverageScore: util.Round2(avg),
		})
	}
	return completed, nil
}

func (s *GradingService) GetIncompleteAssignments(courseID, studentID uint) ([]model.Assignment, error) {
	return s.AssignmentRepo.ListIncomplete(courseID, studentID)
}

// StudentScore 课程计分板中的一行
type StudentScore struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Score  string `json:"score"` // "earned/possible" 字面量
}

// GetStudents 课程计分板：每名选课学生的 earned/possible。
// possible 为课程下全部问题分值之和，earned 为该生全部提交得分之和；
// 无问题或无提交时相应一侧记 0。
func (s *GradingService) GetStudents(courseID uint) ([]StudentScore, error) {
	students, err := s.EnrollmentRepo.ListStudents(courseID)
	if err != nil {
		return nil, err
	}

	possible, err := s.QuestionRepo.SumPointsForCourse(courseID)
	if err != nil {
		return nil, err
	}

	board := make([]StudentScore, 0, len(students))
	for _, student := range students {
		earned, err := s.SubmissionRepo.SumScoreForCourse(student.ID, courseID)
		if err != nil {
			return nil, err
		}
		board = append(board, StudentScore{
			UserID: student.ID,
			Name:   student.Name,
			Email:  student.Email,
			Score:  util.FormatRatio(earned, possible),
		})
	}
	return board, nil
}

// SubmissionReport 一次提交的结构化报告与题干
type SubmissionReport struct {
	SubmissionID uint        `json:"submissionId"`
	Report       interface{} `json:"report"` // 解码后的报告载荷，未评分为 nil
	Question     string      `json:"question"`
}

func (s *GradingService) GetSubmissions(assignmentID, studentID uint) ([]SubmissionReport, error) {
	rows, err := s.SubmissionRepo.ListForAssignmentStudent(assignmentID, studentID)
	if err != nil {
		return nil, err
	}

	reports := make([]SubmissionReport, 0, len(rows))
	for _, row := range rows {
		var payload interface{}
		if len(row.ReportData) > 0 {
			if err := json.Unmarshal(row.ReportData, &payload); err != nil {
				return nil, err
			}
		}
		reports = append(reports, SubmissionReport{
			SubmissionID: row.ID,
			Report:       payload,
			Question:     row.QuestionPrompt,
		})
	}
	return reports, nil
}

// GetAllReports 学生在某次作业下已存储的报告产物路径
func (s *GradingService) GetAllReports(assignmentID, studentID uint) ([]string, error) {
	return s.SubmissionRepo.ReportPaths(assignmentID, studentID)
}
