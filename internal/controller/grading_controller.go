package controller

import (
	"encoding/json"
	"errors"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingController struct {
	GradingService *service.GradingService
}

func NewGradingController(gradingService *service.GradingService) *GradingController {
	return &GradingController{GradingService: gradingService}
}

// swagger:model MakeSubmissionRequest
type MakeSubmissionRequest struct {
	AnswerText string `json:"answerText" binding:"required"`
}

// MakeSubmission godoc
// @Summary 提交作答
// @Description 总是新增一条提交记录，历史作答不会被覆盖
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "问题ID"
// @Param   body body MakeSubmissionRequest true "作答内容"
// @Success 201 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "问题不存在"
// @Router /api/questions/{questionId}/submissions [post]
func (c *GradingController) MakeSubmission(ctx *gin.Context) {
	var req MakeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	questionID := util.MustParseUint(ctx.Param("questionId"))
	submission, err := c.GradingService.MakeSubmission(questionID, claims.UserID, req.AnswerText)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": submission.ID})
}

// swagger:model StoreReportRequest
type StoreReportRequest struct {
	ReportPath string          `json:"reportPath" binding:"required"`
	ReportData json.RawMessage `json:"reportData" binding:"required"`
	Score      float64         `json:"score" binding:"min=0"`
}

// StoreReport godoc
// @Summary 评分回写
// @Description 外部评分完成后写入报告载荷、产物路径与得分；这是分数的唯一写入口
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   submissionId path int true "提交ID"
// @Param   body body StoreReportRequest true "评分结果"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/{submissionId}/report [put]
func (c *GradingController) StoreReport(ctx *gin.Context) {
	var req StoreReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submissionID := util.MustParseUint(ctx.Param("submissionId"))
	err := c.GradingService.StoreReportData(submissionID, req.ReportPath, req.ReportData, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidReportPath):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"stored": true})
}

// GetSubmissions godoc
// @Summary 学生在某次作业下的提交与解码后的报告
// @Tags 评分
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionReport}
// @Router /api/assignments/{assignmentId}/submissions [get]
func (c *GradingController) GetSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	studentID := claims.UserID
	if id := util.MustParseUint(ctx.Query("studentId")); id != 0 && claims.Role == model.Teacher {
		studentID = id
	}

	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	reports, err := c.GradingService.GetSubmissions(assignmentID, studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// GetAssignmentProgress godoc
// @Summary 课程作业的完成划分
// @Description 已完成（任意一题有提交，附平均分）与未完成的作业恰好划分课程全部作业
// @Tags 评分
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/courses/{courseId}/progress [get]
func (c *GradingController) GetAssignmentProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	completed, err := c.GradingService.GetCompletedAssignments(courseID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	incomplete, err := c.GradingService.GetIncompleteAssignments(courseID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"completed":  completed,
		"incomplete": incomplete,
	})
}
