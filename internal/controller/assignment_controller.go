package controller

import (
	"errors"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	CatalogService *service.CatalogService
	GradingService *service.GradingService
}

func NewAssignmentController(catalogService *service.CatalogService, gradingService *service.GradingService) *AssignmentController {
	return &AssignmentController{
		CatalogService: catalogService,
		GradingService: gradingService,
	}
}

// swagger:model AddAssignmentRequest
type AddAssignmentRequest struct {
	Name    string `json:"name" binding:"required"`
	Section string `json:"section"`
	DueDate string `json:"dueDate" binding:"required"` // "2006-01-02"
}

// AddAssignment godoc
// @Summary 创建作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Param   body body AddAssignmentRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId}/assignments [post]
func (c *AssignmentController) AddAssignment(ctx *gin.Context) {
	var req AddAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dueDate, err := time.Parse(util.DateFormat, req.DueDate)
	if err != nil {
		util.BadRequest(ctx, "dueDate must be formatted as "+util.DateFormat)
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	assignment, err := c.CatalogService.AddAssignment(courseID, req.Name, req.Section, dueDate)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, assignment)
}

// GetAssignments godoc
// @Summary 课程下的作业列表
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{courseId}/assignments [get]
func (c *AssignmentController) GetAssignments(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	assignments, err := c.CatalogService.GetAssignments(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// GetAssignment godoc
// @Summary 作业详情
// @Description 返回作业本体及其授课教师姓名
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{assignmentId} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	assignment, err := c.CatalogService.GetAssignment(assignmentID)
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	teacherName, err := c.CatalogService.GetTeacherName(assignmentID)
	if err != nil && !errors.Is(err, util.ErrAssignmentNotFound) {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"assignment":  assignment,
		"teacherName": teacherName,
	})
}

// swagger:model AddQuestionRequest
type AddQuestionRequest struct {
	Prompt string  `json:"prompt" binding:"required"`
	Answer string  `json:"answer" binding:"required"`
	Points float64 `json:"points" binding:"min=0"`
}

// AddQuestion godoc
// @Summary 向作业添加问题
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Param   body body AddQuestionRequest true "题干、参考答案与分值"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{assignmentId}/questions [post]
func (c *AssignmentController) AddQuestion(ctx *gin.Context) {
	var req AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	question, err := c.CatalogService.AddQuestionToAssignment(assignmentID, req.Prompt, req.Answer, req.Points)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidPoints):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// GetQuestions godoc
// @Summary 作业下的问题列表
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/assignments/{assignmentId}/questions [get]
func (c *AssignmentController) GetQuestions(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	questions, err := c.GradingService.GetQuestions(assignmentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// DeleteAllQuestions godoc
// @Summary 清空作业题库
// @Description 存在引用这些问题的提交时拒绝删除
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "作业不存在"
// @Failure 409 {object} util.Response "已有提交引用题库"
// @Router /api/assignments/{assignmentId}/questions [delete]
func (c *AssignmentController) DeleteAllQuestions(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	if err := c.CatalogService.DeleteAllQuestions(assignmentID); err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionsHaveSubmissions):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// GetQuestion godoc
// @Summary 问题详情
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "问题ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{questionId} [get]
func (c *AssignmentController) GetQuestion(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("questionId"))
	question, err := c.GradingService.GetQuestion(questionID)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}
