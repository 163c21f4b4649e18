package controller

import (
	"errors"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CatalogService *service.CatalogService
	GradingService *service.GradingService
}

func NewCourseController(catalogService *service.CatalogService, gradingService *service.GradingService) *CourseController {
	return &CourseController{
		CatalogService: catalogService,
		GradingService: gradingService,
	}
}

// swagger:model AddCourseRequest
type AddCourseRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddCourse godoc
// @Summary 创建课程
// @Description 以当前教师为课程归属人创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
	var req AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CatalogService.AddCourse(claims.UserID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, course)
}

// GetCourses godoc
// @Summary 教师名下的课程列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CatalogService.GetCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetStudentCourses godoc
// @Summary 学生已选的课程列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/student/courses [get]
func (c *CourseController) GetStudentCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CatalogService.GetStudentCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	StudentID    uint   `json:"studentId"`
	StudentEmail string `json:"studentEmail"`
}

// EnrollStudent godoc
// @Summary 选课
// @Description 将学生加入课程；重复选课幂等，不会产生重复记录
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Param   body body EnrollRequest true "学生ID或邮箱"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/students [post]
func (c *CourseController) EnrollStudent(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	studentID := req.StudentID
	if studentID == 0 && req.StudentEmail != "" {
		id, err := c.CatalogService.GetStudentUserID(req.StudentEmail)
		if err != nil {
			util.NotFound(ctx)
			return
		}
		studentID = id
	}
	if studentID == 0 {
		util.BadRequest(ctx, "studentId or studentEmail is required")
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	created, err := c.CatalogService.AddStudentToCourse(studentID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"enrolled": true, "created": created})
}

// GetStudents godoc
// @Summary 课程计分板
// @Description 每名选课学生的 "earned/possible" 得分汇总
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.StudentScore}
// @Router /api/courses/{courseId}/students [get]
func (c *CourseController) GetStudents(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	board, err := c.GradingService.GetStudents(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// GetCourseName godoc
// @Summary 课程名称
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/name [get]
func (c *CourseController) GetCourseName(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	name, err := c.CatalogService.GetCourseName(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"name": name})
}
