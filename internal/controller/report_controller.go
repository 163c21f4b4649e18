package controller

import (
	"errors"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportController struct {
	ReportService  *service.ReportService
	StorageService *service.StorageService
	GradingService *service.GradingService
}

func NewReportController(reportService *service.ReportService, storageService *service.StorageService, gradingService *service.GradingService) *ReportController {
	return &ReportController{
		ReportService:  reportService,
		StorageService: storageService,
		GradingService: gradingService,
	}
}

// ListReports godoc
// @Summary 学生在某次作业下的报告产物路径
// @Tags 报告
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Param   studentId query int true "学生ID"
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/assignments/{assignmentId}/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	studentID := util.MustParseUint(ctx.Query("studentId"))

	paths, err := c.GradingService.GetAllReports(assignmentID, studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// DownloadBundle godoc
// @Summary 打包下载学生的全部评分报告
// @Description 单份报告直接返回原文件，多份打包成新的 zip 归档
// @Tags 报告
// @Produce  application/zip
// @Security ApiKeyAuth
// @Param   assignmentId path int true "作业ID"
// @Param   studentId query int true "学生ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response "没有可下载的报告"
// @Router /api/assignments/{assignmentId}/reports/bundle [get]
func (c *ReportController) DownloadBundle(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))
	studentID := util.MustParseUint(ctx.Query("studentId"))

	name, err := c.ReportService.BundleStudentReports(assignmentID, studentID)
	if err != nil {
		if errors.Is(err, util.ErrNoReports) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.FileAttachment(c.ReportService.ResolvePath(name), name)
}

// UploadReport godoc
// @Summary 上传评分报告产物
// @Description 评分流水线上传产物文件，返回可写入提交记录的相对路径
// @Tags 报告
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "报告文件"
// @Success 201 {object} util.Response{data=object}
// @Router /api/reports [post]
func (c *ReportController) UploadReport(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	// 服务端生成存储名，客户端文件名只保留扩展名
	name, err := c.StorageService.Save(
		ctx.Request.Context(),
		uuid.New().String()+filepath.Ext(fileHeader.Filename),
		src,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"reportPath": name})
}
