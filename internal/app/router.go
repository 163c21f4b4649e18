package app

import (
	"gradebook_backend/docs"
	"gradebook_backend/internal/middleware"
	"gradebook_backend/internal/model"
	"gradebook_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/signup", c.auth.Signup)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config, s.auth))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)

		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/student/courses", c.course.GetStudentCourses)
	rg.GET("/courses/:courseId/name", c.course.GetCourseName)
	rg.GET("/courses/:courseId/assignments", c.assignment.GetAssignments)
	rg.GET("/courses/:courseId/progress", c.grading.GetAssignmentProgress)
	rg.GET("/assignments/:assignmentId", c.assignment.GetAssignment)
	rg.GET("/assignments/:assignmentId/questions", c.assignment.GetQuestions)
	rg.GET("/assignments/:assignmentId/submissions", c.grading.GetSubmissions)
	rg.GET("/questions/:questionId", c.assignment.GetQuestion)

	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/questions/:questionId/submissions", c.grading.MakeSubmission)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.AddCourse)
		teacher.GET("/courses", c.course.GetCourses)
		teacher.POST("/courses/:courseId/students", c.course.EnrollStudent)
		teacher.GET("/courses/:courseId/students", c.course.GetStudents)
		teacher.POST("/courses/:courseId/assignments", c.assignment.AddAssignment)
		teacher.POST("/assignments/:assignmentId/questions", c.assignment.AddQuestion)
		teacher.DELETE("/assignments/:assignmentId/questions", c.assignment.DeleteAllQuestions)
		teacher.PUT("/submissions/:submissionId/report", c.grading.StoreReport)
		teacher.GET("/assignments/:assignmentId/reports", c.report.ListReports)
		teacher.GET("/assignments/:assignmentId/reports/bundle", c.report.DownloadBundle)
		teacher.POST("/reports", c.report.UploadReport)
	}
}
