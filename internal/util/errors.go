package util

import "errors"

var (
	// 校验类
	ErrPasswordMismatch = errors.New("两次输入的密码不一致")
	ErrInvalidPoints    = errors.New("invalid point value")

	// 冲突类
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	// 未找到类
	ErrUserNotFound       = errors.New("用户不存在")
	ErrCourseNotFound     = errors.New("course not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// 约束类
	ErrQuestionsHaveSubmissions = errors.New("questions still referenced by submissions")
	ErrPermissionDenied         = errors.New("permission denied")

	// 报告类
	ErrNoReports         = errors.New("no stored reports for this student and assignment")
	ErrInvalidReportPath = errors.New("invalid report path")
)
