package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"edumall_v1_202608/internal/service"
)

// ==================== 统一响应 ====================

// OK 成功响应：{"success":true, "data":...}
func OK(c *gin.Context, data interface{}) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Fail 按错误类型映射 HTTP 状态
// 已知业务错误给具体状态码；未知错误记日志，对外只给笼统提示
func Fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("请求处理失败")
		c.JSON(status, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusOf 业务错误 -> HTTP 状态映射表
func statusOf(err error) int {
	switch {
	// 400 参数/校验类
	case errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidOldPassword),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrCourseNotPublished),
		errors.Is(err, service.ErrLinkUnreachable):
		return http.StatusBadRequest

	// 401 认证失败
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		return http.StatusUnauthorized

	// 403 权限不足
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// 404 目标不存在
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrWebinarNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound):
		return http.StatusNotFound

	// 409 冲突类
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrWebinarFull),
		errors.Is(err, service.ErrWebinarEnded),
		errors.Is(err, service.ErrCannotDeleteAdmin):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
