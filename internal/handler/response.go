package handler

import (
	"errors"
	"net/http"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/logger"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// RespondError 把业务错误映射成HTTP状态码
//
// Forbidden 和 InvalidState 分开返回,客户端需要区分"你不能"和"来不及了"。
// 存储层失败返回500,绝不伪装成空结果。
func RespondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Message: e.Message,
				Field:   e.Field,
			})
		case apperr.KindNotFound:
			ErrorResponse(c, http.StatusNotFound, "资源不存在")
		case apperr.KindInvalidState:
			ErrorResponse(c, http.StatusConflict, e.Message)
		case apperr.KindForbidden:
			ErrorResponse(c, http.StatusForbidden, e.Message)
		default:
			logger.Error("Storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			ErrorResponse(c, http.StatusInternalServerError, "内部错误")
		}
		return
	}

	logger.Error("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	ErrorResponse(c, http.StatusInternalServerError, "内部错误")
}
