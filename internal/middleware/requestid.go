package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIdHeader = "X-Request-Id"

// RequestId 为每个请求生成/透传请求ID,方便串联日志
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Header(requestIdHeader, id)
		c.Next()
	}
}
