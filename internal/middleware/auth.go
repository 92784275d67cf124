package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 引擎不做登录,只把请求凭证解析成用户ID。
// 上下文里没有该键即为匿名调用者。
const callerIdKey = "callerId"

// IssueToken 为用户签发 bearer token
func IssueToken(secret []byte, userId int64, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userId, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// parseToken 解析 Authorization 头,失败或缺失返回0(匿名)
func parseToken(c *gin.Context, secret []byte) int64 {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0
	}

	userId, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return userId
}

// RequireAuth 写路径中间件,未认证直接拒绝
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := parseToken(c, secret)
		if userId == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "未认证",
			})
			return
		}
		c.Set(callerIdKey, userId)
		c.Next()
	}
}

// OptionalAuth 读路径中间件,匿名放行,已认证则注入身份
// 用于"你的投票"这类按调用者标注的读取
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userId := parseToken(c, secret); userId != 0 {
			c.Set(callerIdKey, userId)
		}
		c.Next()
	}
}

// CallerId 取当前调用者ID,匿名返回0
func CallerId(c *gin.Context) int64 {
	return c.GetInt64(callerIdKey)
}
