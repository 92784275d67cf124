package handler

import (
	"net/http"
	"time"

	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/logic"
	"github.com/blues/ideachain/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userLogic *logic.UserLogic
	authCfg   config.AuthConfig
}

func NewUserHandler(db *gorm.DB, authCfg config.AuthConfig) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db),
		authCfg:   authCfg,
	}
}

// Register 注册用户并签发token
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.Register(req.Username, req.AvatarURL)
	if err != nil {
		RespondError(c, err)
		return
	}

	ttl := time.Duration(h.authCfg.TokenTTLHours) * time.Hour
	token, err := middleware.IssueToken([]byte(h.authCfg.JwtSecret), user.Id, ttl)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", gin.H{
		"user":  user,
		"token": token,
	})
}
