package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/blueprint"
	"github.com/blues/ideachain/internal/logic"
	"github.com/blues/ideachain/internal/middleware"
	"github.com/blues/ideachain/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IdeaHandler struct {
	ideaLogic *logic.IdeaLogic
	recorder  *activity.Recorder
}

func NewIdeaHandler(db *gorm.DB, generator blueprint.Generator, recorder *activity.Recorder) *IdeaHandler {
	return &IdeaHandler{
		ideaLogic: logic.NewIdeaLogic(db, generator),
		recorder:  recorder,
	}
}

// CreateIdea 创建创意
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	idea, err := h.ideaLogic.CreateIdea(c.Request.Context(), callerId, req.Title, req.Summary)
	if err != nil {
		if errors.Is(err, blueprint.ErrGenerateFailed) {
			ErrorResponse(c, http.StatusBadGateway, "蓝图生成失败,请稍后重试")
			return
		}
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivityIdeaCreated, callerId, "idea", idea.Id, idea.Title)

	SuccessResponse(c, http.StatusCreated, "创意创建成功", gin.H{"idea": idea})
}

// GetIdeas 获取创意列表
func (h *IdeaHandler) GetIdeas(c *gin.Context) {
	ideas, err := h.ideaLogic.ListIdeas()
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"ideas": ideas})
}

// parseIdParam 解析路径里的数字ID
func parseIdParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的ID")
		return 0, false
	}
	return id, true
}
