package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/apperr"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	recorder *activity.Recorder
}

func NewActivityHandler(recorder *activity.Recorder) *ActivityHandler {
	return &ActivityHandler{recorder: recorder}
}

// GetActivities 获取最近的治理活动
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.recorder.Recent(limit)
	if err != nil {
		RespondError(c, apperr.Storage(err))
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"activities": entries})
}
