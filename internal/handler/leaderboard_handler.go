package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardHandler struct {
	leaderboardLogic *logic.LeaderboardLogic
	lbCache          *cache.LeaderboardCache // 可为 nil
}

func NewLeaderboardHandler(db *gorm.DB, pointsPerBounty int64, lbCache *cache.LeaderboardCache) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardLogic: logic.NewLeaderboardLogic(db, pointsPerBounty),
		lbCache:          lbCache,
	}
}

// GetLeaderboard 获取排行榜,无需认证
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	if h.lbCache != nil {
		if raw, ok := h.lbCache.Get(c.Request.Context()); ok {
			SuccessResponse(c, http.StatusOK, "ok", gin.H{"entries": json.RawMessage(raw)})
			return
		}
	}

	entries, err := h.leaderboardLogic.GetLeaderboard()
	if err != nil {
		RespondError(c, err)
		return
	}

	if h.lbCache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			h.lbCache.Set(c.Request.Context(), raw)
		}
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"entries": entries})
}
