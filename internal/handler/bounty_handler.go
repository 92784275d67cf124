package handler

import (
	"fmt"
	"net/http"

	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/logic"
	"github.com/blues/ideachain/internal/middleware"
	"github.com/blues/ideachain/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BountyHandler struct {
	bountyLogic *logic.BountyLogic
	reviewLogic *logic.ReviewLogic
	recorder    *activity.Recorder
	lbCache     *cache.LeaderboardCache // 可为 nil
}

func NewBountyHandler(db *gorm.DB, recorder *activity.Recorder, lbCache *cache.LeaderboardCache) *BountyHandler {
	return &BountyHandler{
		bountyLogic: logic.NewBountyLogic(db),
		reviewLogic: logic.NewReviewLogic(db),
		recorder:    recorder,
		lbCache:     lbCache,
	}
}

// CreateBounty 创建悬赏
func (h *BountyHandler) CreateBounty(c *gin.Context) {
	var req CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	bounty, err := h.bountyLogic.CreateBounty(req.IdeaId, callerId, req.Title, req.Description, req.Reward, req.DeadlineDays)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivityBountyCreated, callerId, "bounty", bounty.Id, bounty.Title)

	SuccessResponse(c, http.StatusCreated, "悬赏创建成功", gin.H{"bounty": bounty})
}

// GetBounties 获取悬赏列表
func (h *BountyHandler) GetBounties(c *gin.Context) {
	bounties, err := h.bountyLogic.ListBounties(c.Query("idea_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"bounties": bounties})
}

// CancelBounty 取消悬赏(仅作者)
func (h *BountyHandler) CancelBounty(c *gin.Context) {
	id, ok := parseIdParam(c, "id")
	if !ok {
		return
	}

	callerId := middleware.CallerId(c)
	bounty, err := h.bountyLogic.CancelBounty(id, callerId)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivityBountyCancelled, callerId, "bounty", bounty.Id, bounty.Title)

	SuccessResponse(c, http.StatusOK, "悬赏已取消", gin.H{"bounty": bounty})
}

// SubmitCode 向悬赏提交代码
func (h *BountyHandler) SubmitCode(c *gin.Context) {
	id, ok := parseIdParam(c, "id")
	if !ok {
		return
	}

	var req SubmitCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	submission, err := h.bountyLogic.SubmitCode(id, callerId, req.PrLink, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivitySubmissionCreated, callerId, "submission", submission.Id, submission.PrLink)

	SuccessResponse(c, http.StatusCreated, "提交成功", gin.H{"submission": submission})
}

// GetSubmissions 获取悬赏的提交列表
func (h *BountyHandler) GetSubmissions(c *gin.Context) {
	id, ok := parseIdParam(c, "id")
	if !ok {
		return
	}

	submissions, err := h.bountyLogic.ListSubmissions(id)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"submissions": submissions})
}

// VoteOnSubmission 对提交投评审票
func (h *BountyHandler) VoteOnSubmission(c *gin.Context) {
	bountyId, ok := parseIdParam(c, "id")
	if !ok {
		return
	}
	submissionId, ok := parseIdParam(c, "sid")
	if !ok {
		return
	}

	var req ReviewVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	result, err := h.reviewLogic.VoteOnSubmission(bountyId, submissionId, callerId, model.ReviewChoice(req.Choice))
	if err != nil {
		RespondError(c, err)
		return
	}

	if result.Changed {
		h.recorder.Record(model.ActivitySubmissionVote, callerId, "submission", submissionId, fmt.Sprintf("choice=%s", result.Choice))
	}

	SuccessResponse(c, http.StatusOK, "评审成功", result)
}

// AcceptSubmission 采纳提交(仅悬赏作者)
func (h *BountyHandler) AcceptSubmission(c *gin.Context) {
	bountyId, ok := parseIdParam(c, "id")
	if !ok {
		return
	}
	submissionId, ok := parseIdParam(c, "sid")
	if !ok {
		return
	}

	callerId := middleware.CallerId(c)
	submission, err := h.reviewLogic.AcceptSubmission(bountyId, submissionId, callerId)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivitySubmissionAccepted, callerId, "submission", submission.Id, submission.PrLink)

	// 采纳会改变排行榜,让缓存快照失效
	if h.lbCache != nil {
		h.lbCache.Invalidate(c.Request.Context())
	}

	SuccessResponse(c, http.StatusOK, "已采纳提交", gin.H{"submission": submission})
}
