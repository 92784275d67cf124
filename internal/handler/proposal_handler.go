package handler

import (
	"fmt"
	"net/http"

	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/logic"
	"github.com/blues/ideachain/internal/middleware"
	"github.com/blues/ideachain/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProposalHandler struct {
	proposalLogic *logic.ProposalLogic
	voteLogic     *logic.VoteLogic
	recorder      *activity.Recorder
}

func NewProposalHandler(db *gorm.DB, recorder *activity.Recorder) *ProposalHandler {
	return &ProposalHandler{
		proposalLogic: logic.NewProposalLogic(db),
		voteLogic:     logic.NewVoteLogic(db),
		recorder:      recorder,
	}
}

// CreateProposal 创建提案
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	proposal, err := h.proposalLogic.CreateProposal(req.IdeaId, callerId, req.Title, req.Description, req.DurationDays)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recorder.Record(model.ActivityProposalCreated, callerId, "proposal", proposal.Id, proposal.Title)

	SuccessResponse(c, http.StatusCreated, "提案创建成功", gin.H{"proposal": proposal})
}

// GetProposals 获取提案列表,已认证时标注调用者的投票
func (h *ProposalHandler) GetProposals(c *gin.Context) {
	ideaId := c.Query("idea_id")
	callerId := middleware.CallerId(c)

	proposals, err := h.proposalLogic.ListProposals(ideaId, callerId)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"proposals": proposals})
}

// GetProposal 获取单个提案
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := parseIdParam(c, "id")
	if !ok {
		return
	}

	proposal, err := h.proposalLogic.GetProposal(id, middleware.CallerId(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{"proposal": proposal})
}

// CastVote 对提案投票
func (h *ProposalHandler) CastVote(c *gin.Context) {
	id, ok := parseIdParam(c, "id")
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerId := middleware.CallerId(c)
	result, err := h.voteLogic.CastVote(id, callerId, model.VoteChoice(req.Choice))
	if err != nil {
		RespondError(c, err)
		return
	}

	if result.Changed {
		h.recorder.Record(model.ActivityVoteCast, callerId, "proposal", id, fmt.Sprintf("choice=%s", result.Choice))
	}

	SuccessResponse(c, http.StatusOK, "投票成功", result)
}
