package logic

import (
	"errors"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/blues/ideachain/internal/sanitize"
	"gorm.io/gorm"
)

// ProposalLogic 提案业务逻辑
type ProposalLogic struct {
	db *gorm.DB
}

// NewProposalLogic 创建提案业务逻辑
func NewProposalLogic(db *gorm.DB) *ProposalLogic {
	return &ProposalLogic{db: db}
}

// ProposalView 提案视图,带计算出的有效状态和调用者当前投票
type ProposalView struct {
	model.ProposalModel
	EffectiveStatus model.ProposalStatus `json:"effective_status"`
	UserVote        model.VoteChoice     `json:"user_vote,omitempty"`
}

// CreateProposal 创建提案
func (p *ProposalLogic) CreateProposal(ideaId string, authorId int64, title, description string, durationDays int) (*model.ProposalModel, error) {
	ideaId = sanitize.Text(ideaId)
	title = sanitize.Text(title)
	description = sanitize.Text(description)

	if ideaId == "" {
		return nil, apperr.Validation("idea_id", "创意ID不能为空")
	}
	if title == "" {
		return nil, apperr.Validation("title", "标题不能为空")
	}
	if description == "" {
		return nil, apperr.Validation("description", "描述不能为空")
	}
	if durationDays <= 0 {
		return nil, apperr.Validation("duration_days", "投票时长必须大于0")
	}

	// 作者必须是已知用户
	var author model.UserModel
	if err := p.db.First(&author, authorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("author_id", "作者不存在")
		}
		return nil, apperr.Storage(err)
	}

	proposal := &model.ProposalModel{
		IdeaId:      ideaId,
		Title:       title,
		Description: description,
		Status:      model.ProposalStatusOpen,
		EndsAt:      time.Now().Add(time.Duration(durationDays) * 24 * time.Hour),
		AuthorId:    authorId,
	}
	if err := p.db.Create(proposal).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	proposal.Author = author

	return proposal, nil
}

// ListProposals 获取提案列表,createdAt 倒序
//
// callerId 为0表示匿名调用者。纯读路径: 即使提案已过截止时间也不回写状态,
// 有效状态只在视图里计算。
func (p *ProposalLogic) ListProposals(ideaId string, callerId int64) ([]ProposalView, error) {
	var proposals []model.ProposalModel
	q := p.db.Preload("Author").Order("created_at DESC")
	if ideaId != "" {
		q = q.Where("idea_id = ?", ideaId)
	}
	if err := q.Find(&proposals).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	// 一次查出调用者在这批提案上的投票
	callerVotes := make(map[int64]model.VoteChoice)
	if callerId != 0 && len(proposals) > 0 {
		ids := make([]int64, 0, len(proposals))
		for _, proposal := range proposals {
			ids = append(ids, proposal.Id)
		}
		var votes []model.DaoVoteModel
		if err := p.db.Where("user_id = ? AND proposal_id IN ?", callerId, ids).Find(&votes).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		for _, vote := range votes {
			callerVotes[vote.ProposalId] = vote.Choice
		}
	}

	now := time.Now()
	views := make([]ProposalView, 0, len(proposals))
	for _, proposal := range proposals {
		views = append(views, ProposalView{
			ProposalModel:   proposal,
			EffectiveStatus: proposal.EffectiveStatus(now),
			UserVote:        callerVotes[proposal.Id],
		})
	}

	return views, nil
}

// GetProposal 获取单个提案
func (p *ProposalLogic) GetProposal(id int64, callerId int64) (*ProposalView, error) {
	var proposal model.ProposalModel
	if err := p.db.Preload("Author").First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("提案不存在")
		}
		return nil, apperr.Storage(err)
	}

	view := &ProposalView{
		ProposalModel:   proposal,
		EffectiveStatus: proposal.EffectiveStatus(time.Now()),
	}
	if callerId != 0 {
		var vote model.DaoVoteModel
		err := p.db.Where("proposal_id = ? AND user_id = ?", id, callerId).First(&vote).Error
		switch {
		case err == nil:
			view.UserVote = vote.Choice
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.Storage(err)
		}
	}

	return view, nil
}
