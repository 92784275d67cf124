package logic

import (
	"errors"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"gorm.io/gorm"
)

// ReviewLogic 提交评审业务逻辑
//
// 评审计票与 VoteLogic 遵循同一套纪律: 台账行和计数同事务修改,
// approvals_count + rejections_count 恒等于该提交的 submission_vote 行数。
type ReviewLogic struct {
	db *gorm.DB
}

// NewReviewLogic 创建提交评审业务逻辑
func NewReviewLogic(db *gorm.DB) *ReviewLogic {
	return &ReviewLogic{db: db}
}

// ReviewResult 评审投票结果
type ReviewResult struct {
	Choice     model.ReviewChoice           `json:"choice"`
	Changed    bool                         `json:"changed"`
	Submission *model.BountySubmissionModel `json:"submission"`
}

// VoteOnSubmission 对提交投评审票,每个(提交,评审人)一票,可改票
//
// 仅在提交仍为 pending 且悬赏有效 open/submitted 时允许。
// 提交者给自己的提交投票暂不禁止(产品未定)。
func (r *ReviewLogic) VoteOnSubmission(bountyId, submissionId, reviewerId int64, choice model.ReviewChoice) (*ReviewResult, error) {
	if !choice.Valid() {
		return nil, apperr.Validation("choice", "无效的评审选项")
	}

	result, err := r.voteOnce(bountyId, submissionId, reviewerId, choice)
	if errors.Is(err, errVoteConflict) {
		result, err = r.voteOnce(bountyId, submissionId, reviewerId, choice)
	}
	if errors.Is(err, errVoteConflict) {
		return nil, apperr.Storage(err)
	}
	return result, err
}

func (r *ReviewLogic) voteOnce(bountyId, submissionId, reviewerId int64, choice model.ReviewChoice) (*ReviewResult, error) {
	now := time.Now()

	// 开始事务
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Storage(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var bounty model.BountyModel
	if err := tx.First(&bounty, bountyId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("悬赏不存在")
		}
		return nil, apperr.Storage(err)
	}

	var submission model.BountySubmissionModel
	if err := tx.Where("id = ? AND bounty_id = ?", submissionId, bountyId).First(&submission).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("提交不存在")
		}
		return nil, apperr.Storage(err)
	}

	if submission.Status != model.SubmissionStatusPending {
		tx.Rollback()
		return nil, apperr.InvalidState("提交已定稿,无法评审")
	}
	if !bounty.AcceptingSubmissions(now) {
		tx.Rollback()
		return nil, apperr.InvalidState("悬赏已关闭,无法评审")
	}

	changed := true
	var prior model.SubmissionVoteModel
	err := tx.Where("submission_id = ? AND reviewer_id = ?", submissionId, reviewerId).First(&prior).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := model.SubmissionVoteModel{SubmissionId: submissionId, ReviewerId: reviewerId, Choice: choice}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errVoteConflict
			}
			return nil, apperr.Storage(err)
		}
		if err := incrCounter(tx, &submission, choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}

	case err != nil:
		tx.Rollback()
		return nil, apperr.Storage(err)

	case prior.Choice == choice:
		changed = false

	default:
		res := tx.Model(&model.SubmissionVoteModel{}).
			Where("submission_id = ? AND reviewer_id = ? AND choice = ?", submissionId, reviewerId, prior.Choice).
			Update("choice", choice)
		if res.Error != nil {
			tx.Rollback()
			return nil, apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return nil, errVoteConflict
		}
		if err := decrCounter(tx, &submission, prior.Choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}
		if err := incrCounter(tx, &submission, choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}
	}

	// 重新读取最新计数
	if err := tx.First(&submission, submissionId).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Storage(err)
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &ReviewResult{Choice: choice, Changed: changed, Submission: &submission}, nil
}

// AcceptSubmission 采纳提交,仅悬赏作者可操作
//
// 成功后该提交置为 accepted,悬赏置为 completed;同悬赏的其他 pending
// 提交保持原状留作历史,不强制拒绝。
func (r *ReviewLogic) AcceptSubmission(bountyId, submissionId, callerId int64) (*model.BountySubmissionModel, error) {
	// 开始事务
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Storage(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var bounty model.BountyModel
	if err := tx.First(&bounty, bountyId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("悬赏不存在")
		}
		return nil, apperr.Storage(err)
	}

	if bounty.AuthorId != callerId {
		tx.Rollback()
		return nil, apperr.Forbidden("只有悬赏作者可以采纳提交")
	}
	if bounty.Status.Terminal() {
		tx.Rollback()
		return nil, apperr.InvalidState("悬赏已结束,无法采纳")
	}

	var submission model.BountySubmissionModel
	if err := tx.Where("id = ? AND bounty_id = ?", submissionId, bountyId).First(&submission).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("提交不存在")
		}
		return nil, apperr.Storage(err)
	}

	if submission.Status != model.SubmissionStatusPending {
		tx.Rollback()
		return nil, apperr.InvalidState("提交已定稿,无法采纳")
	}

	if err := tx.Model(&submission).Update("status", model.SubmissionStatusAccepted).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Storage(err)
	}
	if err := tx.Model(&bounty).Update("status", model.BountyStatusCompleted).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Storage(err)
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Storage(err)
	}
	submission.Status = model.SubmissionStatusAccepted

	return &submission, nil
}
