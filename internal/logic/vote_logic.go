package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"gorm.io/gorm"
)

// VoteLogic 提案计票业务逻辑
//
// 不变量: votes_for + votes_against + votes_abstain 恒等于该提案的 dao_vote 行数。
// 所有计数修改都和对应的台账写入放在同一事务里,计数字段用原子SQL表达式更新。
type VoteLogic struct {
	db *gorm.DB
}

// NewVoteLogic 创建提案计票业务逻辑
func NewVoteLogic(db *gorm.DB) *VoteLogic {
	return &VoteLogic{db: db}
}

// VoteResult 投票结果
type VoteResult struct {
	Choice   model.VoteChoice     `json:"choice"`
	Changed  bool                 `json:"changed"`
	Proposal *model.ProposalModel `json:"proposal"`
}

// 并发冲突信号: 唯一索引命中或守卫更新没改到行,重读后重试
var errVoteConflict = errors.New("concurrent vote conflict")

// CastVote 对提案投票,每个(提案,用户)一票,可改票
//
// 同选项重复提交是幂等空操作(changed=false),改票在同一事务内
// 先减旧选项计数再加新选项计数。
func (v *VoteLogic) CastVote(proposalId, userId int64, choice model.VoteChoice) (*VoteResult, error) {
	if !choice.Valid() {
		return nil, apperr.Validation("choice", "无效的投票选项")
	}

	result, err := v.castVoteOnce(proposalId, userId, choice)
	if errors.Is(err, errVoteConflict) {
		// 同一(提案,用户)的并发改票,重读最新状态后重试一次
		result, err = v.castVoteOnce(proposalId, userId, choice)
	}
	if errors.Is(err, errVoteConflict) {
		return nil, apperr.Storage(err)
	}
	return result, err
}

func (v *VoteLogic) castVoteOnce(proposalId, userId int64, choice model.VoteChoice) (*VoteResult, error) {
	now := time.Now()

	// 开始事务
	tx := v.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Storage(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var proposal model.ProposalModel
	if err := tx.First(&proposal, proposalId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("提案不存在")
		}
		return nil, apperr.Storage(err)
	}

	if proposal.EffectiveStatus(now) != model.ProposalStatusOpen {
		tx.Rollback()
		return nil, apperr.InvalidState("提案已结束,无法投票")
	}

	changed := true
	var prior model.DaoVoteModel
	err := tx.Where("proposal_id = ? AND user_id = ?", proposalId, userId).First(&prior).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 首次投票: 插入台账行,再加对应计数
		vote := model.DaoVoteModel{ProposalId: proposalId, UserId: userId, Choice: choice}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errVoteConflict
			}
			return nil, apperr.Storage(err)
		}
		if err := incrCounter(tx, &proposal, choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}

	case err != nil:
		tx.Rollback()
		return nil, apperr.Storage(err)

	case prior.Choice == choice:
		// 同选项重复提交,幂等
		changed = false

	default:
		// 改票: 守卫更新,只有旧选项没被并发修改时才生效
		res := tx.Model(&model.DaoVoteModel{}).
			Where("proposal_id = ? AND user_id = ? AND choice = ?", proposalId, userId, prior.Choice).
			Update("choice", choice)
		if res.Error != nil {
			tx.Rollback()
			return nil, apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return nil, errVoteConflict
		}
		if err := decrCounter(tx, &proposal, prior.Choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}
		if err := incrCounter(tx, &proposal, choice.CounterColumn()); err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}
	}

	// 重新读取最新计数
	if err := tx.First(&proposal, proposalId).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Storage(err)
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &VoteResult{Choice: choice, Changed: changed, Proposal: &proposal}, nil
}

// incrCounter 原子递增计数字段
func incrCounter(tx *gorm.DB, entity interface{}, column string) error {
	return tx.Model(entity).Update(column, gorm.Expr(column+" + 1")).Error
}

// decrCounter 原子递减计数字段,下限为0
func decrCounter(tx *gorm.DB, entity interface{}, column string) error {
	expr := fmt.Sprintf("CASE WHEN %s > 0 THEN %s - 1 ELSE 0 END", column, column)
	return tx.Model(entity).Update(column, gorm.Expr(expr)).Error
}
