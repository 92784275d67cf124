package model

import (
	"time"
)

// ProposalModel DAO提案模型
type ProposalModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	IdeaId      string `json:"idea_id" gorm:"index;not null" binding:"required"`
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`

	// 状态与计票
	// 计数字段只允许 VoteLogic 在事务内修改,与 dao_vote 表保持一致
	Status       ProposalStatus `json:"status" gorm:"default:'open'"`
	VotesFor     int64          `json:"votes_for" gorm:"default:0"`
	VotesAgainst int64          `json:"votes_against" gorm:"default:0"`
	VotesAbstain int64          `json:"votes_abstain" gorm:"default:0"`

	// 时间信息
	EndsAt time.Time `json:"ends_at" gorm:"not null"`

	// 创建者信息
	AuthorId int64     `json:"author_id" gorm:"not null"`
	Author   UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorId"`
}

// ProposalStatus 提案状态
type ProposalStatus string

const (
	ProposalStatusOpen     ProposalStatus = "open"     // 投票中
	ProposalStatusPassed   ProposalStatus = "passed"   // 已通过
	ProposalStatusRejected ProposalStatus = "rejected" // 已否决
	ProposalStatusExpired  ProposalStatus = "expired"  // 已过期
)

// TableName 自定义表名
func (ProposalModel) TableName() string {
	return "proposal"
}

// EffectiveStatus 计算提案的有效状态
// 截止后即视为过期,不依赖后台任务翻转存储状态
func (p *ProposalModel) EffectiveStatus(now time.Time) ProposalStatus {
	if p.Status != ProposalStatusOpen {
		return p.Status
	}
	if now.Before(p.EndsAt) {
		return ProposalStatusOpen
	}
	return ProposalStatusExpired
}
