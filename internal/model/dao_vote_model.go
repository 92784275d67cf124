package model

import (
	"time"
)

// DaoVoteModel 提案投票台账,每个(提案,用户)至多一行,改票原地更新
type DaoVoteModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProposalId int64      `json:"proposal_id" gorm:"not null;uniqueIndex:idx_dao_vote_proposal_user"`
	UserId     int64      `json:"user_id" gorm:"not null;uniqueIndex:idx_dao_vote_proposal_user"`
	Choice     VoteChoice `json:"choice" gorm:"not null"`
}

// VoteChoice 投票选项
type VoteChoice string

const (
	VoteChoiceFor     VoteChoice = "for"     // 赞成
	VoteChoiceAgainst VoteChoice = "against" // 反对
	VoteChoiceAbstain VoteChoice = "abstain" // 弃权
)

// Valid 是否为合法选项
func (c VoteChoice) Valid() bool {
	switch c {
	case VoteChoiceFor, VoteChoiceAgainst, VoteChoiceAbstain:
		return true
	}
	return false
}

// CounterColumn 选项对应的提案计数字段
func (c VoteChoice) CounterColumn() string {
	switch c {
	case VoteChoiceFor:
		return "votes_for"
	case VoteChoiceAgainst:
		return "votes_against"
	default:
		return "votes_abstain"
	}
}

// TableName 自定义表名
func (DaoVoteModel) TableName() string {
	return "dao_vote"
}
