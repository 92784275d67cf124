package model

import (
	"time"
)

// SubmissionVoteModel 提交评审台账,每个(提交,评审人)至多一行,改票原地更新
type SubmissionVoteModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SubmissionId int64        `json:"submission_id" gorm:"not null;uniqueIndex:idx_submission_vote_reviewer"`
	ReviewerId   int64        `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_submission_vote_reviewer"`
	Choice       ReviewChoice `json:"choice" gorm:"not null"`
}

// ReviewChoice 评审选项
type ReviewChoice string

const (
	ReviewChoiceApprove ReviewChoice = "approve" // 赞成采纳
	ReviewChoiceReject  ReviewChoice = "reject"  // 反对采纳
)

// Valid 是否为合法选项
func (c ReviewChoice) Valid() bool {
	return c == ReviewChoiceApprove || c == ReviewChoiceReject
}

// CounterColumn 选项对应的提交计数字段
func (c ReviewChoice) CounterColumn() string {
	if c == ReviewChoiceApprove {
		return "approvals_count"
	}
	return "rejections_count"
}

// TableName 自定义表名
func (SubmissionVoteModel) TableName() string {
	return "submission_vote"
}
