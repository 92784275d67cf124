package model

import (
	"time"
)

// BountySubmissionModel 悬赏提交模型
type BountySubmissionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"submitted_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BountyId    int64  `json:"bounty_id" gorm:"index;not null"`
	PrLink      string `json:"pr_link" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`

	// 状态与评审计数
	// 计数字段只允许 ReviewLogic 在事务内修改,与 submission_vote 表保持一致
	Status          SubmissionStatus `json:"status" gorm:"default:'pending'"`
	ApprovalsCount  int64            `json:"approvals_count" gorm:"default:0"`
	RejectionsCount int64            `json:"rejections_count" gorm:"default:0"`

	// 提交者信息
	DeveloperId int64     `json:"developer_id" gorm:"not null"`
	Developer   UserModel `json:"developer,omitempty" gorm:"foreignKey:DeveloperId"`
}

// SubmissionStatus 提交状态
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"  // 待评审
	SubmissionStatusAccepted SubmissionStatus = "accepted" // 已采纳
	SubmissionStatusRejected SubmissionStatus = "rejected" // 已拒绝
)

// TableName 自定义表名
func (BountySubmissionModel) TableName() string {
	return "bounty_submission"
}
