package model

import (
	"time"
)

// BountyModel 功能悬赏模型,reward 为自由文本,不解析为货币
type BountyModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	IdeaId      string `json:"idea_id" gorm:"index;not null" binding:"required"`
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Reward      string `json:"reward"`

	// 状态
	Status BountyStatus `json:"status" gorm:"default:'open'"`

	// 时间信息
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 创建者信息
	AuthorId int64     `json:"author_id" gorm:"not null"`
	Author   UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorId"`
}

// BountyStatus 悬赏状态
type BountyStatus string

const (
	BountyStatusOpen      BountyStatus = "open"      // 开放中
	BountyStatusClaimed   BountyStatus = "claimed"   // 已认领
	BountyStatusSubmitted BountyStatus = "submitted" // 已有提交
	BountyStatusCompleted BountyStatus = "completed" // 已完成
	BountyStatusCancelled BountyStatus = "cancelled" // 已取消
	BountyStatusExpired   BountyStatus = "expired"   // 已过期(仅作为有效状态,不落库)
)

// TableName 自定义表名
func (BountyModel) TableName() string {
	return "bounty"
}

// Terminal 是否为终态
func (s BountyStatus) Terminal() bool {
	return s == BountyStatusCompleted || s == BountyStatusCancelled
}

// EffectiveStatus 计算悬赏的有效状态,截止后非终态一律视为过期
func (b *BountyModel) EffectiveStatus(now time.Time) BountyStatus {
	if b.Status.Terminal() {
		return b.Status
	}
	if now.Before(b.Deadline) {
		return b.Status
	}
	return BountyStatusExpired
}

// AcceptingSubmissions 是否还能接受代码提交
func (b *BountyModel) AcceptingSubmissions(now time.Time) bool {
	eff := b.EffectiveStatus(now)
	return eff == BountyStatusOpen || eff == BountyStatusSubmitted
}
