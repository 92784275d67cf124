package model

import (
	"time"
)

// IdeaModel 创意模型,blueprint 为 AI 生成的结构化文档
type IdeaModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 对外引用的公开ID,提案和悬赏按字符串引用
	PublicId string `json:"public_id" gorm:"uniqueIndex;not null"`

	Title     string `json:"title" gorm:"not null" binding:"required"`
	Summary   string `json:"summary" gorm:"type:text"`
	Blueprint string `json:"blueprint" gorm:"type:text"`

	CreatorId int64     `json:"creator_id" gorm:"not null"`
	Creator   UserModel `json:"creator,omitempty" gorm:"foreignKey:CreatorId"`
}

// TableName 自定义表名
func (IdeaModel) TableName() string {
	return "idea"
}
