package model

import (
	"time"
)

// UserModel 用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username  string `json:"username" gorm:"uniqueIndex;not null" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}
