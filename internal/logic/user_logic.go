package logic

import (
	"errors"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/blues/ideachain/internal/sanitize"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
//
// 只承担引擎需要的最小身份面: 注册用户并让作者校验有处可查。
// 登录、会话、口令这类身份管理不在引擎范围内。
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册用户,用户名唯一
func (u *UserLogic) Register(username, avatarURL string) (*model.UserModel, error) {
	username = sanitize.Text(username)
	if username == "" {
		return nil, apperr.Validation("username", "用户名不能为空")
	}

	user := &model.UserModel{Username: username, AvatarURL: sanitize.Text(avatarURL)}
	if err := u.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("username", "用户名已被占用")
		}
		return nil, apperr.Storage(err)
	}

	return user, nil
}

// GetUser 按ID获取用户
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Storage(err)
	}
	return &user, nil
}
