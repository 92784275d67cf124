package logic

import (
	"context"
	"errors"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/blueprint"
	"github.com/blues/ideachain/internal/model"
	"github.com/blues/ideachain/internal/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdeaLogic 创意业务逻辑,纯粹的创建/列表,没有派生状态
type IdeaLogic struct {
	db        *gorm.DB
	generator blueprint.Generator
}

// NewIdeaLogic 创建创意业务逻辑,generator 可为 nil(未配置生成器)
func NewIdeaLogic(db *gorm.DB, generator blueprint.Generator) *IdeaLogic {
	return &IdeaLogic{db: db, generator: generator}
}

// CreateIdea 创建创意,配置了生成器时同步生成蓝图
func (i *IdeaLogic) CreateIdea(ctx context.Context, creatorId int64, title, summary string) (*model.IdeaModel, error) {
	title = sanitize.Text(title)
	summary = sanitize.Text(summary)

	if title == "" {
		return nil, apperr.Validation("title", "标题不能为空")
	}
	if summary == "" {
		return nil, apperr.Validation("summary", "描述不能为空")
	}

	var creator model.UserModel
	if err := i.db.First(&creator, creatorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("creator_id", "创建者不存在")
		}
		return nil, apperr.Storage(err)
	}

	var generated string
	if i.generator != nil {
		var err error
		generated, err = i.generator.Generate(ctx, title+"\n\n"+summary)
		if err != nil {
			// 上游是不透明依赖,失败只透出通用错误
			return nil, err
		}
	}

	idea := &model.IdeaModel{
		PublicId:  uuid.NewString(),
		Title:     title,
		Summary:   summary,
		Blueprint: generated,
		CreatorId: creatorId,
	}
	if err := i.db.Create(idea).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	idea.Creator = creator

	return idea, nil
}

// ListIdeas 获取创意列表,createdAt 倒序
func (i *IdeaLogic) ListIdeas() ([]model.IdeaModel, error) {
	var ideas []model.IdeaModel
	if err := i.db.Preload("Creator").Order("created_at DESC").Find(&ideas).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return ideas, nil
}
