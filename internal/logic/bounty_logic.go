package logic

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/blues/ideachain/internal/sanitize"
	"gorm.io/gorm"
)

// BountyLogic 悬赏业务逻辑
type BountyLogic struct {
	db *gorm.DB
}

// NewBountyLogic 创建悬赏业务逻辑
func NewBountyLogic(db *gorm.DB) *BountyLogic {
	return &BountyLogic{db: db}
}

// BountyView 悬赏视图,带计算出的有效状态
type BountyView struct {
	model.BountyModel
	EffectiveStatus model.BountyStatus `json:"effective_status"`
	SubmissionCount int64              `json:"submission_count"`
}

// CreateBounty 创建悬赏,reward 为不做解析的自由文本
func (b *BountyLogic) CreateBounty(ideaId string, authorId int64, title, description, reward string, deadlineDays int) (*model.BountyModel, error) {
	ideaId = sanitize.Text(ideaId)
	title = sanitize.Text(title)
	description = sanitize.Text(description)
	reward = sanitize.Text(reward)

	if ideaId == "" {
		return nil, apperr.Validation("idea_id", "创意ID不能为空")
	}
	if title == "" {
		return nil, apperr.Validation("title", "标题不能为空")
	}
	if description == "" {
		return nil, apperr.Validation("description", "描述不能为空")
	}
	if deadlineDays <= 0 {
		return nil, apperr.Validation("deadline_days", "截止时长必须大于0")
	}

	var author model.UserModel
	if err := b.db.First(&author, authorId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("author_id", "作者不存在")
		}
		return nil, apperr.Storage(err)
	}

	bounty := &model.BountyModel{
		IdeaId:      ideaId,
		Title:       title,
		Description: description,
		Reward:      reward,
		Status:      model.BountyStatusOpen,
		Deadline:    time.Now().Add(time.Duration(deadlineDays) * 24 * time.Hour),
		AuthorId:    authorId,
	}
	if err := b.db.Create(bounty).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	bounty.Author = author

	return bounty, nil
}

// ListBounties 获取悬赏列表,createdAt 倒序,纯读不回写状态
func (b *BountyLogic) ListBounties(ideaId string) ([]BountyView, error) {
	var bounties []model.BountyModel
	q := b.db.Preload("Author").Order("created_at DESC")
	if ideaId != "" {
		q = q.Where("idea_id = ?", ideaId)
	}
	if err := q.Find(&bounties).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	// 一次查出每个悬赏的提交数
	counts := make(map[int64]int64)
	if len(bounties) > 0 {
		ids := make([]int64, 0, len(bounties))
		for _, bounty := range bounties {
			ids = append(ids, bounty.Id)
		}
		type row struct {
			BountyId int64
			Total    int64
		}
		var rows []row
		if err := b.db.Model(&model.BountySubmissionModel{}).
			Select("bounty_id, COUNT(*) AS total").
			Where("bounty_id IN ?", ids).
			Group("bounty_id").
			Scan(&rows).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		for _, r := range rows {
			counts[r.BountyId] = r.Total
		}
	}

	now := time.Now()
	views := make([]BountyView, 0, len(bounties))
	for _, bounty := range bounties {
		views = append(views, BountyView{
			BountyModel:     bounty,
			EffectiveStatus: bounty.EffectiveStatus(now),
			SubmissionCount: counts[bounty.Id],
		})
	}

	return views, nil
}

// SubmitCode 向悬赏提交代码/PR
//
// 悬赏必须处于有效的 open/submitted 状态;首个提交把 open 推进到 submitted,
// 和提交行写入同一事务。
func (b *BountyLogic) SubmitCode(bountyId, developerId int64, prLink, description string) (*model.BountySubmissionModel, error) {
	prLink = strings.TrimSpace(prLink)
	description = sanitize.Text(description)

	if err := validatePrLink(prLink); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, apperr.Validation("description", "描述不能为空")
	}

	var developer model.UserModel
	if err := b.db.First(&developer, developerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("developer_id", "开发者不存在")
		}
		return nil, apperr.Storage(err)
	}

	now := time.Now()

	// 开始事务
	tx := b.db.Begin()
	if tx.Error != nil {
		return nil, apperr.Storage(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var bounty model.BountyModel
	if err := tx.First(&bounty, bountyId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("悬赏不存在")
		}
		return nil, apperr.Storage(err)
	}

	if !bounty.AcceptingSubmissions(now) {
		tx.Rollback()
		return nil, apperr.InvalidState("悬赏已关闭,无法提交")
	}

	submission := &model.BountySubmissionModel{
		BountyId:    bountyId,
		PrLink:      prLink,
		Description: description,
		Status:      model.SubmissionStatusPending,
		DeveloperId: developerId,
	}
	if err := tx.Create(submission).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Storage(err)
	}

	if bounty.Status == model.BountyStatusOpen {
		if err := tx.Model(&bounty).Update("status", model.BountyStatusSubmitted).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Storage(err)
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Storage(err)
	}
	submission.Developer = developer

	return submission, nil
}

// ListSubmissions 获取悬赏的提交列表
func (b *BountyLogic) ListSubmissions(bountyId int64) ([]model.BountySubmissionModel, error) {
	var bounty model.BountyModel
	if err := b.db.First(&bounty, bountyId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("悬赏不存在")
		}
		return nil, apperr.Storage(err)
	}

	var submissions []model.BountySubmissionModel
	if err := b.db.Preload("Developer").
		Where("bounty_id = ?", bountyId).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return submissions, nil
}

// CancelBounty 取消悬赏,仅作者可操作,终态不可取消
func (b *BountyLogic) CancelBounty(bountyId, callerId int64) (*model.BountyModel, error) {
	var bounty model.BountyModel
	if err := b.db.First(&bounty, bountyId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("悬赏不存在")
		}
		return nil, apperr.Storage(err)
	}

	if bounty.AuthorId != callerId {
		return nil, apperr.Forbidden("只有悬赏作者可以取消")
	}
	if bounty.Status.Terminal() {
		return nil, apperr.InvalidState("悬赏已结束,无法取消")
	}

	if err := b.db.Model(&bounty).Update("status", model.BountyStatusCancelled).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	bounty.Status = model.BountyStatusCancelled

	return &bounty, nil
}

// validatePrLink 校验PR链接必须是格式正确的绝对 http(s) URL
func validatePrLink(prLink string) error {
	if prLink == "" {
		return apperr.Validation("pr_link", "PR链接不能为空")
	}
	u, err := url.Parse(prLink)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return apperr.Validation("pr_link", "PR链接必须是绝对URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.Validation("pr_link", "PR链接必须是 http(s) 地址")
	}
	return nil
}
