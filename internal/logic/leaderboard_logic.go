package logic

import (
	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"gorm.io/gorm"
)

// DefaultPointsPerBounty 每个被采纳提交的默认积分
// 计分公式产品侧未定稿,先按每次采纳固定积分计算,可通过配置覆盖
const DefaultPointsPerBounty int64 = 100

// LeaderboardLogic 排行榜业务逻辑
//
// 纯读侧投影: 每次从被采纳的提交台账聚合,不维护独立的积分计数器,
// 避免出现第二个会漂移的计数。
type LeaderboardLogic struct {
	db              *gorm.DB
	pointsPerBounty int64
}

// NewLeaderboardLogic 创建排行榜业务逻辑
func NewLeaderboardLogic(db *gorm.DB, pointsPerBounty int64) *LeaderboardLogic {
	if pointsPerBounty <= 0 {
		pointsPerBounty = DefaultPointsPerBounty
	}
	return &LeaderboardLogic{db: db, pointsPerBounty: pointsPerBounty}
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	UserId       int64  `json:"user_id"`
	Username     string `json:"username"`
	BountiesWon  int64  `json:"bounties_won"`
	BountyPoints int64  `json:"bounty_points"`
}

// GetLeaderboard 获取排行榜
//
// 排序: 积分降序,获胜数降序,并列时按用户注册时间升序、ID升序,保证稳定
func (l *LeaderboardLogic) GetLeaderboard() ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0)
	err := l.db.Table("bounty_submission AS s").
		Select("s.developer_id AS user_id, u.username AS username, COUNT(*) AS bounties_won, COUNT(*) * ? AS bounty_points", l.pointsPerBounty).
		Joins("JOIN users u ON u.id = s.developer_id").
		Where("s.status = ?", model.SubmissionStatusAccepted).
		Group("s.developer_id, u.username, u.created_at, u.id").
		Order("bounty_points DESC, bounties_won DESC, u.created_at ASC, u.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return entries, nil
}
