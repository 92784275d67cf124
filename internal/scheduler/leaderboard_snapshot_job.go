package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/logger"
	"github.com/blues/ideachain/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// LeaderboardSnapshotJob 周期性重算排行榜并回填缓存
//
// 排行榜是纯读侧投影,任务只是把最新聚合结果写进快照,
// 不维护任何独立计数。
type LeaderboardSnapshotJob struct {
	leaderboardLogic *logic.LeaderboardLogic
	lbCache          *cache.LeaderboardCache
	config           *config.Config
}

// NewLeaderboardSnapshotJob 创建排行榜快照任务
func NewLeaderboardSnapshotJob(db *gorm.DB, lbCache *cache.LeaderboardCache, cfg *config.Config) *LeaderboardSnapshotJob {
	return &LeaderboardSnapshotJob{
		leaderboardLogic: logic.NewLeaderboardLogic(db, cfg.Leaderboard.PointsPerBounty),
		lbCache:          lbCache,
		config:           cfg,
	}
}

// GetName 获取任务名称
func (j *LeaderboardSnapshotJob) GetName() string {
	return "leaderboard_snapshot"
}

// GetSchedule 获取调度配置
func (j *LeaderboardSnapshotJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *LeaderboardSnapshotJob) Execute() {
	entries, err := j.leaderboardLogic.GetLeaderboard()
	if err != nil {
		logger.Error("Leaderboard snapshot failed: %v", err)
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		logger.Error("Leaderboard snapshot marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	j.lbCache.Set(ctx, raw)

	logger.Debug("Leaderboard snapshot refreshed, %d entries", len(entries))
}
