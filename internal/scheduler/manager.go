package scheduler

import (
	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
//
// 这里只挂读侧投影类任务。提案/悬赏的截止判定是读取时计算的谓词,
// 永远不由后台任务翻转存储状态。
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	lbCache   *cache.LeaderboardCache
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, lbCache *cache.LeaderboardCache, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		db:        db,
		lbCache:   lbCache,
		config:    cfg,
	}, nil
}

// Start 启动任务管理器
func Start(db *gorm.DB, lbCache *cache.LeaderboardCache, cfg *config.Config) *Manager {
	manager, err := NewManager(db, lbCache, cfg)
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 排行榜快照任务只在启用缓存时有意义
	if m.lbCache != nil {
		m.registerJob(NewLeaderboardSnapshotJob(m.db, m.lbCache, m.config))
	}
}

// Job 定时任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
