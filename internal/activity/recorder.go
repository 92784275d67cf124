package activity

import (
	"github.com/blues/ideachain/internal/logger"
	"github.com/blues/ideachain/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Recorder 治理活动异步记录器
//
// 投票、提交、采纳这类事件在请求路径外落库,协程池满时直接丢弃,
// 活动流只是观察用途,不参与任何计票不变量。
type Recorder struct {
	db   *gorm.DB
	pool *ants.Pool
}

// NewRecorder 创建记录器
func NewRecorder(db *gorm.DB, poolSize int) (*Recorder, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db, pool: pool}, nil
}

// Record 异步写入一条活动记录
func (r *Recorder) Record(typ model.ActivityType, actorId int64, subjectType string, subjectId int64, detail string) {
	entry := model.ActivityModel{
		Type:        typ,
		ActorId:     actorId,
		SubjectType: subjectType,
		SubjectId:   subjectId,
		Detail:      detail,
	}
	err := r.pool.Submit(func() {
		if err := r.db.Create(&entry).Error; err != nil {
			logger.Error("Failed to record activity %s: %v", typ, err)
		}
	})
	if err != nil {
		logger.Warn("Activity pool saturated, dropping event %s", typ)
	}
}

// Recent 查询最近的活动,createdAt 倒序
func (r *Recorder) Recent(limit int) ([]model.ActivityModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []model.ActivityModel
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Close 释放协程池
func (r *Recorder) Close() {
	r.pool.Release()
}
