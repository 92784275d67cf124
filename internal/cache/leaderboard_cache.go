package cache

import (
	"context"
	"time"

	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/logger"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "ideachain:leaderboard"

// NewRedis 创建redis客户端,未启用时返回 nil
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// LeaderboardCache 排行榜快照缓存
//
// 只缓存已经序列化好的排行榜JSON,读路径命中即直接返回,
// 采纳提交后失效,由定时任务周期性重算回填。
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLeaderboardCache 创建排行榜缓存,rdb 为 nil 时返回 nil(未启用)
func NewLeaderboardCache(rdb *redis.Client, ttlSeconds int) *LeaderboardCache {
	if rdb == nil {
		return nil
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// Get 读取快照,miss 或 redis 故障都按未命中处理
func (c *LeaderboardCache) Get(ctx context.Context) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Leaderboard cache read failed: %v", err)
		}
		return nil, false
	}
	return raw, true
}

// Set 写入快照
func (c *LeaderboardCache) Set(ctx context.Context, raw []byte) {
	if err := c.rdb.Set(ctx, leaderboardKey, raw, c.ttl).Err(); err != nil {
		logger.Warn("Leaderboard cache write failed: %v", err)
	}
}

// Invalidate 失效快照,下次读取回源重算
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, leaderboardKey).Err(); err != nil {
		logger.Warn("Leaderboard cache invalidate failed: %v", err)
	}
}
