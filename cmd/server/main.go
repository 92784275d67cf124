package main

import (
	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/blueprint"
	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/database"
	"github.com/blues/ideachain/internal/logger"
	"github.com/blues/ideachain/internal/router"
	"github.com/blues/ideachain/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化redis(可选,仅排行榜快照缓存)
	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis: %v", err)
	}
	lbCache := cache.NewLeaderboardCache(rdb, cfg.Leaderboard.CacheTTL)

	// 初始化活动记录器
	recorder, err := activity.NewRecorder(db, cfg.Activity.PoolSize)
	if err != nil {
		logger.Fatal("Failed to create activity recorder: %v", err)
	}
	defer recorder.Close()

	// 蓝图生成器(可选)
	var generator blueprint.Generator
	if g := blueprint.New(cfg.Blueprint); g != nil {
		generator = g
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cfg, recorder, generator, lbCache)

	// 启动定时任务
	manager := scheduler.Start(db, lbCache, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
