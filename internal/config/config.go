package config

import (
	"github.com/blues/ideachain/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Blueprint   BlueprintConfig   `mapstructure:"blueprint"`
	Activity    ActivityConfig    `mapstructure:"activity"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 排行榜快照缓存,enabled 为 false 时直接查库
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 身份解析配置,引擎只消费已认证的用户ID
type AuthConfig struct {
	JwtSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// LeaderboardConfig 排行榜配置
type LeaderboardConfig struct {
	PointsPerBounty int64 `mapstructure:"points_per_bounty"` // 每个被采纳提交的积分
	CacheTTL        int   `mapstructure:"cache_ttl"`         // 秒
}

// BlueprintConfig AI蓝图生成器,上游失败时只返回通用错误
type BlueprintConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	ApiUrl  string `mapstructure:"api_url"`
	ApiKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // 秒
}

// ActivityConfig 活动记录协程池配置
type ActivityConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

type SchedulerConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/ideachain")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "ideachain")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	viper.SetDefault("auth.token_ttl_hours", 72)
	viper.SetDefault("leaderboard.points_per_bounty", 100)
	viper.SetDefault("leaderboard.cache_ttl", 300)
	viper.SetDefault("blueprint.enabled", false)
	viper.SetDefault("blueprint.model", "gpt-4o-mini")
	viper.SetDefault("blueprint.timeout", 30)
	viper.SetDefault("activity.pool_size", 8)
	viper.SetDefault("scheduler.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
