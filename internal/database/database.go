package database

import (
	"fmt"

	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 把驱动层的唯一约束冲突翻译成 gorm.ErrDuplicatedKey,
		// 计票逻辑依赖它识别并发重复插入
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.IdeaModel{},
		&model.ProposalModel{},
		&model.DaoVoteModel{},
		&model.BountyModel{},
		&model.BountySubmissionModel{},
		&model.SubmissionVoteModel{},
		&model.ActivityModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
