package logic

import (
	"testing"
	"time"

	"github.com/blues/ideachain/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存sqlite,跑真实的gorm路径
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库必须钉在单连接上,否则每个连接各是一个库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.IdeaModel{},
		&model.ProposalModel{},
		&model.DaoVoteModel{},
		&model.BountyModel{},
		&model.BountySubmissionModel{},
		&model.SubmissionVoteModel{},
		&model.ActivityModel{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.UserModel {
	t.Helper()
	user := &model.UserModel{Username: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createOpenProposal(t *testing.T, db *gorm.DB, authorId int64) *model.ProposalModel {
	t.Helper()
	proposal := &model.ProposalModel{
		IdeaId:      "idea-1",
		Title:       "Add staking rewards",
		Description: "Reward long-term holders",
		Status:      model.ProposalStatusOpen,
		EndsAt:      time.Now().Add(7 * 24 * time.Hour),
		AuthorId:    authorId,
	}
	require.NoError(t, db.Create(proposal).Error)
	return proposal
}

func createOpenBounty(t *testing.T, db *gorm.DB, authorId int64) *model.BountyModel {
	t.Helper()
	bounty := &model.BountyModel{
		IdeaId:      "idea-1",
		Title:       "Implement dark mode",
		Description: "Full theme support",
		Reward:      "500 USDC",
		Status:      model.BountyStatusOpen,
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
		AuthorId:    authorId,
	}
	require.NoError(t, db.Create(bounty).Error)
	return bounty
}

// countVoteRows 数台账行,用来核对计数不变量
func countVoteRows(t *testing.T, db *gorm.DB, proposalId int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.DaoVoteModel{}).Where("proposal_id = ?", proposalId).Count(&n).Error)
	return n
}
