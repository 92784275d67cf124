package router

import (
	"github.com/blues/ideachain/internal/activity"
	"github.com/blues/ideachain/internal/blueprint"
	"github.com/blues/ideachain/internal/cache"
	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/handler"
	"github.com/blues/ideachain/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config, recorder *activity.Recorder, generator blueprint.Generator, lbCache *cache.LeaderboardCache) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(middleware.RequestId())
	r.Use(corsMiddleware())

	secret := []byte(cfg.Auth.JwtSecret)
	requireAuth := middleware.RequireAuth(secret)
	optionalAuth := middleware.OptionalAuth(secret)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "ideachain",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 用户
		userHandler := handler.NewUserHandler(db, cfg.Auth)
		v1.POST("/users", userHandler.Register)

		// 创意
		ideaHandler := handler.NewIdeaHandler(db, generator, recorder)
		ideas := v1.Group("/ideas")
		{
			ideas.POST("", requireAuth, ideaHandler.CreateIdea)
			ideas.GET("", ideaHandler.GetIdeas)
		}

		// 提案与投票
		proposalHandler := handler.NewProposalHandler(db, recorder)
		proposals := v1.Group("/proposals")
		{
			proposals.POST("", requireAuth, proposalHandler.CreateProposal)
			proposals.GET("", optionalAuth, proposalHandler.GetProposals)
			proposals.GET("/:id", optionalAuth, proposalHandler.GetProposal)
			proposals.POST("/:id/vote", requireAuth, proposalHandler.CastVote)
		}

		// 悬赏、提交与评审
		bountyHandler := handler.NewBountyHandler(db, recorder, lbCache)
		bounties := v1.Group("/bounties")
		{
			bounties.POST("", requireAuth, bountyHandler.CreateBounty)
			bounties.GET("", bountyHandler.GetBounties)
			bounties.POST("/:id/cancel", requireAuth, bountyHandler.CancelBounty)
			bounties.POST("/:id/submissions", requireAuth, bountyHandler.SubmitCode)
			bounties.GET("/:id/submissions", bountyHandler.GetSubmissions)
			bounties.POST("/:id/submissions/:sid/vote", requireAuth, bountyHandler.VoteOnSubmission)
			bounties.POST("/:id/submissions/:sid/accept", requireAuth, bountyHandler.AcceptSubmission)
		}

		// 排行榜
		leaderboardHandler := handler.NewLeaderboardHandler(db, cfg.Leaderboard.PointsPerBounty, lbCache)
		v1.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// 活动流
		activityHandler := handler.NewActivityHandler(recorder)
		v1.GET("/activities", activityHandler.GetActivities)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
