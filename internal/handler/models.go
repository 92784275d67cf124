package handler

// 请求模型

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// CreateIdeaRequest 创建创意请求
type CreateIdeaRequest struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary" binding:"required"`
}

// CreateProposalRequest 创建提案请求
type CreateProposalRequest struct {
	IdeaId       string `json:"idea_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
}

// CastVoteRequest 提案投票请求
type CastVoteRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// CreateBountyRequest 创建悬赏请求
type CreateBountyRequest struct {
	IdeaId       string `json:"idea_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Reward       string `json:"reward"`
	DeadlineDays int    `json:"deadline_days" binding:"required,min=1"`
}

// SubmitCodeRequest 提交代码请求
type SubmitCodeRequest struct {
	PrLink      string `json:"pr_link" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ReviewVoteRequest 评审投票请求
type ReviewVoteRequest struct {
	Choice string `json:"choice" binding:"required"`
}
