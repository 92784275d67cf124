package model

import (
	"time"
)

// ActivityModel 治理活动记录,由 Recorder 异步写入
type ActivityModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Type        ActivityType `json:"type" gorm:"index;not null"`
	ActorId     int64        `json:"actor_id" gorm:"not null"`
	SubjectType string       `json:"subject_type"`
	SubjectId   int64        `json:"subject_id"`
	Detail      string       `json:"detail"`
}

// ActivityType 活动类型
type ActivityType string

const (
	ActivityIdeaCreated        ActivityType = "idea_created"
	ActivityProposalCreated    ActivityType = "proposal_created"
	ActivityVoteCast           ActivityType = "vote_cast"
	ActivityBountyCreated      ActivityType = "bounty_created"
	ActivityBountyCancelled    ActivityType = "bounty_cancelled"
	ActivitySubmissionCreated  ActivityType = "submission_created"
	ActivitySubmissionVote     ActivityType = "submission_vote"
	ActivitySubmissionAccepted ActivityType = "submission_accepted"
)

// TableName 自定义表名
func (ActivityModel) TableName() string {
	return "activity"
}
