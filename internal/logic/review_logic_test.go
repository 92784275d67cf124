package logic

import (
	"testing"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type reviewLogicSuite struct {
	suite.Suite
	db         *gorm.DB
	logic      *ReviewLogic
	author     *model.UserModel
	dev        *model.UserModel
	reviewer   *model.UserModel
	bounty     *model.BountyModel
	submission *model.BountySubmissionModel
}

func TestReviewLogicSuite(t *testing.T) {
	suite.Run(t, new(reviewLogicSuite))
}

func (s *reviewLogicSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.logic = NewReviewLogic(s.db)
	s.author = createTestUser(s.T(), s.db, "author")
	s.dev = createTestUser(s.T(), s.db, "dev")
	s.reviewer = createTestUser(s.T(), s.db, "reviewer")
	s.bounty = createOpenBounty(s.T(), s.db, s.author.Id)

	submission, err := NewBountyLogic(s.db).SubmitCode(s.bounty.Id, s.dev.Id, "https://github.com/acme/repo/pull/7", "implements the feature")
	s.Require().NoError(err)
	s.submission = submission
}

// checkInvariant 两个评审计数之和必须等于台账行数
func (s *reviewLogicSuite) checkInvariant() {
	var submission model.BountySubmissionModel
	s.Require().NoError(s.db.First(&submission, s.submission.Id).Error)
	var rows int64
	s.Require().NoError(s.db.Model(&model.SubmissionVoteModel{}).
		Where("submission_id = ?", s.submission.Id).Count(&rows).Error)
	s.Require().Equal(rows, submission.ApprovalsCount+submission.RejectionsCount)
}

func (s *reviewLogicSuite) TestApproveThenSwitchToReject() {
	result, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().NoError(err)
	s.Require().True(result.Changed)
	s.Require().EqualValues(1, result.Submission.ApprovalsCount)
	s.checkInvariant()

	result, err = s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceReject)
	s.Require().NoError(err)
	s.Require().True(result.Changed)
	s.Require().EqualValues(0, result.Submission.ApprovalsCount)
	s.Require().EqualValues(1, result.Submission.RejectionsCount)
	s.checkInvariant()
}

func (s *reviewLogicSuite) TestRepeatedChoiceIsIdempotent() {
	_, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().NoError(err)

	result, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().NoError(err)
	s.Require().False(result.Changed)
	s.Require().EqualValues(1, result.Submission.ApprovalsCount)
	s.checkInvariant()
}

func (s *reviewLogicSuite) TestVoteRequiresPendingSubmission() {
	s.Require().NoError(s.db.Model(s.submission).Update("status", model.SubmissionStatusAccepted).Error)

	_, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindInvalidState, apperr.KindOf(err))
}

func (s *reviewLogicSuite) TestVoteRequiresLiveBounty() {
	s.Require().NoError(s.db.Model(s.bounty).Update("deadline", time.Now().Add(-time.Hour)).Error)

	_, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindInvalidState, apperr.KindOf(err))
}

func (s *reviewLogicSuite) TestSubmissionMustBelongToBounty() {
	otherBounty := createOpenBounty(s.T(), s.db, s.author.Id)

	_, err := s.logic.VoteOnSubmission(otherBounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *reviewLogicSuite) TestAcceptOnlyByAuthor() {
	_, err := s.logic.AcceptSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindForbidden, apperr.KindOf(err))
}

func (s *reviewLogicSuite) TestAcceptCompletesBountyAndIsExclusive() {
	// 第二个 pending 提交
	second, err := NewBountyLogic(s.db).SubmitCode(s.bounty.Id, s.reviewer.Id, "https://github.com/acme/repo/pull/8", "alternative take")
	s.Require().NoError(err)

	accepted, err := s.logic.AcceptSubmission(s.bounty.Id, s.submission.Id, s.author.Id)
	s.Require().NoError(err)
	s.Require().Equal(model.SubmissionStatusAccepted, accepted.Status)

	var bounty model.BountyModel
	s.Require().NoError(s.db.First(&bounty, s.bounty.Id).Error)
	s.Require().Equal(model.BountyStatusCompleted, bounty.Status)

	// 其他 pending 提交保持原状,不被强制拒绝
	var other model.BountySubmissionModel
	s.Require().NoError(s.db.First(&other, second.Id).Error)
	s.Require().Equal(model.SubmissionStatusPending, other.Status)

	// 悬赏已完成,再采纳另一个提交必须失败
	_, err = s.logic.AcceptSubmission(s.bounty.Id, second.Id, s.author.Id)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindInvalidState, apperr.KindOf(err))
}

func (s *reviewLogicSuite) TestAcceptedDeveloperAppearsOnLeaderboard() {
	// 开发者D提交,评审E赞成,作者F(≠D)采纳
	_, err := s.logic.VoteOnSubmission(s.bounty.Id, s.submission.Id, s.reviewer.Id, model.ReviewChoiceApprove)
	s.Require().NoError(err)

	_, err = s.logic.AcceptSubmission(s.bounty.Id, s.submission.Id, s.author.Id)
	s.Require().NoError(err)

	entries, err := NewLeaderboardLogic(s.db, 0).GetLeaderboard()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Require().Equal(s.dev.Id, entries[0].UserId)
	s.Require().EqualValues(1, entries[0].BountiesWon)
	s.Require().Equal(DefaultPointsPerBounty, entries[0].BountyPoints)
}
