package logic

import (
	"testing"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type voteLogicSuite struct {
	suite.Suite
	db       *gorm.DB
	logic    *VoteLogic
	voter    *model.UserModel
	proposal *model.ProposalModel
}

func TestVoteLogicSuite(t *testing.T) {
	suite.Run(t, new(voteLogicSuite))
}

func (s *voteLogicSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.logic = NewVoteLogic(s.db)
	author := createTestUser(s.T(), s.db, "author")
	s.voter = createTestUser(s.T(), s.db, "voter")
	s.proposal = createOpenProposal(s.T(), s.db, author.Id)
}

// checkInvariant 三个计数之和必须等于台账行数
func (s *voteLogicSuite) checkInvariant() {
	var proposal model.ProposalModel
	s.Require().NoError(s.db.First(&proposal, s.proposal.Id).Error)
	sum := proposal.VotesFor + proposal.VotesAgainst + proposal.VotesAbstain
	s.Require().Equal(countVoteRows(s.T(), s.db, s.proposal.Id), sum)
}

func (s *voteLogicSuite) TestFirstVoteIncrementsCounter() {
	result, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)
	s.Require().True(result.Changed)
	s.Require().Equal(model.VoteChoiceFor, result.Choice)
	s.Require().EqualValues(1, result.Proposal.VotesFor)
	s.Require().EqualValues(0, result.Proposal.VotesAgainst)
	s.Require().EqualValues(0, result.Proposal.VotesAbstain)
	s.checkInvariant()
}

func (s *voteLogicSuite) TestSameChoiceIsIdempotent() {
	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)

	result, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)
	s.Require().False(result.Changed)
	s.Require().EqualValues(1, result.Proposal.VotesFor)
	s.Require().EqualValues(1, countVoteRows(s.T(), s.db, s.proposal.Id))
	s.checkInvariant()
}

func (s *voteLogicSuite) TestChoiceSwitchMovesCount() {
	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)

	result, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceAgainst)
	s.Require().NoError(err)
	s.Require().True(result.Changed)
	// 改票是移动而不是叠加: for=0, against=1
	s.Require().EqualValues(0, result.Proposal.VotesFor)
	s.Require().EqualValues(1, result.Proposal.VotesAgainst)
	s.Require().EqualValues(1, countVoteRows(s.T(), s.db, s.proposal.Id))
	s.checkInvariant()
}

func (s *voteLogicSuite) TestInvariantAcrossSequence() {
	other := createTestUser(s.T(), s.db, "other")
	sequence := []struct {
		userId int64
		choice model.VoteChoice
	}{
		{s.voter.Id, model.VoteChoiceFor},
		{other.Id, model.VoteChoiceFor},
		{s.voter.Id, model.VoteChoiceAgainst},
		{s.voter.Id, model.VoteChoiceAgainst},
		{other.Id, model.VoteChoiceAbstain},
		{s.voter.Id, model.VoteChoiceFor},
	}
	for _, step := range sequence {
		_, err := s.logic.CastVote(s.proposal.Id, step.userId, step.choice)
		s.Require().NoError(err)
		s.checkInvariant()
	}

	var proposal model.ProposalModel
	s.Require().NoError(s.db.First(&proposal, s.proposal.Id).Error)
	s.Require().EqualValues(1, proposal.VotesFor)
	s.Require().EqualValues(0, proposal.VotesAgainst)
	s.Require().EqualValues(1, proposal.VotesAbstain)
}

func (s *voteLogicSuite) TestDeadlinePassedRejectsVote() {
	// 存储状态仍是 open,但截止时间已过
	s.Require().NoError(s.db.Model(s.proposal).Update("ends_at", time.Now().Add(-time.Hour)).Error)

	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindInvalidState, apperr.KindOf(err))
	s.Require().EqualValues(0, countVoteRows(s.T(), s.db, s.proposal.Id))
}

func (s *voteLogicSuite) TestTerminalStatusRejectsVote() {
	s.Require().NoError(s.db.Model(s.proposal).Update("status", model.ProposalStatusPassed).Error)

	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindInvalidState, apperr.KindOf(err))
}

func (s *voteLogicSuite) TestUnknownProposal() {
	_, err := s.logic.CastVote(9999, s.voter.Id, model.VoteChoiceFor)
	s.Require().Error(err)
	s.Require().Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *voteLogicSuite) TestInvalidChoice() {
	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoice("maybe"))
	s.Require().Error(err)
	s.Require().Equal(apperr.KindValidation, apperr.KindOf(err))
}

func (s *voteLogicSuite) TestTwoVotersAreIndependent() {
	other := createTestUser(s.T(), s.db, "other")

	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)
	result, err := s.logic.CastVote(s.proposal.Id, other.Id, model.VoteChoiceFor)
	s.Require().NoError(err)

	s.Require().EqualValues(2, result.Proposal.VotesFor)
	s.Require().EqualValues(2, countVoteRows(s.T(), s.db, s.proposal.Id))
	s.checkInvariant()
}

func (s *voteLogicSuite) TestDuplicateLedgerRowImpossible() {
	_, err := s.logic.CastVote(s.proposal.Id, s.voter.Id, model.VoteChoiceFor)
	s.Require().NoError(err)

	// 绕过逻辑层直接插入第二行,唯一索引必须拦下
	dup := model.DaoVoteModel{ProposalId: s.proposal.Id, UserId: s.voter.Id, Choice: model.VoteChoiceAgainst}
	err = s.db.Create(&dup).Error
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)
}
