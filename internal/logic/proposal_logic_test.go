package logic

import (
	"testing"
	"time"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/blues/ideachain/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCreateProposalValidation(t *testing.T) {
	db := newTestDB(t)
	logic := NewProposalLogic(db)
	author := createTestUser(t, db, "author")

	tests := []struct {
		name        string
		ideaId      string
		authorId    int64
		title       string
		description string
		days        int
		wantField   string
	}{
		{"empty idea", "", author.Id, "t", "d", 7, "idea_id"},
		{"blank title", "idea-1", author.Id, "   ", "d", 7, "title"},
		{"blank description", "idea-1", author.Id, "t", "\t ", 7, "description"},
		{"zero duration", "idea-1", author.Id, "t", "d", 0, "duration_days"},
		{"unknown author", "idea-1", 9999, "t", "d", 7, "author_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logic.CreateProposal(tt.ideaId, tt.authorId, tt.title, tt.description, tt.days)
			require.Error(t, err)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			var e *apperr.Error
			require.ErrorAs(t, err, &e)
			require.Equal(t, tt.wantField, e.Field)
		})
	}
}

func TestCreateProposalDefaults(t *testing.T) {
	db := newTestDB(t)
	logic := NewProposalLogic(db)
	author := createTestUser(t, db, "author")

	before := time.Now()
	proposal, err := logic.CreateProposal("idea-1", author.Id, "Add staking rewards", "details", 7)
	require.NoError(t, err)

	require.Equal(t, model.ProposalStatusOpen, proposal.Status)
	require.Zero(t, proposal.VotesFor)
	require.Zero(t, proposal.VotesAgainst)
	require.Zero(t, proposal.VotesAbstain)
	// endsAt = now + 7天
	require.WithinDuration(t, before.Add(7*24*time.Hour), proposal.EndsAt, time.Minute)
}

func TestCreateProposalStripsMarkup(t *testing.T) {
	db := newTestDB(t)
	logic := NewProposalLogic(db)
	author := createTestUser(t, db, "author")

	proposal, err := logic.CreateProposal("idea-1", author.Id, "<b>Bold</b> title", "<script>alert(1)</script>desc", 3)
	require.NoError(t, err)
	require.Equal(t, "Bold title", proposal.Title)
	require.Equal(t, "desc", proposal.Description)
}

func TestListProposalsOrderAndAnnotation(t *testing.T) {
	db := newTestDB(t)
	proposalLogic := NewProposalLogic(db)
	voteLogic := NewVoteLogic(db)

	userA := createTestUser(t, db, "alice")
	userB := createTestUser(t, db, "bob")
	userC := createTestUser(t, db, "carol")

	older := createOpenProposal(t, db, userA.Id)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := createOpenProposal(t, db, userA.Id)

	// B和C都投赞成,B改投反对
	_, err := voteLogic.CastVote(newer.Id, userB.Id, model.VoteChoiceFor)
	require.NoError(t, err)
	_, err = voteLogic.CastVote(newer.Id, userC.Id, model.VoteChoiceFor)
	require.NoError(t, err)
	_, err = voteLogic.CastVote(newer.Id, userB.Id, model.VoteChoiceAgainst)
	require.NoError(t, err)

	views, err := proposalLogic.ListProposals("idea-1", userC.Id)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// createdAt 倒序
	require.Equal(t, newer.Id, views[0].Id)
	require.Equal(t, older.Id, views[1].Id)

	// 最终计票 for=1 against=1,C看到自己的票还是 for
	require.EqualValues(t, 1, views[0].VotesFor)
	require.EqualValues(t, 1, views[0].VotesAgainst)
	require.EqualValues(t, 0, views[0].VotesAbstain)
	require.Equal(t, model.VoteChoiceFor, views[0].UserVote)
	require.Empty(t, views[1].UserVote)
}

func TestListProposalsComputesEffectiveStatusWithoutMutation(t *testing.T) {
	db := newTestDB(t)
	logic := NewProposalLogic(db)
	author := createTestUser(t, db, "author")

	proposal := createOpenProposal(t, db, author.Id)
	require.NoError(t, db.Model(proposal).Update("ends_at", time.Now().Add(-time.Minute)).Error)

	views, err := logic.ListProposals("idea-1", 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, model.ProposalStatusExpired, views[0].EffectiveStatus)

	// 读路径不回写存储状态
	var stored model.ProposalModel
	require.NoError(t, db.First(&stored, proposal.Id).Error)
	require.Equal(t, model.ProposalStatusOpen, stored.Status)
}

func TestGetProposalNotFound(t *testing.T) {
	db := newTestDB(t)
	logic := NewProposalLogic(db)

	_, err := logic.GetProposal(42, 0)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
