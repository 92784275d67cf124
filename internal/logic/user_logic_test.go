package logic

import (
	"testing"

	"github.com/blues/ideachain/internal/apperr"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	logic := NewUserLogic(db)

	_, err := logic.Register("alice", "")
	require.NoError(t, err)

	_, err = logic.Register("alice", "")
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegisterRejectsBlankUsername(t *testing.T) {
	db := newTestDB(t)

	_, err := NewUserLogic(db).Register("   ", "")
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewUserLogic(db).GetUser(12345)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
