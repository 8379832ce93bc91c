package state

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/model"
)

func TestDeleteUserRemovesByID(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListUsers(gomock.Any()).Return([]model.User{{ID: 7}, {ID: 8}}, nil)
	m.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(nil)

	s := NewAdminSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchUsers(ctx)
	require.NoError(t, err)
	require.NoError(t, s.DeleteUser(ctx, 7))

	assert.Equal(t, []model.User{{ID: 8}}, s.State().Users)
}

func TestDeleteUserFailureKeepsList(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(&api.Error{Status: 500})

	s := NewAdminSlice(m, Options{})
	s.users = []model.User{{ID: 7}, {ID: 8}}

	require.Error(t, s.DeleteUser(context.Background(), 7))
	st := s.State()
	assert.Len(t, st.Users, 2)
	assert.Equal(t, "Failed to delete user", st.Error)
}

func TestApproveClaimReplacesInPlace(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListClaims(gomock.Any()).Return([]model.Claim{
		{ID: 1, Status: model.ClaimStatusPending},
		{ID: 2, Status: model.ClaimStatusPending},
		{ID: 3, Status: model.ClaimStatusPending},
	}, nil)
	m.EXPECT().ApproveClaim(gomock.Any(), int64(2)).
		Return(&model.Claim{ID: 2, Status: model.ClaimStatusApproved}, nil)
	m.EXPECT().RejectClaim(gomock.Any(), int64(3)).
		Return(&model.Claim{ID: 3, Status: model.ClaimStatusRejected}, nil)

	s := NewAdminSlice(m, Options{})
	ctx := context.Background()

	_, err := s.FetchClaims(ctx)
	require.NoError(t, err)
	_, err = s.ApproveClaim(ctx, 2)
	require.NoError(t, err)
	_, err = s.RejectClaim(ctx, 3)
	require.NoError(t, err)

	claims := s.State().Claims
	require.Len(t, claims, 3)
	assert.Equal(t, int64(2), claims[1].ID)
	assert.Equal(t, model.ClaimStatusPending, claims[0].Status)
	assert.Equal(t, model.ClaimStatusApproved, claims[1].Status)
	assert.Equal(t, model.ClaimStatusRejected, claims[2].Status)
}

func TestModerationFallbacks(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().ListClaims(gomock.Any()).Return(nil, &api.Error{Status: 500})
	m.EXPECT().ApproveClaim(gomock.Any(), gomock.Any()).Return(nil, &api.Error{Status: 500})
	m.EXPECT().RejectClaim(gomock.Any(), gomock.Any()).Return(nil, serverError(409, "Claim already resolved"))
	m.EXPECT().ListUsers(gomock.Any()).Return(nil, &api.Error{Status: 403, ErrorText: "Admin access required"})

	s := NewAdminSlice(m, Options{})
	ctx := context.Background()

	_, _ = s.FetchClaims(ctx)
	assert.Equal(t, "Failed to fetch claims", s.State().Error)
	_, _ = s.ApproveClaim(ctx, 1)
	assert.Equal(t, "Failed to approve claim", s.State().Error)
	_, _ = s.RejectClaim(ctx, 1)
	assert.Equal(t, "Claim already resolved", s.State().Error)
	_, _ = s.FetchUsers(ctx)
	assert.Equal(t, "Admin access required", s.State().Error)
}

func TestFetchAllRewardsConcatenates(t *testing.T) {
	m := newMockAPI(t)
	m.EXPECT().RewardHistory(gomock.Any()).Return(&model.RewardHistory{
		Offered:  []model.Reward{{ID: 1}, {ID: 2}},
		Received: []model.Reward{{ID: 3}},
	}, nil)
	m.EXPECT().RewardHistory(gomock.Any()).Return(nil, &api.Error{Status: 500})

	s := NewAdminSlice(m, Options{})
	ctx := context.Background()

	rewards, err := s.FetchAllRewards(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Reward{{ID: 1}, {ID: 2}, {ID: 3}}, rewards)
	assert.Equal(t, rewards, s.State().Rewards)

	_, err = s.FetchAllRewards(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch all rewards", s.State().Error)
	assert.Len(t, s.State().Rewards, 3, "a failed refresh keeps the last list")
}
