package state

import (
	"context"
	"slices"

	"github.com/erazemk/najdeno/internal/model"
)

// AdminState is a snapshot of the admin slice.
type AdminState struct {
	Users   []model.User
	Claims  []model.Claim
	Rewards []model.Reward
	Loading bool
	Error   string
}

// AdminSlice holds the moderation views.
type AdminSlice struct {
	base
	api API

	users   []model.User
	claims  []model.Claim
	rewards []model.Reward
	tr      tracker
}

// NewAdminSlice creates an empty admin slice.
func NewAdminSlice(a API, opts Options) *AdminSlice {
	s := &AdminSlice{api: a}
	s.init(SliceAdmin, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *AdminSlice) State() AdminState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AdminState{
		Users:   slices.Clone(s.users),
		Claims:  slices.Clone(s.claims),
		Rewards: slices.Clone(s.rewards),
		Loading: s.tr.loading(),
		Error:   s.tr.err,
	}
}

// ClearError resets the error.
func (s *AdminSlice) ClearError() { s.clearError(&s.tr) }

// FetchUsers replaces the user list.
func (s *AdminSlice) FetchUsers(ctx context.Context) ([]model.User, error) {
	return run(ctx, &s.base, &s.tr, operation[[]model.User]{
		name:     "fetchUsers",
		fallback: "Failed to fetch users",
		call:     s.api.ListUsers,
		fulfilled: func(users []model.User) {
			s.users = slices.Clone(users)
		},
	})
}

// DeleteUser deletes a user and drops it from the list. The server's delete
// is taken as authoritative.
func (s *AdminSlice) DeleteUser(ctx context.Context, id int64) error {
	_, err := run(ctx, &s.base, &s.tr, operation[struct{}]{
		name:     "deleteUser",
		fallback: "Failed to delete user",
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteUser(ctx, id)
		},
		fulfilled: func(struct{}) {
			s.users = slices.DeleteFunc(s.users, func(u model.User) bool { return u.ID == id })
		},
	})
	return err
}

// FetchClaims replaces the claim list.
func (s *AdminSlice) FetchClaims(ctx context.Context) ([]model.Claim, error) {
	return run(ctx, &s.base, &s.tr, operation[[]model.Claim]{
		name:     "fetchClaims",
		fallback: "Failed to fetch claims",
		call:     s.api.ListClaims,
		fulfilled: func(claims []model.Claim) {
			s.claims = slices.Clone(claims)
		},
	})
}

// ApproveClaim approves a claim and replaces it with the server's copy.
func (s *AdminSlice) ApproveClaim(ctx context.Context, id int64) (*model.Claim, error) {
	return s.moderate(ctx, "approveClaim", "Failed to approve claim", id, s.api.ApproveClaim)
}

// RejectClaim rejects a claim and replaces it with the server's copy.
func (s *AdminSlice) RejectClaim(ctx context.Context, id int64) (*model.Claim, error) {
	return s.moderate(ctx, "rejectClaim", "Failed to reject claim", id, s.api.RejectClaim)
}

func (s *AdminSlice) moderate(ctx context.Context, name, fallback string, id int64,
	call func(context.Context, int64) (*model.Claim, error)) (*model.Claim, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Claim]{
		name:     name,
		fallback: fallback,
		call: func(ctx context.Context) (*model.Claim, error) {
			return call(ctx, id)
		},
		fulfilled: func(claim *model.Claim) {
			replaceByID(s.claims, *claim, claimIDOf)
		},
	})
}

// FetchAllRewards loads the reward history and shows offered then received
// rewards as one list.
func (s *AdminSlice) FetchAllRewards(ctx context.Context) ([]model.Reward, error) {
	return run(ctx, &s.base, &s.tr, operation[[]model.Reward]{
		name:     "fetchAllRewards",
		fallback: "Failed to fetch all rewards",
		call: func(ctx context.Context) ([]model.Reward, error) {
			h, err := s.api.RewardHistory(ctx)
			if err != nil {
				return nil, err
			}
			return slices.Concat(h.Offered, h.Received), nil
		},
		fulfilled: func(rewards []model.Reward) {
			s.rewards = slices.Clone(rewards)
		},
	})
}

func claimIDOf(c model.Claim) int64 { return c.ID }
