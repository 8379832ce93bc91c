package state

import (
	"context"
	"slices"

	"github.com/erazemk/najdeno/internal/model"
)

// RewardState is a snapshot of the reward slice.
type RewardState struct {
	Offered  []model.Reward
	Received []model.Reward
	Loading  bool
	Error    string
}

// RewardSlice holds the current user's offered and received rewards. The two
// lists are filled by different operations and are not reconciled: paying a
// reward updates Offered only, and FetchHistory is authoritative for both.
type RewardSlice struct {
	base
	api API

	offered  []model.Reward
	received []model.Reward
	tr       tracker
}

// NewRewardSlice creates an empty reward slice.
func NewRewardSlice(a API, opts Options) *RewardSlice {
	s := &RewardSlice{api: a}
	s.init(SliceReward, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *RewardSlice) State() RewardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RewardState{
		Offered:  slices.Clone(s.offered),
		Received: slices.Clone(s.received),
		Loading:  s.tr.loading(),
		Error:    s.tr.err,
	}
}

// ClearError resets the error.
func (s *RewardSlice) ClearError() { s.clearError(&s.tr) }

// OfferReward offers a reward and appends it to Offered.
func (s *RewardSlice) OfferReward(ctx context.Context, reward model.NewReward) (*model.Reward, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Reward]{
		name:     "offerReward",
		fallback: "Failed to offer reward",
		call: func(ctx context.Context) (*model.Reward, error) {
			return s.api.OfferReward(ctx, reward)
		},
		fulfilled: func(created *model.Reward) {
			s.offered = append(s.offered, *created)
		},
	})
}

// PayReward marks a reward paid, replacing it in Offered.
func (s *RewardSlice) PayReward(ctx context.Context, id int64) (*model.Reward, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Reward]{
		name:     "payReward",
		fallback: "Failed to pay reward",
		call: func(ctx context.Context) (*model.Reward, error) {
			return s.api.PayReward(ctx, id)
		},
		fulfilled: func(paid *model.Reward) {
			replaceByID(s.offered, *paid, rewardIDOf)
		},
	})
}

// FetchHistory replaces both lists from one history response.
func (s *RewardSlice) FetchHistory(ctx context.Context) (*model.RewardHistory, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.RewardHistory]{
		name:     "fetchRewardHistory",
		fallback: "Failed to fetch reward history",
		call:     s.api.RewardHistory,
		fulfilled: func(h *model.RewardHistory) {
			s.offered = slices.Clone(h.Offered)
			s.received = slices.Clone(h.Received)
		},
	})
}

func rewardIDOf(r model.Reward) int64 { return r.ID }
