package state

import (
	"context"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/model"
)

// UserState is a snapshot of the user slice.
type UserState struct {
	Profile *model.User
	Loading bool
	Error   string
}

// UserSlice holds the current user's own profile.
type UserSlice struct {
	base
	api API

	profile *model.User
	tr      tracker
}

// NewUserSlice creates an empty user slice.
func NewUserSlice(a API, opts Options) *UserSlice {
	s := &UserSlice{api: a}
	s.init(SliceUser, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *UserSlice) State() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := UserState{Loading: s.tr.loading(), Error: s.tr.err}
	if s.profile != nil {
		p := *s.profile
		st.Profile = &p
	}
	return st
}

// ClearError resets the error.
func (s *UserSlice) ClearError() { s.clearError(&s.tr) }

// FetchProfile loads the current user. A failure also clears the profile.
func (s *UserSlice) FetchProfile(ctx context.Context) (*model.User, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.User]{
		name:     "fetchProfile",
		fallback: "Failed to fetch user profile",
		call:     s.api.Me,
		fulfilled: func(u *model.User) {
			p := *u
			s.profile = &p
		},
		rejected: func() {
			s.profile = nil
		},
	})
}

// UpdateProfile edits the current user and replaces the profile.
func (s *UserSlice) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*model.User, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.User]{
		name:     "updateProfile",
		fallback: "Failed to update user profile",
		call: func(ctx context.Context) (*model.User, error) {
			return s.api.UpdateMe(ctx, update)
		},
		fulfilled: func(u *model.User) {
			p := *u
			s.profile = &p
		},
	})
}
