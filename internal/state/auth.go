package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/metrics"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// Options carries the dependencies shared by every slice.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Notify is called with the slice name after every state change.
	Notify func(slice string)
	// Now defaults to time.Now. Used to check token expiry.
	Now func() time.Time
}

// errIncompleteAuth is returned when a login response or SetSession lacks a
// token or user.
var errIncompleteAuth = errors.New("authentication response is missing token or user")

// AuthState is a snapshot of the auth slice.
type AuthState struct {
	Session model.Session
	Loading bool
	Error   string
	// Restoring is true while a session restore is pending.
	Restoring bool
}

// AuthSlice owns the session. It is the only writer of model.Session.
type AuthSlice struct {
	base
	api    API
	tokens store.TokenStore
	now    func() time.Time

	session   model.Session
	tr        tracker
	restoring int
}

// NewAuthSlice creates the auth slice with an empty session.
func NewAuthSlice(a API, tokens store.TokenStore, opts Options) *AuthSlice {
	s := &AuthSlice{api: a, tokens: tokens, now: opts.Now}
	if s.now == nil {
		s.now = time.Now
	}
	s.init(SliceAuth, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *AuthSlice) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AuthState{
		Session:   s.session,
		Loading:   s.tr.loading(),
		Error:     s.tr.err,
		Restoring: s.restoring > 0,
	}
}

// Session returns the current session.
func (s *AuthSlice) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Login authenticates, persists the token and stores the session.
func (s *AuthSlice) Login(ctx context.Context, username, password string) (model.Session, error) {
	return run(ctx, &s.base, &s.tr, operation[model.Session]{
		name:     "login",
		fallback: "Login failed",
		message:  api.AuthMessage,
		call: func(ctx context.Context) (model.Session, error) {
			resp, err := s.api.Login(ctx, api.Credentials{Username: username, Password: password})
			if err != nil {
				return model.Session{}, err
			}
			session := model.NewSession(resp.BearerToken(), resp.User)
			if !session.IsAuthenticated {
				return model.Session{}, errIncompleteAuth
			}
			if err := s.tokens.SetToken(ctx, session.Token); err != nil {
				return model.Session{}, fmt.Errorf("persisting token: %w", err)
			}
			return session, nil
		},
		fulfilled: func(session model.Session) {
			s.session = session
		},
	})
}

// Register creates an account. The session is stored only when the server
// answers with both a token and a user; otherwise the caller is expected to
// log in.
func (s *AuthSlice) Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error) {
	return run(ctx, &s.base, &s.tr, operation[*api.AuthResponse]{
		name:     "register",
		fallback: "Registration failed",
		message:  api.AuthMessage,
		call: func(ctx context.Context) (*api.AuthResponse, error) {
			resp, err := s.api.Register(ctx, reg)
			if err != nil {
				return nil, err
			}
			if token := resp.BearerToken(); token != "" && resp.User != nil {
				if err := s.tokens.SetToken(ctx, token); err != nil {
					return nil, fmt.Errorf("persisting token: %w", err)
				}
			}
			return resp, nil
		},
		fulfilled: func(resp *api.AuthResponse) {
			if session := model.NewSession(resp.BearerToken(), resp.User); session.IsAuthenticated {
				s.session = session
			}
		},
	})
}

// Restore rebuilds the session from the persisted token. Without a token,
// or with a JWT that has already expired, no request is made and the
// session ends up empty.
func (s *AuthSlice) Restore(ctx context.Context) (model.Session, error) {
	s.mu.Lock()
	s.restoring++
	s.mu.Unlock()

	return run(ctx, &s.base, &s.tr, operation[model.Session]{
		name:     "restore",
		fallback: "Failed to restore session",
		call:     s.restore,
		fulfilled: func(session model.Session) {
			s.session = session
			s.restoring--
		},
		rejected: func() {
			s.session = model.Session{}
			s.restoring--
		},
	})
}

func (s *AuthSlice) restore(ctx context.Context) (model.Session, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("reading persisted token: %w", err)
	}
	if token == "" {
		return model.Session{}, nil
	}

	if claims, err := auth.Inspect(token); err == nil && auth.Expired(claims, s.now()) {
		s.log.Info("persisted token expired, discarding", zap.Time("expired_at", claims.ExpiresAt.Time))
		if err := s.tokens.ClearToken(ctx); err != nil {
			return model.Session{}, fmt.Errorf("purging expired token: %w", err)
		}
		return model.Session{}, nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		return model.Session{}, err
	}
	return model.NewSession(token, user), nil
}

// SetSession stores a session obtained outside the slice, e.g. from a raw
// login call. The token is persisted first. A token without a user, or the
// reverse, is refused and nothing is stored.
func (s *AuthSlice) SetSession(ctx context.Context, token string, user *model.User) error {
	session := model.NewSession(token, user)
	if !session.IsAuthenticated {
		return errIncompleteAuth
	}
	if err := s.tokens.SetToken(ctx, session.Token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	s.changed()
	return nil
}

// Logout purges the persisted token and clears the session. The session is
// cleared even if the purge fails.
func (s *AuthSlice) Logout(ctx context.Context) error {
	err := s.tokens.ClearToken(ctx)
	if err != nil {
		s.log.Error("purging persisted token", zap.Error(err))
		err = fmt.Errorf("purging token: %w", err)
	}

	s.mu.Lock()
	s.session = model.Session{}
	s.tr.err = ""
	s.mu.Unlock()
	s.changed()
	return err
}

// ClearError resets the error.
func (s *AuthSlice) ClearError() { s.clearError(&s.tr) }

// HandleEvent applies a session event from the adapter. The adapter has
// already purged the token; the slice only drops its in-memory session.
func (s *AuthSlice) HandleEvent(ev api.Event) {
	if ev.Kind != api.EventUnauthorized {
		return
	}
	s.log.Info("session torn down", zap.String("method", ev.Method), zap.String("path", ev.Path))

	s.mu.Lock()
	s.session = model.Session{}
	s.mu.Unlock()
	s.changed()
}

// HandleEvents applies events until ctx is done or events is closed.
func (s *AuthSlice) HandleEvents(ctx context.Context, events <-chan api.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ev)
		}
	}
}
