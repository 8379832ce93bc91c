package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/metrics"
	"github.com/erazemk/najdeno/internal/store"
)

// Store composes the six slices and fans out change notifications.
type Store struct {
	Auth     *AuthSlice
	User     *UserSlice
	Items    *ItemSlice
	Comments *CommentSlice
	Rewards  *RewardSlice
	Admin    *AdminSlice

	log *zap.Logger

	mu        sync.RWMutex
	nextSub   int
	listeners map[int]func(slice string)
}

// NewStore builds every slice on top of a. Logger and metrics may be nil.
func NewStore(a API, tokens store.TokenStore, log *zap.Logger, m *metrics.Metrics) *Store {
	log = logger.OrNop(log)
	s := &Store{
		log:       log,
		listeners: make(map[int]func(string)),
	}

	opts := Options{Logger: log.Named("state"), Metrics: m, Notify: s.publish}
	s.Auth = NewAuthSlice(a, tokens, opts)
	s.User = NewUserSlice(a, opts)
	s.Items = NewItemSlice(a, opts)
	s.Comments = NewCommentSlice(a, opts)
	s.Rewards = NewRewardSlice(a, opts)
	s.Admin = NewAdminSlice(a, opts)
	return s
}

// Subscribe registers fn to be called with a slice name after every change
// to that slice. fn runs on the goroutine that made the change and must not
// block. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(slice string)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) publish(slice string) {
	s.mu.RLock()
	fns := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(slice)
	}
}

// Run forwards adapter events to the auth slice until ctx is done or events
// is closed.
func (s *Store) Run(ctx context.Context, events <-chan api.Event) error {
	s.log.Debug("listening for session events")
	return s.Auth.HandleEvents(ctx, events)
}

// Drain applies events that are already queued without blocking. Useful for
// one-shot callers that have no goroutine running Run.
func (s *Store) Drain(events <-chan api.Event) int {
	n := 0
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return n
			}
			s.Auth.HandleEvent(ev)
			n++
		default:
			return n
		}
	}
}
