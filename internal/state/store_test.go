package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/apitest"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/guard"
	"github.com/erazemk/najdeno/internal/metrics"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

type harness struct {
	backend *apitest.Backend
	client  *api.Client
	tokens  store.TokenStore
	store   *Store
	nav     chan string
}

func newHarness(t *testing.T, tokens store.TokenStore) *harness {
	t.Helper()
	backend, srv := apitest.Start(t)

	h := &harness{backend: backend, tokens: tokens, nav: make(chan string, 8)}
	client, err := api.New(context.Background(), api.Config{
		BaseURL:   srv.URL,
		Tokens:    tokens,
		Navigator: api.NavigatorFunc(func(p string) { h.nav <- p }),
	})
	require.NoError(t, err)
	h.client = client
	h.store = NewStore(client, tokens, nil, metrics.New())
	return h
}

func TestLoginThenGuardScenario(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens(""))
	h.backend.AddUser("alice", "pw", model.RoleUser)
	ctx := context.Background()

	_, err := h.store.Auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	st := h.store.Auth.State()
	assert.True(t, st.Session.IsAuthenticated)
	assert.Equal(t, model.RoleUser, st.Session.Role())

	router := guard.NewRouter(guard.Routes)
	d := router.Resolve("/admin-dashboard", st.Session, st.Restoring)
	assert.Equal(t, guard.RedirectUnauthorized, d.Outcome)
	assert.Equal(t, guard.Render, guard.Check(st.Session, false, guard.Roles{model.RoleUser, model.RoleAdmin}))
}

func TestUnauthorizedTearsDownViaRun(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens(""))
	h.backend.AddUser("alice", "pw", model.RoleUser)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.store.Run(ctx, h.client.Events()) }()

	_, err := h.store.Auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = h.store.Items.FetchItems(ctx, model.ItemFilter{})
	require.NoError(t, err)

	h.backend.RevokeTokens()
	_, err = h.store.Items.FetchItems(ctx, model.ItemFilter{})
	require.Error(t, err)

	// The item slice records its own rejection.
	assert.Equal(t, "Failed to fetch items", h.store.Items.State().Error)

	// The adapter tears the session down out of band.
	assert.Equal(t, "/login", <-h.nav)
	require.Eventually(t, func() bool {
		return !h.store.Auth.State().Session.IsAuthenticated
	}, time.Second, 5*time.Millisecond)

	token, _ := h.tokens.Token(ctx)
	assert.Empty(t, token)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDrainAppliesQueuedEvents(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens("stale"))
	ctx := context.Background()

	// Any authenticated call with an unknown token is a 401.
	_, err := h.store.Comments.FetchComments(ctx)
	require.Error(t, err)

	require.NoError(t, h.store.Auth.SetSession(ctx, "T", &model.User{ID: 1}))
	assert.Equal(t, 1, h.store.Drain(h.client.Events()))
	assert.False(t, h.store.Auth.Session().IsAuthenticated)
	assert.Equal(t, 0, h.store.Drain(h.client.Events()))
}

func TestRestoreAcrossRunsWithSQLite(t *testing.T) {
	database := db.NewTestDB(t)
	tokens := store.NewSQLiteTokens(database)
	h := newHarness(t, tokens)
	alice := h.backend.AddUser("alice", "pw", model.RoleAdmin)
	ctx := context.Background()

	_, err := h.store.Auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	// A fresh store over the same database picks the session back up.
	fresh := NewStore(h.client, tokens, nil, nil)
	session, err := fresh.Auth.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, alice.ID, session.User.ID)

	require.NoError(t, fresh.Auth.Logout(ctx))
	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRestoreExpiredTokenAgainstBackend(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens(""))
	alice := h.backend.AddUser("alice", "pw", model.RoleUser)
	ctx := context.Background()

	require.NoError(t, h.tokens.SetToken(ctx, h.backend.ExpiredToken(alice.ID)))
	before := len(h.backend.Requests())

	session, err := h.store.Auth.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated)
	assert.Len(t, h.backend.Requests(), before, "no request for an expired token")
}

func TestSubscribe(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens(""))
	alice := h.backend.AddUser("alice", "pw", model.RoleUser)
	ctx := context.Background()
	require.NoError(t, h.store.Auth.SetSession(ctx, h.backend.Token(alice.ID), &alice))

	var mu sync.Mutex
	seen := map[string]int{}
	unsubscribe := h.store.Subscribe(func(slice string) {
		mu.Lock()
		defer mu.Unlock()
		seen[slice]++
	})

	_, err := h.store.Rewards.FetchHistory(ctx)
	require.NoError(t, err)
	_, err = h.store.User.FetchProfile(ctx)
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()
	_, err = h.store.Comments.FetchComments(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]int{SliceReward: 2, SliceUser: 2}, seen)
}

func TestEndToEndFlows(t *testing.T) {
	h := newHarness(t, store.NewMemoryTokens(""))
	h.backend.AddUser("root", "pw", model.RoleAdmin)
	bob := h.backend.AddUser("bob", "pw", model.RoleUser)
	ctx := context.Background()

	_, err := h.store.Auth.Login(ctx, "bob", "pw")
	require.NoError(t, err)

	item, err := h.store.Items.ReportItem(ctx, model.NewItem{Name: "Backpack", Location: "Station", Status: model.ItemStatusLost})
	require.NoError(t, err)
	_, err = h.store.Items.UploadImage(ctx, item.ID, "uploads/bag.jpg")
	require.NoError(t, err)
	assert.Len(t, h.store.Items.State().Items[0].Images, 1)

	_, err = h.store.Comments.CreateComment(ctx, model.NewComment{ItemID: item.ID, Content: "Green, with stickers"})
	require.NoError(t, err)

	offered, err := h.store.Rewards.OfferReward(ctx, model.NewReward{ItemID: item.ID, Amount: 15})
	require.NoError(t, err)
	_, err = h.store.Rewards.PayReward(ctx, offered.ID)
	require.NoError(t, err)
	_, err = h.store.Rewards.FetchHistory(ctx)
	require.NoError(t, err)
	rewards := h.store.Rewards.State()
	require.Len(t, rewards.Offered, 1)
	assert.Equal(t, model.RewardStatusPaid, rewards.Offered[0].Status)

	claim, err := h.store.Items.ClaimItem(ctx, item.ID)
	require.NoError(t, err)

	// Admin-only calls are rejected for bob without tearing the session down.
	_, err = h.store.Admin.FetchUsers(ctx)
	require.Error(t, err)
	assert.Equal(t, "Admin access required", h.store.Admin.State().Error)
	assert.True(t, h.store.Auth.Session().IsAuthenticated)

	require.NoError(t, h.store.Auth.Logout(ctx))
	_, err = h.store.Auth.Login(ctx, "root", "pw")
	require.NoError(t, err)

	_, err = h.store.Admin.FetchClaims(ctx)
	require.NoError(t, err)
	_, err = h.store.Admin.ApproveClaim(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusApproved, h.store.Admin.State().Claims[0].Status)

	_, err = h.store.Admin.FetchUsers(ctx)
	require.NoError(t, err)
	require.NoError(t, h.store.Admin.DeleteUser(ctx, bob.ID))
	assert.Len(t, h.store.Admin.State().Users, 1)
}
