// Package apitest provides an in-memory lost-and-found backend for tests.
// It speaks the same contract as the real API: bcrypt-checked logins,
// HS256 bearer tokens, {"error": ...} bodies and admin-only routes.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/model"
)

// Secret signs the tokens the backend issues.
const Secret = "apitest-secret"

type account struct {
	user model.User
	hash []byte
}

// Request is a request the backend received.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type failure struct {
	status int
	body   any
}

// Backend is the fake API. Its zero value is not usable; call New.
type Backend struct {
	log *zap.Logger

	mu       sync.Mutex
	nextID   int64
	users    map[int64]*account
	items    []*model.Item
	comments []model.Comment
	claims   []*model.Claim
	rewards  []*model.Reward
	tokens   map[string]bool
	requests []Request
	failures map[string]failure
}

// New returns an empty backend.
func New(log *zap.Logger) *Backend {
	return &Backend{
		log:      logger.OrNop(log),
		users:    make(map[int64]*account),
		tokens:   make(map[string]bool),
		failures: make(map[string]failure),
	}
}

// Start serves a new backend on a local listener for the duration of t.
func Start(t testing.TB) (*Backend, *httptest.Server) {
	t.Helper()
	b := New(nil)
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, srv
}

// Handler returns the HTTP routes.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.logRequests)
	r.Use(b.injectFailures)

	r.Post("/login", b.login)
	r.Post("/register", b.register)

	r.Group(func(r chi.Router) {
		r.Use(b.authenticate)

		r.Get("/me", b.me)
		r.Patch("/users/me", b.updateMe)

		r.Get("/items", b.listItems)
		r.Post("/items", b.createItem)
		r.Get("/items/{id}", b.getItem)
		r.Patch("/items/{id}", b.updateItem)
		r.Delete("/items/{id}", b.deleteItem)
		r.Post("/images", b.addImage)

		r.Get("/comments", b.listComments)
		r.Post("/comments", b.createComment)

		r.Post("/claims", b.createClaim)

		r.Post("/rewards", b.offerReward)
		r.Patch("/rewards/{id}/pay", b.payReward)
		r.Get("/rewards/history", b.rewardHistory)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/users", b.listUsers)
			r.Delete("/users/{id}", b.deleteUser)
			r.Get("/claims", b.listClaims)
			r.Patch("/claims/{id}/approve", b.approveClaim)
			r.Patch("/claims/{id}/reject", b.rejectClaim)
		})
	})

	return r
}

// AddUser creates an account and returns it.
func (b *Backend) AddUser(username, password string, role model.Role) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(username, "", hash, role)
}

func (b *Backend) addUserLocked(username, email string, hash []byte, role model.Role) model.User {
	b.nextID++
	u := model.User{
		ID:        b.nextID,
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: model.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	b.users[u.ID] = &account{user: u, hash: hash}
	return u
}

// Token issues a valid token for the user.
func (b *Backend) Token(userID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	token, err := b.issueLocked(userID, auth.TokenExpiry)
	if err != nil {
		panic(err)
	}
	return token
}

// ExpiredToken returns a correctly signed token whose exp is in the past.
func (b *Backend) ExpiredToken(userID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	token, err := b.issueLocked(userID, -time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

func (b *Backend) issueLocked(userID int64, ttl time.Duration) (string, error) {
	acc := b.users[userID]
	var username string
	var role model.Role
	if acc != nil {
		username, role = acc.user.Username, acc.user.Role
	}
	token, err := auth.GenerateToken(Secret, userID, username, string(role), ttl)
	if err != nil {
		return "", err
	}
	b.tokens[token] = true
	return token, nil
}

// RevokeTokens invalidates every token issued so far, as a server restart
// with a rotated key would.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.tokens)
}

// Fail makes every request matching method and path answer with status and
// body until Recover is called. A nil body sends {"error": StatusText}.
func (b *Backend) Fail(method, path string, status int, body any) {
	if body == nil {
		body = map[string]string{"error": http.StatusText(status)}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, body: body}
}

// Recover removes every injected failure.
func (b *Backend) Recover() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.failures)
}

// Requests returns the requests served so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// SeedItem stores an item reported by reporterID and returns it.
func (b *Backend) SeedItem(reporterID int64, item model.NewItem) model.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.createItemLocked(reporterID, item)
}

// SeedReward stores a reward offered by offeredBy and returns it.
func (b *Backend) SeedReward(offeredBy int64, reward model.NewReward) model.Reward {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.offerRewardLocked(offeredBy, reward)
}

// SeedClaim stores a pending claim on itemID by claimantID and returns it.
func (b *Backend) SeedClaim(claimantID, itemID int64) model.Claim {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.createClaimLocked(claimantID, itemID)
}

// Middleware.

type contextKey string

const userKey contextKey = "user"

func currentUser(ctx context.Context) model.User {
	u, _ := ctx.Value(userKey).(model.User)
	return u
}

func (b *Backend) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		b.mu.Unlock()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		b.log.Debug("served",
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (b *Backend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		f, ok := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if ok {
			jsonResponse(w, f.status, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate validates the bearer token. Failures answer 401 with the
// {"msg": ...} body Flask-JWT-Extended produces.
func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			jsonResponse(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ValidateToken(Secret, tokenStr)
		if err != nil {
			jsonResponse(w, http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
			return
		}

		b.mu.Lock()
		live := b.tokens[tokenStr]
		acc := b.users[claims.UserID()]
		b.mu.Unlock()
		if !live || acc == nil {
			jsonResponse(w, http.StatusUnauthorized, map[string]string{"msg": "Token has been revoked"})
			return
		}

		ctx := context.WithValue(r.Context(), userKey, acc.user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := currentUser(r.Context()); !u.IsAdmin() {
			jsonError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Responses.

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
