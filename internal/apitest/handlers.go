package apitest

import (
	"cmp"
	"net/http"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, acc := range b.users {
		if acc.user.Username != req.Username {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
			break
		}
		token, err := b.issueLocked(acc.user.ID, auth.TokenExpiry)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"token": token, "user": acc.user})
		return
	}
	jsonResponse(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	role := model.RoleUser
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, acc := range b.users {
		if acc.user.Username == req.Username {
			jsonResponse(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
			return
		}
	}

	user := b.addUserLocked(req.Username, req.Email, hash, role)
	token, err := b.issueLocked(user.ID, auth.TokenExpiry)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]any{
		"message":      "User registered successfully",
		"access_token": token,
		"user":         user,
	})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, currentUser(r.Context()))
}

type profileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (b *Backend) updateMe(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username != nil && *req.Username == "" {
		jsonError(w, http.StatusBadRequest, "Username cannot be empty")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.users[currentUser(r.Context()).ID]
	if req.Username != nil {
		acc.user.Username = *req.Username
	}
	if req.Email != nil {
		acc.user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.MinCost)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		acc.hash = hash
	}
	jsonResponse(w, http.StatusOK, acc.user)
}

// Items.

func (b *Backend) listItems(w http.ResponseWriter, r *http.Request) {
	status := model.ItemStatus(r.URL.Query().Get("status"))
	location := r.URL.Query().Get("location")

	b.mu.Lock()
	defer b.mu.Unlock()

	items := []model.Item{}
	for _, it := range b.items {
		if status != "" && it.Status != status {
			continue
		}
		if location != "" && it.Location != location {
			continue
		}
		items = append(items, *it)
	}
	jsonResponse(w, http.StatusOK, items)
}

func (b *Backend) createItem(w http.ResponseWriter, r *http.Request) {
	var req model.NewItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Location == "" {
		jsonError(w, http.StatusBadRequest, "Name and location are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	jsonResponse(w, http.StatusCreated, b.createItemLocked(currentUser(r.Context()).ID, req))
}

func (b *Backend) createItemLocked(reporterID int64, req model.NewItem) *model.Item {
	if req.Status == "" {
		req.Status = model.ItemStatusLost
	}
	b.nextID++
	it := &model.Item{
		ID:          b.nextID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
		ReporterID:  reporterID,
		Images:      []model.Image{},
		ReportedAt:  model.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	if acc := b.users[reporterID]; acc != nil {
		it.Reporter = &model.UserRef{ID: acc.user.ID, Username: acc.user.Username}
	}
	b.items = append(b.items, it)
	return it
}

func (b *Backend) findItemLocked(id int64) *model.Item {
	for _, it := range b.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (b *Backend) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it := b.findItemLocked(id)
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	jsonResponse(w, http.StatusOK, it)
}

func (b *Backend) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	var req model.ItemUpdate
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it := b.findItemLocked(id)
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if u := currentUser(r.Context()); !u.IsAdmin() && !it.ReportedBy(u.ID) {
		jsonError(w, http.StatusForbidden, "Not allowed to edit this item")
		return
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Location != nil {
		it.Location = *req.Location
	}
	if req.Status != nil {
		it.Status = *req.Status
	}
	jsonResponse(w, http.StatusOK, it)
}

func (b *Backend) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it := b.findItemLocked(id)
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if u := currentUser(r.Context()); !u.IsAdmin() && !it.ReportedBy(u.ID) {
		jsonError(w, http.StatusForbidden, "Not allowed to delete this item")
		return
	}
	b.items = slices.DeleteFunc(b.items, func(x *model.Item) bool { return x.ID == id })
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

type imageRequest struct {
	ItemID   int64  `json:"item_id"`
	ImageURL string `json:"image_url"`
}

func (b *Backend) addImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageURL == "" {
		jsonError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it := b.findItemLocked(req.ItemID)
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	b.nextID++
	img := model.Image{ID: b.nextID, ItemID: it.ID, ImageURL: req.ImageURL}
	it.Images = append(it.Images, img)
	jsonResponse(w, http.StatusCreated, img)
}

// Comments.

func (b *Backend) listComments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	jsonResponse(w, http.StatusOK, append([]model.Comment{}, b.comments...))
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request) {
	var req model.NewComment
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		jsonError(w, http.StatusBadRequest, "Content is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findItemLocked(req.ItemID) == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	u := currentUser(r.Context())
	b.nextID++
	c := model.Comment{
		ID:        b.nextID,
		ItemID:    req.ItemID,
		UserID:    u.ID,
		Author:    &model.UserRef{ID: u.ID, Username: u.Username},
		Content:   req.Content,
		CreatedAt: model.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	b.comments = append(b.comments, c)
	jsonResponse(w, http.StatusCreated, c)
}

// Claims.

type claimRequest struct {
	ItemID int64 `json:"item_id"`
}

func (b *Backend) createClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findItemLocked(req.ItemID) == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	jsonResponse(w, http.StatusCreated, b.createClaimLocked(currentUser(r.Context()).ID, req.ItemID))
}

func (b *Backend) createClaimLocked(claimantID, itemID int64) *model.Claim {
	b.nextID++
	c := &model.Claim{
		ID:         b.nextID,
		ItemID:     itemID,
		Status:     model.ClaimStatusPending,
		ClaimantID: claimantID,
	}
	if acc := b.users[claimantID]; acc != nil {
		c.Claimant = &model.UserRef{ID: acc.user.ID, Username: acc.user.Username}
	}
	b.claims = append(b.claims, c)
	return c
}

func (b *Backend) listClaims(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	claims := make([]model.Claim, 0, len(b.claims))
	for _, c := range b.claims {
		claims = append(claims, *c)
	}
	jsonResponse(w, http.StatusOK, claims)
}

func (b *Backend) approveClaim(w http.ResponseWriter, r *http.Request) {
	b.moderateClaim(w, r, model.ClaimStatusApproved)
}

func (b *Backend) rejectClaim(w http.ResponseWriter, r *http.Request) {
	b.moderateClaim(w, r, model.ClaimStatusRejected)
}

func (b *Backend) moderateClaim(w http.ResponseWriter, r *http.Request, status model.ClaimStatus) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid claim id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.claims {
		if c.ID != id {
			continue
		}
		if c.Status != model.ClaimStatusPending {
			jsonError(w, http.StatusConflict, "Claim already resolved")
			return
		}
		c.Status = status
		if status == model.ClaimStatusApproved {
			if it := b.findItemLocked(c.ItemID); it != nil {
				it.Status = model.ItemStatusClaimed
			}
		}
		jsonResponse(w, http.StatusOK, c)
		return
	}
	jsonError(w, http.StatusNotFound, "Claim not found")
}

// Rewards.

func (b *Backend) offerReward(w http.ResponseWriter, r *http.Request) {
	var req model.NewReward
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		jsonError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findItemLocked(req.ItemID) == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	jsonResponse(w, http.StatusCreated, b.offerRewardLocked(currentUser(r.Context()).ID, req))
}

func (b *Backend) offerRewardLocked(offeredBy int64, req model.NewReward) *model.Reward {
	b.nextID++
	rw := &model.Reward{
		ID:           b.nextID,
		ItemID:       req.ItemID,
		Amount:       req.Amount,
		OfferedByID:  offeredBy,
		ReceivedByID: req.ReceivedByID,
		Status:       model.RewardStatusOffered,
	}
	b.rewards = append(b.rewards, rw)
	return rw
}

func (b *Backend) payReward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid reward id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, rw := range b.rewards {
		if rw.ID != id {
			continue
		}
		if rw.OfferedByID != currentUser(r.Context()).ID {
			jsonError(w, http.StatusForbidden, "Only the offering user can pay this reward")
			return
		}
		if rw.Status == model.RewardStatusPaid {
			jsonError(w, http.StatusConflict, "Reward already paid")
			return
		}
		rw.Status = model.RewardStatusPaid
		jsonResponse(w, http.StatusOK, rw)
		return
	}
	jsonError(w, http.StatusNotFound, "Reward not found")
}

func (b *Backend) rewardHistory(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r.Context()).ID

	b.mu.Lock()
	defer b.mu.Unlock()

	history := model.RewardHistory{Offered: []model.Reward{}, Received: []model.Reward{}}
	for _, rw := range b.rewards {
		if rw.OfferedByID == me {
			history.Offered = append(history.Offered, *rw)
		}
		if rw.ReceivedByID != nil && *rw.ReceivedByID == me {
			history.Received = append(history.Received, *rw)
		}
	}
	jsonResponse(w, http.StatusOK, history)
}

// Users.

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	users := make([]model.User, 0, len(b.users))
	for _, acc := range b.users {
		users = append(users, acc.user)
	}
	slices.SortFunc(users, func(x, y model.User) int { return cmp.Compare(x.ID, y.ID) })
	jsonResponse(w, http.StatusOK, users)
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[id]; !ok {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}
	delete(b.users, id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
