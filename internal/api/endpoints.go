package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/najdeno/internal/model"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register payload.
type Registration struct {
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	Password string     `json:"password"`
	Role     model.Role `json:"role,omitempty"`
}

// AuthResponse is returned by login and register. Backends differ on the
// token field name.
type AuthResponse struct {
	Token       string      `json:"token,omitempty"`
	AccessToken string      `json:"access_token,omitempty"`
	User        *model.User `json:"user,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// BearerToken returns whichever token field the server filled.
func (r *AuthResponse) BearerToken() string {
	if r == nil {
		return ""
	}
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// ProfileUpdate is the payload for editing the current user. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ImageAttachment associates an image URL with an item.
type ImageAttachment struct {
	ItemID   int64  `json:"item_id"`
	ImageURL string `json:"image_url"`
}

type claimRequest struct {
	ItemID int64 `json:"item_id"`
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// Login handles POST /login. It bypasses 401 interception.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRaw(ctx, http.MethodPost, "/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register handles POST /register. It bypasses 401 interception.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRaw(ctx, http.MethodPost, "/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me handles GET /me.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe handles PATCH /users/me.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPatch, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListItems handles GET /items. Empty filter fields are omitted.
func (c *Client) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	path := "/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var items []model.Item
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem handles GET /items/:id.
func (c *Client) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodGet, idPath("/items", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem handles POST /items.
func (c *Client) CreateItem(ctx context.Context, item model.NewItem) (*model.Item, error) {
	var created model.Item
	if err := c.do(ctx, http.MethodPost, "/items", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem handles PATCH /items/:id.
func (c *Client) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPatch, idPath("/items", id), update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem handles DELETE /items/:id.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/items", id), nil, nil)
}

// AddItemImage handles POST /images.
func (c *Client) AddItemImage(ctx context.Context, itemID int64, imageURL string) (*model.Image, error) {
	var img model.Image
	body := ImageAttachment{ItemID: itemID, ImageURL: imageURL}
	if err := c.do(ctx, http.MethodPost, "/images", body, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// ClaimItem handles POST /claims.
func (c *Client) ClaimItem(ctx context.Context, itemID int64) (*model.Claim, error) {
	var claim model.Claim
	if err := c.do(ctx, http.MethodPost, "/claims", claimRequest{ItemID: itemID}, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListComments handles GET /comments.
func (c *Client) ListComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.do(ctx, http.MethodGet, "/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment handles POST /comments.
func (c *Client) CreateComment(ctx context.Context, comment model.NewComment) (*model.Comment, error) {
	var created model.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", comment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// OfferReward handles POST /rewards.
func (c *Client) OfferReward(ctx context.Context, reward model.NewReward) (*model.Reward, error) {
	var created model.Reward
	if err := c.do(ctx, http.MethodPost, "/rewards", reward, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// PayReward handles PATCH /rewards/:id/pay.
func (c *Client) PayReward(ctx context.Context, id int64) (*model.Reward, error) {
	var reward model.Reward
	if err := c.do(ctx, http.MethodPatch, idPath("/rewards", id)+"/pay", nil, &reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

// RewardHistory handles GET /rewards/history.
func (c *Client) RewardHistory(ctx context.Context) (*model.RewardHistory, error) {
	var history model.RewardHistory
	if err := c.do(ctx, http.MethodGet, "/rewards/history", nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// ListUsers handles GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser handles DELETE /users/:id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/users", id), nil, nil)
}

// ListClaims handles GET /claims.
func (c *Client) ListClaims(ctx context.Context) ([]model.Claim, error) {
	var claims []model.Claim
	if err := c.do(ctx, http.MethodGet, "/claims", nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ApproveClaim handles PATCH /claims/:id/approve.
func (c *Client) ApproveClaim(ctx context.Context, id int64) (*model.Claim, error) {
	return c.moderateClaim(ctx, id, "approve")
}

// RejectClaim handles PATCH /claims/:id/reject.
func (c *Client) RejectClaim(ctx context.Context, id int64) (*model.Claim, error) {
	return c.moderateClaim(ctx, id, "reject")
}

func (c *Client) moderateClaim(ctx context.Context, id int64, action string) (*model.Claim, error) {
	var claim model.Claim
	if err := c.do(ctx, http.MethodPatch, idPath("/claims", id)+"/"+action, nil, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}
