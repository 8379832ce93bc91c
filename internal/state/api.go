// Package state holds the client-side domain slices. Each slice owns one
// partition of state and runs its operations through a pending, fulfilled
// or rejected lifecycle against the API.
package state

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks github.com/erazemk/najdeno/internal/state API

import (
	"context"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/model"
)

// API is the subset of the HTTP adapter the slices depend on.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error)
	Me(ctx context.Context) (*model.User, error)
	UpdateMe(ctx context.Context, update api.ProfileUpdate) (*model.User, error)

	ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, item model.NewItem) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	AddItemImage(ctx context.Context, itemID int64, imageURL string) (*model.Image, error)
	ClaimItem(ctx context.Context, itemID int64) (*model.Claim, error)

	ListComments(ctx context.Context) ([]model.Comment, error)
	CreateComment(ctx context.Context, comment model.NewComment) (*model.Comment, error)

	OfferReward(ctx context.Context, reward model.NewReward) (*model.Reward, error)
	PayReward(ctx context.Context, id int64) (*model.Reward, error)
	RewardHistory(ctx context.Context) (*model.RewardHistory, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListClaims(ctx context.Context) ([]model.Claim, error)
	ApproveClaim(ctx context.Context, id int64) (*model.Claim, error)
	RejectClaim(ctx context.Context, id int64) (*model.Claim, error)
}

var _ API = (*api.Client)(nil)
