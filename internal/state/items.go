package state

import (
	"context"
	"net/http"
	"slices"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/model"
)

// ItemState is a snapshot of the item slice.
type ItemState struct {
	Items []model.Item
	// SelectedItem is nil until FetchItem succeeds, after it fails, and when
	// the item does not exist (Error stays empty then).
	SelectedItem *model.Item
	// Claims are the claims this client filed.
	Claims  []model.Claim
	Loading bool
	Error   string

	UploadingImage   bool
	ImageUploadError string
}

// ItemSlice owns item listings, the selected item and image uploads. Uploads
// track their own loading and error so a failed upload does not clobber an
// unrelated fetch error.
type ItemSlice struct {
	base
	api API

	items    []model.Item
	selected *model.Item
	claims   []model.Claim
	tr       tracker
	upload   tracker
}

// NewItemSlice creates an empty item slice.
func NewItemSlice(a API, opts Options) *ItemSlice {
	s := &ItemSlice{api: a}
	s.init(SliceItem, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *ItemSlice) State() ItemState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := ItemState{
		Items:            cloneItems(s.items),
		Claims:           slices.Clone(s.claims),
		Loading:          s.tr.loading(),
		Error:            s.tr.err,
		UploadingImage:   s.upload.loading(),
		ImageUploadError: s.upload.err,
	}
	if s.selected != nil {
		sel := cloneItem(*s.selected)
		st.SelectedItem = &sel
	}
	return st
}

// FetchItems replaces the list with the items matching filter.
func (s *ItemSlice) FetchItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	return run(ctx, &s.base, &s.tr, operation[[]model.Item]{
		name:     "fetchItems",
		fallback: "Failed to fetch items",
		call: func(ctx context.Context) ([]model.Item, error) {
			return s.api.ListItems(ctx, filter)
		},
		fulfilled: func(items []model.Item) {
			s.items = cloneItems(items)
		},
	})
}

// FetchItem loads one item into SelectedItem. A missing item settles with a
// nil item and no error.
func (s *ItemSlice) FetchItem(ctx context.Context, id int64) (*model.Item, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Item]{
		name:     "fetchItem",
		fallback: "Failed to fetch item",
		call: func(ctx context.Context) (*model.Item, error) {
			item, err := s.api.GetItem(ctx, id)
			if api.StatusCode(err) == http.StatusNotFound {
				return nil, nil
			}
			return item, err
		},
		fulfilled: func(item *model.Item) {
			if item == nil {
				s.selected = nil
				return
			}
			sel := cloneItem(*item)
			s.selected = &sel
		},
		rejected: func() {
			s.selected = nil
		},
	})
}

// ReportItem creates an item and appends it to the list.
func (s *ItemSlice) ReportItem(ctx context.Context, item model.NewItem) (*model.Item, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Item]{
		name:     "reportItem",
		fallback: "Failed to report item",
		call: func(ctx context.Context) (*model.Item, error) {
			return s.api.CreateItem(ctx, item)
		},
		fulfilled: func(created *model.Item) {
			s.items = append(s.items, cloneItem(*created))
		},
	})
}

// UpdateItem edits an item, replacing it in the list and in SelectedItem.
func (s *ItemSlice) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Item]{
		name:     "updateItem",
		fallback: "Failed to update item",
		call: func(ctx context.Context) (*model.Item, error) {
			return s.api.UpdateItem(ctx, id, update)
		},
		fulfilled: func(updated *model.Item) {
			replaceByID(s.items, cloneItem(*updated), itemIDOf)
			if s.selected != nil && s.selected.ID == updated.ID {
				sel := cloneItem(*updated)
				s.selected = &sel
			}
		},
	})
}

// DeleteItem deletes an item and drops it locally.
func (s *ItemSlice) DeleteItem(ctx context.Context, id int64) error {
	_, err := run(ctx, &s.base, &s.tr, operation[struct{}]{
		name:     "deleteItem",
		fallback: "Failed to delete item",
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteItem(ctx, id)
		},
		fulfilled: func(struct{}) {
			s.items = slices.DeleteFunc(s.items, func(it model.Item) bool { return it.ID == id })
			if s.selected != nil && s.selected.ID == id {
				s.selected = nil
			}
		},
	})
	return err
}

// ClaimItem files a claim on an item.
func (s *ItemSlice) ClaimItem(ctx context.Context, itemID int64) (*model.Claim, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Claim]{
		name:     "claimItem",
		fallback: "Failed to claim item",
		call: func(ctx context.Context) (*model.Claim, error) {
			return s.api.ClaimItem(ctx, itemID)
		},
		fulfilled: func(claim *model.Claim) {
			s.claims = append(s.claims, *claim)
		},
	})
}

// UploadImage attaches an image URL to an item. It runs on the upload
// sub-state; on success the image is appended to the item wherever it is
// held.
func (s *ItemSlice) UploadImage(ctx context.Context, itemID int64, imageURL string) (*model.Image, error) {
	return run(ctx, &s.base, &s.upload, operation[*model.Image]{
		name:     "uploadImage",
		fallback: "Failed to upload image",
		call: func(ctx context.Context) (*model.Image, error) {
			return s.api.AddItemImage(ctx, itemID, imageURL)
		},
		fulfilled: func(img *model.Image) {
			if s.selected != nil && s.selected.ID == itemID {
				s.selected.Images = append(s.selected.Images, *img)
			}
			for i := range s.items {
				if s.items[i].ID == itemID {
					s.items[i].Images = append(s.items[i].Images, *img)
				}
			}
		},
	})
}

// ClearError resets the main error.
func (s *ItemSlice) ClearError() { s.clearError(&s.tr) }

// ClearImageUploadError resets the upload error.
func (s *ItemSlice) ClearImageUploadError() { s.clearError(&s.upload) }

func itemIDOf(it model.Item) int64 { return it.ID }

// cloneItem copies it so the slice never shares an Images backing array
// with callers.
func cloneItem(it model.Item) model.Item {
	it.Images = slices.Clone(it.Images)
	return it
}

func cloneItems(items []model.Item) []model.Item {
	if items == nil {
		return nil
	}
	out := make([]model.Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}
