package model

import "strings"

// ItemStatus is the lifecycle state of a reported item.
type ItemStatus string

// Item statuses.
const (
	ItemStatusLost     ItemStatus = "lost"
	ItemStatusFound    ItemStatus = "found"
	ItemStatusClaimed  ItemStatus = "claimed"
	ItemStatusReturned ItemStatus = "returned"
)

// Item represents a lost or found item report.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location"`
	Status      ItemStatus `json:"status"`
	ReporterID  int64      `json:"reporter_id"`
	Reporter    *UserRef   `json:"reporter,omitempty"`
	Images      []Image    `json:"images"`
	ReportedAt  Timestamp  `json:"reported_at,omitzero"`
}

// ReportedBy reports whether the user with the given id filed the item.
func (i *Item) ReportedBy(userID int64) bool {
	return i != nil && userID != 0 && i.ReporterID == userID
}

// Image is an image attached to an item.
type Image struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"item_id"`
	ImageURL string `json:"image_url"`
}

// ResolveURL returns the image's absolute URL. Relative paths are joined to
// base; absolute http(s) and data URLs are returned unchanged.
func (img Image) ResolveURL(base string) string {
	u := img.ImageURL
	if strings.HasPrefix(u, "http") || strings.HasPrefix(u, "data:") || base == "" {
		return u
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(u, "/")
}

// ItemFilter narrows an item listing. Empty fields are not sent.
type ItemFilter struct {
	Status   ItemStatus
	Location string
}

// NewItem is the payload for reporting an item.
type NewItem struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location"`
	Status      ItemStatus `json:"status"`
}

// ItemUpdate is the payload for editing an item. Nil fields are left as is.
type ItemUpdate struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Status      *ItemStatus `json:"status,omitempty"`
}
