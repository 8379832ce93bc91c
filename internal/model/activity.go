package model

// Comment is a comment left on an item.
type Comment struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	UserID    int64     `json:"user_id,omitempty"`
	Author    *UserRef  `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
}

// NewComment is the payload for creating a comment.
type NewComment struct {
	ItemID  int64  `json:"item_id"`
	Content string `json:"content"`
}

// RewardStatus is the state of a reward.
type RewardStatus string

// Reward statuses.
const (
	RewardStatusOffered RewardStatus = "offered"
	RewardStatusPaid    RewardStatus = "paid"
)

// Reward is a monetary reward offered for an item.
type Reward struct {
	ID           int64        `json:"id"`
	ItemID       int64        `json:"item_id"`
	Amount       float64      `json:"amount"`
	OfferedByID  int64        `json:"offered_by_id"`
	ReceivedByID *int64       `json:"received_by_id"`
	Status       RewardStatus `json:"status"`
}

// NewReward is the payload for offering a reward.
type NewReward struct {
	ItemID       int64   `json:"item_id"`
	Amount       float64 `json:"amount"`
	ReceivedByID *int64  `json:"received_by_id,omitempty"`
}

// RewardHistory is the combined reward listing of the current user.
type RewardHistory struct {
	Offered  []Reward `json:"offered"`
	Received []Reward `json:"received"`
}

// ClaimStatus is the moderation state of a claim.
type ClaimStatus string

// Claim statuses.
const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// Claim is a user's claim on a found item, moderated by admins.
type Claim struct {
	ID         int64       `json:"id"`
	ItemID     int64       `json:"item_id"`
	Status     ClaimStatus `json:"status"`
	ClaimantID int64       `json:"claimant_id,omitempty"`
	Claimant   *UserRef    `json:"claimant,omitempty"`
}
