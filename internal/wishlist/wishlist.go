package wishlist

import "errors"

var (
	ErrInvalidItem = errors.New("invalid wishlist item")
)

// Item is a saved product. Membership is boolean: at most one entry per
// productId, no quantity. Presentation fields are copied at save time.
type Item struct {
	ProductID          int     `json:"productId"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	Price              float64 `json:"price"`
	Stock              int     `json:"stock"`
	Category           string  `json:"category,omitempty"`
	SKU                string  `json:"sku,omitempty"`
	Code               string  `json:"code,omitempty"`
	Thumbnail          string  `json:"thumbnail,omitempty"`
	AvailabilityStatus string  `json:"availabilityStatus,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
}

// State is the in-memory wishlist of one logical session. UserID 0
// means no owner yet.
type State struct {
	UserID    int    `json:"userId"`
	Items     []Item `json:"items"`
	ItemCount int    `json:"itemCount"`
	Err       string `json:"error,omitempty"`
}

// Snapshot is the persisted per-user shape.
type Snapshot struct {
	Items []Item `json:"items"`
}

func (s State) snapshot() Snapshot {
	return Snapshot{Items: s.Items}
}
