package cart

import "errors"

var (
	ErrInvalidItem      = errors.New("invalid cart item")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// Item is a cart entry. Presentation fields are copied from the product
// at add time so the entry stays stable even if the product later
// disappears from the catalog.
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
	Quantity           int     `json:"quantity"`
}

// State is the in-memory ledger of one logical session. UserID 0 means
// no owner yet. Total and ItemCount are always recomputed from Items.
type State struct {
	UserID    int     `json:"userId"`
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
	Err       string  `json:"error,omitempty"`
}

// Snapshot is the persisted per-user shape.
type Snapshot struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

func (s State) snapshot() Snapshot {
	return Snapshot{Items: s.Items, Total: s.Total, ItemCount: s.ItemCount}
}
