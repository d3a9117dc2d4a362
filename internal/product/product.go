package product

// Product is a catalog record as served by the upstream catalog API.
// Records are immutable once loaded and replaced wholesale on refetch.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category"`
	SKU                string   `json:"sku,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	AvailabilityStatus string   `json:"availabilityStatus,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Reviews            []Review `json:"reviews,omitempty"`
}

// Review is a customer review attached to a product.
type Review struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
}

// Page is one page of catalog results. HasMore is derived as
// skip+limit < totalCount.
type Page struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	Skip       int       `json:"skip"`
	Limit      int       `json:"limit"`
	HasMore    bool      `json:"hasMore"`
}
