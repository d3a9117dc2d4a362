package product

import "strings"

// PriceRange is an inclusive [Min, Max] price window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filter holds optional criteria. Zero-valued fields are not applied.
type Filter struct {
	Category           string      `json:"category,omitempty"`
	Search             string      `json:"search,omitempty"`
	PriceRange         *PriceRange `json:"priceRange,omitempty"`
	MinRating          float64     `json:"rating,omitempty"`
	Brands             []string    `json:"brand,omitempty"`
	InStock            bool        `json:"inStock,omitempty"`
	OnSale             bool        `json:"onSale,omitempty"`
	AvailabilityStatus string      `json:"availabilityStatus,omitempty"`
	Tags               []string    `json:"tags,omitempty"`
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Category == "" &&
		strings.TrimSpace(f.Search) == "" &&
		f.PriceRange == nil &&
		f.MinRating == 0 &&
		len(f.Brands) == 0 &&
		!f.InStock &&
		!f.OnSale &&
		f.AvailabilityStatus == "" &&
		len(f.Tags) == 0
}

// ApplyFilter reduces products to the subset matching every set criterion,
// preserving relative order. An empty filter returns the input slice
// unchanged so callers can memoize on identity.
func ApplyFilter(products []Product, f Filter) []Product {
	if f.IsZero() {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p Product) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !matchesSearch(p, term) {
			return false
		}
	}

	if f.Category != "" && p.Category != f.Category {
		return false
	}

	if f.PriceRange != nil && (p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max) {
		return false
	}

	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}

	if f.InStock && p.Stock <= 0 {
		return false
	}

	if f.OnSale && p.DiscountPercentage <= 0 {
		return false
	}

	if len(f.Brands) > 0 {
		// a product without a brand fails a brand filter
		if p.Brand == "" || !contains(f.Brands, p.Brand) {
			return false
		}
	}

	if f.AvailabilityStatus != "" && p.AvailabilityStatus != f.AvailabilityStatus {
		return false
	}

	if len(f.Tags) > 0 {
		if len(p.Tags) == 0 || !intersects(f.Tags, p.Tags) {
			return false
		}
	}

	return true
}

// matchesSearch is a case-insensitive substring match OR'd across title,
// description, category, brand and tags.
func matchesSearch(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	if p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, s := range a {
		if contains(b, s) {
			return true
		}
	}
	return false
}
