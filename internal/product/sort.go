package product

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names one of the supported orderings. An unrecognized key
// leaves the collection in its current order.
type SortKey string

const (
	SortTitle     SortKey = "title"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortDiscount  SortKey = "discount"
	SortStock     SortKey = "stock"
)

// SortProducts returns a new ordered slice; the input is never mutated.
// Equal keys keep their original relative order.
func SortProducts(products []Product, key SortKey) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortRating, SortPopular:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	case SortTitle:
		c := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	case SortDiscount:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DiscountPercentage > sorted[j].DiscountPercentage
		})
	case SortStock:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stock > sorted[j].Stock })
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	}

	return sorted
}
