package product

// Paginate returns the first min(page*pageSize, len) products: a
// cumulative "load more" view, not a single page window. Pages past the
// end return the whole collection.
func Paginate(products []Product, page, pageSize int) []Product {
	end := page * pageSize
	if end < 0 {
		end = 0
	}
	if end > len(products) {
		end = len(products)
	}
	return products[:end]
}
