package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_CumulativeView(t *testing.T) {
	products := make([]Product, 25)
	for i := range products {
		products[i] = Product{ID: i + 1}
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantLen  int
	}{
		{"first page", 1, 12, 12},
		{"second page includes first", 2, 12, 24},
		{"past the end returns everything", 10, 12, 25},
		{"exact boundary", 5, 5, 25},
		{"zero page", 0, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(products, tt.page, tt.pageSize)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, 1, got[0].ID)
				assert.Equal(t, tt.wantLen, got[len(got)-1].ID)
			}
		})
	}
}

func TestPaginate_EmptyInput(t *testing.T) {
	assert.Empty(t, Paginate(nil, 1, 12))
}
