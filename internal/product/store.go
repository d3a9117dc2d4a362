package product

import "sync"

// Store is the normalized entity store: canonical product records keyed
// by id plus the order they were loaded in. The storefront owns exactly
// one; ledger entries copy presentation fields instead of referencing it.
type Store struct {
	mu    sync.RWMutex
	byID  map[int]Product
	order []int
}

func NewStore() *Store {
	return &Store{byID: make(map[int]Product)}
}

// SetAll replaces the whole store with the given products.
func (s *Store) SetAll(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int]Product, len(products))
	s.order = make([]int, 0, len(products))
	for _, p := range products {
		if _, ok := s.byID[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
	}
}

// AddMany upserts products, appending ids not seen before. Used by
// load-more to grow the collection cumulatively.
func (s *Store) AddMany(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if _, ok := s.byID[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
	}
}

// UpsertOne adds or replaces a single record.
func (s *Store) UpsertOne(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.byID[p.ID] = p
}

// All returns the products in load order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Get(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Brands returns the distinct brands in first-seen order.
func (s *Store) Brands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range s.order {
		b := s.byID[id].Brand
		if b != "" && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// Tags returns the distinct tags in first-seen order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range s.order {
		for _, t := range s.byID[id].Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
