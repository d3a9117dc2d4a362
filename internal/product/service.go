package product

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// View is the derived catalog state the storefront renders: the
// filter/sort/paginate selector chain applied to the entity store.
type View struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	HasMore    bool      `json:"hasMore"`
	SortBy     SortKey   `json:"sortBy"`
	Filters    Filter    `json:"filters"`
	Loading    bool      `json:"loading"`
	Error      string    `json:"error,omitempty"`
}

// Service owns the session's catalog state: the entity store plus the
// current filters, sort, pagination and load status. All mutation goes
// through it; reads recompute derived views from the store.
type Service struct {
	client *Client
	store  *Store

	mu          sync.Mutex
	filters     Filter
	sortBy      SortKey
	currentPage int
	pageSize    int
	totalCount  int
	hasMore     bool
	loading     bool
	loaded      bool
	err         string
	categories  []string

	// search debounce; a newly scheduled search supersedes the previous
	// one via the generation counter and cancels its request
	debounce     time.Duration
	searchTimer  *time.Timer
	searchCancel context.CancelFunc
	generation   uint64
}

func NewService(client *Client, pageSize int, debounce time.Duration) *Service {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Service{
		client:      client,
		store:       NewStore(),
		sortBy:      SortNewest,
		currentPage: 1,
		pageSize:    pageSize,
		debounce:    debounce,
	}
}

// Store exposes the entity store for read access (product details,
// brand/tag lists).
func (s *Service) Store() *Store {
	return s.store
}

// Load fetches the first pages up to page and replaces the store.
// An empty or "all" category means the unscoped listing.
func (s *Service) Load(ctx context.Context, category string, sort SortKey, page int) error {
	if page < 1 {
		page = 1
	}
	if category == "all" {
		category = ""
	}

	s.mu.Lock()
	if sort == "" {
		sort = s.sortBy
	}
	limit := s.pageSize
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.client.List(ctx, ListQuery{
		Category: category,
		Sort:     sort,
		Skip:     (page - 1) * limit,
		Limit:    limit,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.store.SetAll(result.Items)
	s.totalCount = result.TotalCount
	s.hasMore = result.HasMore
	s.currentPage = page
	s.sortBy = sort
	s.filters.Category = category
	s.loaded = true
	return nil
}

// LoadMore fetches the next page and appends it to the store.
func (s *Service) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	next := s.currentPage + 1
	limit := s.pageSize
	category := s.filters.Category
	sort := s.sortBy
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.client.List(ctx, ListQuery{
		Category: category,
		Sort:     sort,
		Skip:     (next - 1) * limit,
		Limit:    limit,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.store.AddMany(result.Items)
	s.hasMore = result.HasMore
	s.currentPage = next
	if result.TotalCount > 0 {
		s.totalCount = result.TotalCount
	}
	return nil
}

// Categories returns the category list, fetching it on first use.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	cached := s.categories
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	categories, err := s.client.Categories(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

// SetFilters replaces the criteria and rewinds to the first page.
func (s *Service) SetFilters(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.currentPage = 1
}

// SetSort changes the current ordering.
func (s *Service) SetSort(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = key
}

// ClearFilters resets criteria, search and pagination.
func (s *Service) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCriteria()
}

// resetCriteria restores the default view. Callers must hold the mutex.
func (s *Service) resetCriteria() {
	s.filters = Filter{}
	s.sortBy = SortNewest
	s.currentPage = 1
}

// ScheduleSearch debounces rapid input: the catalog request fires only
// after the quiet period, and a newer search supersedes an older one
// (latest wins, the stale request is cancelled). A blank query clears
// the filters instead of searching.
func (s *Service) ScheduleSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	if s.searchCancel != nil {
		s.searchCancel()
		s.searchCancel = nil
	}
	s.generation++
	gen := s.generation
	s.loading = true

	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.runSearch(gen, query)
	})
}

func (s *Service) runSearch(gen uint64, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if query == "" {
		s.resetCriteria()
		s.loading = false
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.searchCancel = cancel
	limit := s.pageSize
	s.mu.Unlock()

	result, err := s.client.List(ctx, ListQuery{Search: query, Limit: limit})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// superseded while in flight; drop the result
		return
	}
	s.loading = false
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.err = err.Error()
		}
		return
	}

	s.store.SetAll(result.Items)
	s.totalCount = result.TotalCount
	s.hasMore = result.HasMore
	s.filters = Filter{Search: query}
	s.currentPage = 1
	s.loaded = true
	s.err = ""
}

// View runs the selector chain over the current state.
func (s *Service) View() View {
	s.mu.Lock()
	filters := s.filters
	sortBy := s.sortBy
	page := s.currentPage
	size := s.pageSize
	loading := s.loading
	errMsg := s.err
	hasMore := s.hasMore
	s.mu.Unlock()

	filtered := ApplyFilter(s.store.All(), filters)
	items := Paginate(SortProducts(filtered, sortBy), page, size)

	return View{
		Items:      items,
		TotalCount: len(filtered),
		Page:       page,
		PageSize:   size,
		HasMore:    hasMore,
		SortBy:     sortBy,
		Filters:    filters,
		Loading:    loading,
		Error:      errMsg,
	}
}

// Query answers an ad-hoc filtered view without touching session state.
func (s *Service) Query(f Filter, sort SortKey, page, size int) View {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		s.mu.Lock()
		size = s.pageSize
		s.mu.Unlock()
	}

	filtered := ApplyFilter(s.store.All(), f)
	items := Paginate(SortProducts(filtered, sort), page, size)

	return View{
		Items:      items,
		TotalCount: len(filtered),
		Page:       page,
		PageSize:   size,
		HasMore:    page*size < len(filtered),
		SortBy:     sort,
		Filters:    f,
	}
}

// Detail returns the product from the store, falling back to the
// upstream API and upserting the result.
func (s *Service) Detail(ctx context.Context, id int) (Product, error) {
	if p, ok := s.store.Get(id); ok {
		return p, nil
	}

	p, err := s.client.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	s.store.UpsertOne(p)
	return p, nil
}
