package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
)

// ErrorCategory buckets upstream failures into the classes the UI cares
// about.
type ErrorCategory string

const (
	ErrorUnauthorized ErrorCategory = "unauthorized"
	ErrorConflict     ErrorCategory = "conflict"
	ErrorBadRequest   ErrorCategory = "bad_request"
	ErrorUnavailable  ErrorCategory = "server_unavailable"
	ErrorUnknown      ErrorCategory = "unknown"
)

// APIError is an upstream catalog failure with its category.
type APIError struct {
	Status   int
	Category ErrorCategory
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("catalog request failed with status %d", e.Status)
}

// Categorize maps an HTTP status to a user-facing error category.
// Status 0 means the request never got a response.
func Categorize(status int) ErrorCategory {
	switch {
	case status == http.StatusUnauthorized:
		return ErrorUnauthorized
	case status == http.StatusConflict:
		return ErrorConflict
	case status == http.StatusBadRequest:
		return ErrorBadRequest
	case status == 0 || status >= 500:
		return ErrorUnavailable
	default:
		return ErrorUnknown
	}
}

// ListQuery is the request half of the catalog fetch contract.
type ListQuery struct {
	Category string
	Search   string
	Sort     SortKey
	Skip     int
	Limit    int
}

// Client consumes the upstream catalog API. No retries: errors map to a
// category and propagate for display.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches a page of products by category or free search.
func (c *Client) List(ctx context.Context, q ListQuery) (Page, error) {
	endpoint := c.baseURL
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))
	params.Set("order", "asc")
	if q.Sort != "" {
		params.Set("sortBy", string(q.Sort))
	}

	switch {
	case q.Search != "":
		endpoint += "/search"
		params.Set("q", q.Search)
	case q.Category != "" && q.Category != "all":
		endpoint += "/category/" + url.PathEscape(q.Category)
	}

	var page Page
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &page); err != nil {
		return Page{}, err
	}
	page.HasMore = page.Skip+page.Limit < page.TotalCount
	return page, nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id int) (Product, error) {
	var p Product
	err := c.getJSON(ctx, c.baseURL+"/"+strconv.Itoa(id), &p)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// Categories fetches the ordered category name list.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/category-list", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: 0, Category: Categorize(0), Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &APIError{Status: res.StatusCode, Category: Categorize(res.StatusCode)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &APIError{Status: res.StatusCode, Category: ErrorUnknown, Message: err.Error()}
	}
	return nil
}
