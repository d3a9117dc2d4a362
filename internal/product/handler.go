package product

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog over HTTP. All routes are public.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Post("/api/v1/products/refresh", h.refreshProducts)
	app.Post("/api/v1/products/load-more", h.loadMore)
	app.Put("/api/v1/products/filters", h.setFilters)
	app.Delete("/api/v1/products/filters", h.clearFilters)
	app.Put("/api/v1/products/sort", h.setSort)
	app.Get("/api/v1/products/facets", h.getFacets)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/categories", h.getCategories)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	view := h.service.View()
	if f.IsZero() {
		f = view.Filters
	}
	sort := view.SortBy
	if v := c.Query("sort"); v != "" {
		sort = SortKey(v)
	}
	page := c.QueryInt("page", view.Page)
	size := c.QueryInt("pageSize", view.PageSize)

	return c.JSON(h.service.Query(f, sort, page, size))
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	h.service.ScheduleSearch(query)
	// the fetch fires after the quiet period; return the current view
	return c.Status(fiber.StatusAccepted).JSON(h.service.View())
}

type refreshRequest struct {
	Category string `json:"category"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
}

func (h *Handler) refreshProducts(c *fiber.Ctx) error {
	payload := new(refreshRequest)
	if err := c.BodyParser(payload); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Load(c.Context(), payload.Category, SortKey(payload.Sort), payload.Page); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(h.service.View())
}

func (h *Handler) loadMore(c *fiber.Ctx) error {
	if err := h.service.LoadMore(c.Context()); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(h.service.View())
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return upstreamError(c, err)
	}
	return c.JSON(p)
}

// setFilters replaces the session criteria with the query parameters
// and rewinds to the first page.
func (h *Handler) setFilters(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	h.service.SetFilters(f)
	return c.JSON(h.service.View())
}

func (h *Handler) clearFilters(c *fiber.Ctx) error {
	h.service.ClearFilters()
	return c.JSON(h.service.View())
}

type sortRequest struct {
	Sort string `json:"sort"`
}

func (h *Handler) setSort(c *fiber.Ctx) error {
	payload := new(sortRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	h.service.SetSort(SortKey(payload.Sort))
	return c.JSON(h.service.View())
}

// getFacets lists the distinct brands and tags of the loaded catalog,
// for building filter controls.
func (h *Handler) getFacets(c *fiber.Ctx) error {
	store := h.service.Store()
	return c.JSON(fiber.Map{
		"brands": store.Brands(),
		"tags":   store.Tags(),
	})
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(categories)
}

func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":  apiErr.Error(),
			"category": apiErr.Category,
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}

func filterFromQuery(c *fiber.Ctx) (Filter, error) {
	f := Filter{
		Category:           c.Query("category"),
		Search:             c.Query("search"),
		AvailabilityStatus: c.Query("availability"),
		InStock:            c.QueryBool("inStock", false),
		OnSale:             c.QueryBool("onSale", false),
	}
	if f.Category == "all" {
		f.Category = ""
	}

	if v := c.Query("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Filter{}, errors.New("invalid minRating")
		}
		f.MinRating = r
	}

	minStr, maxStr := c.Query("minPrice"), c.Query("maxPrice")
	if minStr != "" || maxStr != "" {
		pr := PriceRange{Max: 1<<53 - 1}
		if minStr != "" {
			v, err := strconv.ParseFloat(minStr, 64)
			if err != nil {
				return Filter{}, errors.New("invalid minPrice")
			}
			pr.Min = v
		}
		if maxStr != "" {
			v, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				return Filter{}, errors.New("invalid maxPrice")
			}
			pr.Max = v
		}
		f.PriceRange = &pr
	}

	if v := c.Query("brand"); v != "" {
		f.Brands = splitCSV(v)
	}
	if v := c.Query("tags"); v != "" {
		f.Tags = splitCSV(v)
	}
	return f, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
