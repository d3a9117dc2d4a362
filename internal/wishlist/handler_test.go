package wishlist

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/kittipat-s/storefront-backend/internal/storage"
)

func makeAppWithWishlistHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestWishlistRoutes_Flow(t *testing.T) {
	service := NewService(storage.NewGateway(storage.NewMemoryKV(), StorageKey))
	app := makeAppWithWishlistHandler(NewHandler(service))

	// unauthenticated access is rejected
	req := httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// save a product
	req2 := httptest.NewRequest("POST", "/api/v1/wishlist/items",
		strings.NewReader(`{"productId":101,"title":"Essence Mascara","price":100}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"itemCount":1`) {
		t.Fatalf("expected itemCount 1, got %s", string(b2))
	}

	// saving the same product again stays a single entry
	req3 := httptest.NewRequest("POST", "/api/v1/wishlist/items",
		strings.NewReader(`{"productId":101,"title":"Essence Mascara","price":100}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"itemCount":1`) {
		t.Fatalf("expected idempotent add, got %s", string(b3))
	}

	// invalid item comes back 400
	req4 := httptest.NewRequest("POST", "/api/v1/wishlist/items", strings.NewReader(`{"title":"no id"}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid item, got %d", res4.StatusCode)
	}

	// remove the entry
	req5 := httptest.NewRequest("DELETE", "/api/v1/wishlist/items/101", nil)
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res5.StatusCode)
	}
	b5, _ := io.ReadAll(res5.Body)
	if strings.Contains(string(b5), `"productId":101`) {
		t.Fatalf("expected item removed, got %s", string(b5))
	}

	// clear responds 204
	req6 := httptest.NewRequest("DELETE", "/api/v1/wishlist", nil)
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res6.StatusCode)
	}
}

func TestWishlistRoutes_PerUserIsolation(t *testing.T) {
	service := NewService(storage.NewGateway(storage.NewMemoryKV(), StorageKey))
	app := makeAppWithWishlistHandler(NewHandler(service))

	add := func(userID, productID string) {
		req := httptest.NewRequest("POST", "/api/v1/wishlist/items",
			strings.NewReader(`{"productId":`+productID+`}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", userID)
		if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
			t.Fatalf("add for user %s failed with status %d", userID, res.StatusCode)
		}
	}

	add("1", "101")
	add("2", "202")

	// switching back reloads user 1's persisted wishlist
	req := httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	req.Header.Set("X-User-ID", "1")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"productId":101`) {
		t.Fatalf("expected user 1's wishlist restored, got %s", string(b))
	}
	if strings.Contains(string(b), `"productId":202`) {
		t.Fatalf("expected user 2's item absent, got %s", string(b))
	}
}
