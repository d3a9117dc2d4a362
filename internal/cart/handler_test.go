package cart

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

func makeAppWithCartHandler(h *Handler) *fiber.App {
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

func TestCartRoutes_Flow(t *testing.T) {
	service := NewService(storage.NewGateway(storage.NewMemoryKV(), StorageKey))
	app := makeAppWithCartHandler(NewHandler(service))

	// unauthenticated access is rejected
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// empty cart for an authenticated user
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}

	// add an item; quantity defaults to 1 when omitted
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":101,"title":"Essence Mascara","price":100,"stock":3}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":1`) {
		t.Fatalf("expected default quantity 1, got %s", string(b3))
	}
	if !strings.Contains(string(b3), `"total":100`) {
		t.Fatalf("expected total 100, got %s", string(b3))
	}

	// add the same product again with quantity 2: sums then clamps to stock 3
	req4 := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":101,"title":"Essence Mascara","price":100,"stock":3,"quantity":2}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b4))
	}
	if !strings.Contains(string(b4), `"total":300`) {
		t.Fatalf("expected total 300, got %s", string(b4))
	}

	// an invalid item comes back 400 with the error in the ledger
	req5 := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":0,"price":10,"stock":5}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid item, got %d", res5.StatusCode)
	}

	// absolute quantity above stock clamps
	req6 := httptest.NewRequest("PUT", "/api/v1/cart/items/101", strings.NewReader(`{"quantity":10}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	b6, _ := io.ReadAll(res6.Body)
	if !strings.Contains(string(b6), `"quantity":3`) {
		t.Fatalf("expected clamp to stock 3, got %s", string(b6))
	}

	// negative quantity is rejected
	req7 := httptest.NewRequest("PUT", "/api/v1/cart/items/101", strings.NewReader(`{"quantity":-1}`))
	req7.Header.Set("Content-Type", "application/json")
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", res7.StatusCode)
	}

	// delta adjustment down to zero removes the entry
	req8 := httptest.NewRequest("PATCH", "/api/v1/cart/items/101", strings.NewReader(`{"delta":-3}`))
	req8.Header.Set("Content-Type", "application/json")
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	b8, _ := io.ReadAll(res8.Body)
	if strings.Contains(string(b8), `"productId":101`) {
		t.Fatalf("expected product removed at zero quantity, got %s", string(b8))
	}

	// clear responds 204
	req9 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req9.Header.Set("X-User-ID", "42")
	res9, _ := app.Test(req9)
	if res9.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res9.StatusCode)
	}
}

func TestCartRoutes_RemoveItem(t *testing.T) {
	service := NewService(storage.NewGateway(storage.NewMemoryKV(), StorageKey))
	app := makeAppWithCartHandler(NewHandler(service))

	req := httptest.NewRequest("POST", "/api/v1/cart/items",
		strings.NewReader(`{"productId":101,"price":100,"stock":3,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "9")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("seeding cart failed with status %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("DELETE", "/api/v1/cart/items/101", nil)
	req2.Header.Set("X-User-ID", "9")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if strings.Contains(string(b), `"productId":101`) {
		t.Fatalf("expected item removed, got %s", string(b))
	}
	if !strings.Contains(string(b), `"total":0`) {
		t.Fatalf("expected total reset to 0, got %s", string(b))
	}
}
