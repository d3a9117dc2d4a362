package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"

	"github.com/kittipat-s/storefront-backend/internal/cart"
	"github.com/kittipat-s/storefront-backend/internal/config"
	"github.com/kittipat-s/storefront-backend/internal/product"
	"github.com/kittipat-s/storefront-backend/internal/storage"
	"github.com/kittipat-s/storefront-backend/internal/user"
	"github.com/kittipat-s/storefront-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	kv := openKV(cfg)

	// catalog pipeline: upstream client, entity store, selector chain
	catalogClient := product.NewClient(cfg.CatalogBaseURL)
	productService := product.NewService(catalogClient, cfg.PageSize, cfg.SearchDebounce)
	productHandler := product.NewHandler(productService)

	// per-user ledgers mirrored to the key-value store
	cartService := cart.NewService(storage.NewGateway(kv, cart.StorageKey))
	wishlistService := wishlist.NewService(storage.NewGateway(kv, wishlist.StorageKey))

	userService := user.NewService(user.NewInMemoryRepository(nil))
	sessions := user.NewSessionStore(kv)
	userHandler := user.NewHandler(userService, sessions, cartService, wishlistService)

	// a session persisted by a previous run is restored at boot: the
	// returning user's ledgers load from storage before any request
	if session, ok, err := sessions.Load(); err != nil {
		log.Printf("session restore failed: %v", err)
	} else if ok {
		log.Printf("restoring session for user %d", session.User.ID)
		cartService.Get(session.User.ID)
		wishlistService.Get(session.User.ID)
	}

	// initial catalog load is best-effort; the refresh endpoint can
	// retry later if the upstream was down at boot
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := productService.Load(ctx, "", "", 1); err != nil {
		log.Printf("initial catalog load failed: %v", err)
	}
	cancel()

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cart.NewHandler(cartService).RegisterProtectedRoutes(app)
	wishlist.NewHandler(wishlistService).RegisterProtectedRoutes(app)

	log.Printf("starting storefront on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func openKV(cfg config.Config) storage.KV {
	switch cfg.StorageDriver {
	case "redis":
		log.Printf("using redis storage at %s", cfg.RedisAddr)
		return storage.NewRedisKV(cfg.RedisAddr)
	case "memory":
		return storage.NewMemoryKV()
	default:
		log.Printf("using file storage at %s", cfg.StoragePath)
		return storage.NewFileKV(cfg.StoragePath)
	}
}
