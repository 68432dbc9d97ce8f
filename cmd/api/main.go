package main

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/veestore/storefront-backend/internal/admin"
	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
	"github.com/veestore/storefront-backend/internal/category"
	"github.com/veestore/storefront-backend/internal/checkout"
	"github.com/veestore/storefront-backend/internal/config"
	"github.com/veestore/storefront-backend/internal/delivery"
	"github.com/veestore/storefront-backend/internal/offer"
	"github.com/veestore/storefront-backend/internal/selection"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	catalogRepo := catalog.NewPostgresRepository(db)
	if err := catalogRepo.EnsureSchema(); err != nil {
		log.Fatalf("products schema: %v", err)
	}
	categoryRepo := category.NewPostgresRepository(db)
	if err := categoryRepo.EnsureSchema(); err != nil {
		log.Fatalf("categories schema: %v", err)
	}

	store := catalog.NewStore(catalogRepo, categoryRepo)
	store.Refresh()
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go catalog.NewListener(cfg.DatabaseURL, store).Run(ctx)

	zones, err := delivery.Load(cfg.ZonesPath)
	if err != nil {
		log.Fatalf("delivery zones: %v", err)
	}

	catalogService := catalog.NewService(catalogRepo, store)
	catalogHandler := catalog.NewHandler(catalogService, store)

	categoryService := category.NewService(categoryRepo, catalogService)
	categoryHandler := category.NewHandler(categoryService)

	carts := cart.NewSessions()
	cartHandler := cart.NewHandler(carts)

	selections := selection.NewSessions()
	selectionHandler := selection.NewHandler(selections, store, carts)

	offerHandler := offer.NewHandler(store)
	deliveryHandler := delivery.NewHandler(zones)
	checkoutHandler := checkout.NewHandler(
		checkout.NewComposer(cfg.WhatsAppPhone, cfg.PaymentNumber, zones), carts, store)
	adminHandler := admin.NewHandler(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret)

	// public surface
	adminHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	offerHandler.RegisterPublicRoutes(app)
	selectionHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	deliveryHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)

	// everything under /api/v1/admin except sign-in requires a token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			if !strings.HasPrefix(p, "/api/v1/admin") {
				return true
			}
			return p == "/api/v1/admin/sign-in"
		},
	}))

	catalogHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Session-ID",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}
