package offer

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/veestore/storefront-backend/internal/catalog"
)

type Handler struct {
	store *catalog.Store
}

func NewHandler(store *catalog.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/offers", h.getOffers)
}

// getOffers returns the products with active offers plus the single headline
// countdown (earliest end time among them).
func (h *Handler) getOffers(c *fiber.Ctx) error {
	now := time.Now().UnixMilli()
	products := ActiveProducts(h.store.Snapshot().Products, now)
	end := EarliestEnd(products, now)

	resp := fiber.Map{"products": products}
	if end != 0 {
		resp["endTime"] = end
		resp["remaining"] = BreakdownOf(Remaining(end, now))
	}
	return c.JSON(resp)
}
