package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
)

// Handler composes WhatsApp orders from the caller's session cart.
type Handler struct {
	composer *Composer
	carts    *cart.Sessions
	store    *catalog.Store
}

func NewHandler(composer *Composer, carts *cart.Sessions, store *catalog.Store) *Handler {
	return &Handler{composer: composer, carts: carts, store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.placeOrder)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	info := new(CustomerInfo)
	if err := c.BodyParser(info); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if info.Name == "" || info.Address == "" || info.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, phone and address are required"})
	}

	ledger := h.carts.Ledger(cart.EnsureSession(c))
	lines := ledger.Items()
	if len(lines) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "cart is empty"})
	}

	order, err := h.composer.Compose(lines, *info, h.store.Snapshot().Products)
	if err != nil {
		if errors.Is(err, ErrNothingToOrder) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "no valid items in cart, please review it"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// The handoff succeeded as far as the backend is concerned; the cart is
	// done.
	ledger.Clear()
	return c.JSON(order)
}
