package cart

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the session cart over HTTP. Add-to-cart itself lives on
// the selection endpoints: committing goes through the variant selector so
// gating and price locking cannot be bypassed.
type Handler struct {
	sessions *Sessions
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Put("/api/v1/cart/item/quantity", h.updateQuantity)
	app.Put("/api/v1/cart/item/size", h.changeSize)
	app.Delete("/api/v1/cart/item", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	NewSize   string `json:"newSize,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (h *Handler) cartResponse(c *fiber.Ctx, ledger *Ledger) error {
	return c.JSON(fiber.Map{
		"items":      ledger.Items(),
		"totalPrice": ledger.TotalPrice(),
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	ledger := h.sessions.Ledger(EnsureSession(c))
	return h.cartResponse(c, ledger)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}

	ledger := h.sessions.Ledger(EnsureSession(c))
	ledger.UpdateQuantity(payload.ProductID, payload.Size, payload.Quantity, payload.Color)
	return h.cartResponse(c, ledger)
}

func (h *Handler) changeSize(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" || payload.NewSize == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId and newSize are required"})
	}

	ledger := h.sessions.Ledger(EnsureSession(c))
	ledger.ChangeSize(payload.ProductID, payload.Size, payload.NewSize, payload.Color)
	return h.cartResponse(c, ledger)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ledger := h.sessions.Ledger(EnsureSession(c))
	ledger.RemoveItem(payload.ProductID, payload.Size, payload.Color)
	return h.cartResponse(c, ledger)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	h.sessions.Ledger(EnsureSession(c)).Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
