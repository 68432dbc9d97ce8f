package delivery

import "github.com/gofiber/fiber/v2"

// Handler serves the zone table so the storefront can populate its
// governorate and center pickers.
type Handler struct {
	zones *Zones
}

func NewHandler(zones *Zones) *Handler {
	return &Handler{zones: zones}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/delivery-zones", h.listZones)
	// Arabic zone names travel better as query values than path segments.
	app.Get("/api/v1/delivery-price", h.centerPrice)
}

func (h *Handler) listZones(c *fiber.Ctx) error {
	return c.JSON(h.zones)
}

func (h *Handler) centerPrice(c *fiber.Ctx) error {
	price, ok := h.zones.Lookup(c.Query("governorate"), c.Query("center"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "unknown governorate or center"})
	}
	return c.JSON(fiber.Map{"price": price})
}
