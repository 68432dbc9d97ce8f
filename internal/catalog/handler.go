package catalog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/catalog", h.getCatalog)
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/products", h.createProduct)
	app.Put("/api/v1/admin/product/:id", h.updateProduct)
	app.Delete("/api/v1/admin/product/:id", h.deleteProduct)
	app.Post("/api/v1/admin/product/:id/offer", h.setOffer)
	app.Post("/api/v1/admin/offers/timer", h.setGlobalOfferTimer)
}

// getCatalog returns the full live snapshot (products, categories, loading).
func (h *Handler) getCatalog(c *fiber.Ctx) error {
	return c.JSON(h.store.Snapshot())
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products := h.service.List(Filter{
		Category:  c.Query("category"),
		Type:      c.Query("type"),
		PriceSort: c.Query("sort"),
	})
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.Params("id"), *p)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendString("Product deleted")
}

type offerRequest struct {
	Discount float64 `json:"discount"`
	Days     int     `json:"days"`
	Hours    int     `json:"hours"`
	Minutes  int     `json:"minutes"`
	Seconds  int     `json:"seconds"`
}

func (r offerRequest) endTime(now time.Time) int64 {
	total := time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
	if total <= 0 {
		return 0
	}
	return now.Add(total).UnixMilli()
}

func (h *Handler) setOffer(c *fiber.Ctx) error {
	payload := new(offerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Discount < 0 || payload.Discount > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "discount must be between 0 and 100"})
	}

	p, err := h.service.SetOffer(c.Params("id"), payload.Discount, payload.endTime(time.Now()))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

// setGlobalOfferTimer re-stamps every active offer with one shared end time,
// so all listings count down against a single headline clock.
func (h *Handler) setGlobalOfferTimer(c *fiber.Ctx) error {
	payload := new(offerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	end := payload.endTime(time.Now())
	if end == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "timer duration must be positive"})
	}

	updated, failed := h.service.SetGlobalOfferTimer(end)
	return c.JSON(fiber.Map{"endTime": end, "updated": updated, "failed": failed})
}
