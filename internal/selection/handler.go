package selection

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
)

// Handler exposes selection sessions over HTTP. Every "add to cart" commit
// goes through here so the completion gate and price lock apply
// server-side.
type Handler struct {
	sessions *Sessions
	store    *catalog.Store
	carts    *cart.Sessions
}

func NewHandler(sessions *Sessions, store *catalog.Store, carts *cart.Sessions) *Handler {
	return &Handler{sessions: sessions, store: store, carts: carts}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/selection", h.open)
	app.Get("/api/v1/selection/:id", h.getState)
	app.Post("/api/v1/selection/:id/color", h.chooseColor)
	app.Post("/api/v1/selection/:id/size", h.chooseSize)
	app.Post("/api/v1/selection/:id/quantity", h.setQuantity)
	app.Post("/api/v1/selection/:id/image", h.jumpImage)
	app.Post("/api/v1/selection/:id/add-to-cart", h.addToCart)
	app.Delete("/api/v1/selection/:id", h.close)
}

func stateView(s State) fiber.Map {
	return fiber.Map{
		"state":        s,
		"displayImage": s.DisplayImage(),
		"complete":     s.Complete(),
	}
}

type openRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) open(c *fiber.Ctx) error {
	payload := new(openRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var product catalog.Product
	found := false
	for _, p := range h.store.Snapshot().Products {
		if p.ID == payload.ProductID {
			product = p
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}

	s := h.sessions.Open(product)
	resp := stateView(s.State())
	resp["sessionId"] = s.ID
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) getState(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Selection session not found")
	}
	return c.JSON(stateView(s.State()))
}

type transitionRequest struct {
	Index    int    `json:"index"`
	Piece    int    `json:"piece"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) applyTransition(c *fiber.Ctx, transition func(State, transitionRequest) State) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Selection session not found")
	}
	payload := new(transitionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	state := s.Apply(func(st State) State { return transition(st, *payload) })
	return c.JSON(stateView(state))
}

func (h *Handler) chooseColor(c *fiber.Ctx) error {
	return h.applyTransition(c, func(s State, req transitionRequest) State {
		return ChooseColor(s, req.Index)
	})
}

func (h *Handler) chooseSize(c *fiber.Ctx) error {
	return h.applyTransition(c, func(s State, req transitionRequest) State {
		return ChooseSize(s, req.Piece, req.Size)
	})
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	return h.applyTransition(c, func(s State, req transitionRequest) State {
		return SetQuantity(s, req.Quantity)
	})
}

func (h *Handler) jumpImage(c *fiber.Ctx) error {
	return h.applyTransition(c, func(s State, req transitionRequest) State {
		return JumpImage(s, req.Index)
	})
}

// addToCart commits a complete selection: one cart line of quantity one per
// piece, priced at this instant, then tears the session down.
func (h *Handler) addToCart(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Selection session not found")
	}

	state := s.State()
	if !state.Complete() {
		if state.Product.SoldOut {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "product is sold out"})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "choose a color and a size for every piece"})
	}

	ledger := h.carts.Ledger(cart.EnsureSession(c))
	for _, line := range state.Lines(time.Now().UnixMilli()) {
		ledger.AddItem(line, line.Quantity)
	}
	h.sessions.Close(s.ID)

	return c.JSON(fiber.Map{
		"items":      ledger.Items(),
		"totalPrice": ledger.TotalPrice(),
	})
}

func (h *Handler) close(c *fiber.Ctx) error {
	h.sessions.Close(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
