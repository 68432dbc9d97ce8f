package checkout

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
)

func newCheckoutApp(products []catalog.Product) (*fiber.App, *cart.Sessions, *catalog.Store) {
	repo := catalog.NewInMemoryRepository(products)
	store := catalog.NewStore(repo, nil)
	store.Refresh()

	carts := cart.NewSessions()
	handler := NewHandler(testComposer(), carts, store)

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, carts, store
}

func TestPlaceOrder_ComposesAndClearsCart(t *testing.T) {
	app, carts, store := newCheckoutApp(testProducts())
	defer store.Close()

	carts.Ledger("sess-1").AddItem(
		cart.LineItem{ProductID: "p1", Name: "Tote", UnitPrice: 450, Size: "M"}, 1)

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(
		`{"name":"Mona","phone":"0100000000","address":"12 Main St","governorate":"القاهرة","center":"مدينة نصر"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cart.SessionHeader, "sess-1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var order Order
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &order); err != nil {
		t.Fatalf("decode: %v body=%s", err, body)
	}
	if order.Total != 510 {
		t.Fatalf("total = %v, want 510", order.Total)
	}
	if !strings.HasPrefix(order.URL, "https://wa.me/") {
		t.Fatalf("unexpected url %q", order.URL)
	}

	if got := len(carts.Ledger("sess-1").Items()); got != 0 {
		t.Fatalf("cart not cleared after order, %d items left", got)
	}
}

func TestPlaceOrder_MissingRequiredFields(t *testing.T) {
	app, _, store := newCheckoutApp(testProducts())
	defer store.Close()

	req := httptest.NewRequest("POST", "/api/v1/checkout",
		strings.NewReader(`{"name":"Mona","phone":"0100000000"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	app, _, store := newCheckoutApp(testProducts())
	defer store.Close()

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(
		`{"name":"Mona","phone":"0100000000","address":"12 Main St"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_AllLinesInvalidKeepsCart(t *testing.T) {
	app, carts, store := newCheckoutApp(testProducts())
	defer store.Close()

	carts.Ledger("sess-1").AddItem(
		cart.LineItem{ProductID: "gone", Name: "Ghost", UnitPrice: 10}, 1)

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(
		`{"name":"Mona","phone":"0100000000","address":"12 Main St"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cart.SessionHeader, "sess-1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if got := len(carts.Ledger("sess-1").Items()); got != 1 {
		t.Fatalf("refused order must leave the cart intact, %d items", got)
	}
}
