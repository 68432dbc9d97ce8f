package offer

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veestore/storefront-backend/internal/catalog"
)

func offersApp(products []catalog.Product) (*fiber.App, *catalog.Store) {
	store := catalog.NewStore(catalog.NewInMemoryRepository(products), nil)
	store.Refresh()

	app := fiber.New()
	NewHandler(store).RegisterPublicRoutes(app)
	return app, store
}

func TestGetOffers_ActiveOnlyWithHeadlineCountdown(t *testing.T) {
	now := time.Now().UnixMilli()
	app, store := offersApp([]catalog.Product{
		{ID: "late", Name: "Late", Price: 100, OfferDiscount: 10, OfferEndTime: now + 120_000},
		{ID: "early", Name: "Early", Price: 100, OfferDiscount: 20, OfferEndTime: now + 60_000},
		{ID: "expired", Name: "Old", Price: 100, OfferDiscount: 10, OfferEndTime: now - 1},
		{ID: "plain", Name: "Plain", Price: 100},
	})
	defer store.Close()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Products  []catalog.Product `json:"products"`
		EndTime   int64             `json:"endTime"`
		Remaining *Breakdown        `json:"remaining"`
	}
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &payload))

	require.Len(t, payload.Products, 2)
	assert.Equal(t, now+60_000, payload.EndTime, "headline countdown is the earliest active end")
	require.NotNil(t, payload.Remaining)
	assert.LessOrEqual(t, payload.Remaining.Minutes, 1)
}

func TestGetOffers_NoCountdownWithoutEndTimes(t *testing.T) {
	app, store := offersApp([]catalog.Product{
		{ID: "open", Name: "Open", Price: 100, OfferDiscount: 10},
	})
	defer store.Close()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers", nil))
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Contains(t, payload, "products")
	assert.NotContains(t, payload, "endTime")
	assert.NotContains(t, payload, "remaining")
}
