package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veestore/storefront-backend/internal/catalog"
)

func TestEffectivePrice_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, 405.0, EffectivePrice(450, 10))
	assert.Equal(t, 213.0, EffectivePrice(250, 15)) // 212.5 rounds up
	assert.Equal(t, 100.0, EffectivePrice(199, 50)) // 99.5 rounds up
	assert.Equal(t, 0.0, EffectivePrice(100, 100))
	assert.Equal(t, 100.0, EffectivePrice(100, 0))
}

func TestUnitPrice_FollowsOfferWindow(t *testing.T) {
	now := time.Now().UnixMilli()
	p := catalog.Product{Price: 450, OfferDiscount: 10, OfferEndTime: now + 60_000}

	assert.Equal(t, 405.0, UnitPrice(p, now), "active offer sells discounted")
	assert.Equal(t, 450.0, UnitPrice(p, p.OfferEndTime), "expiry boundary is inclusive of the base price")

	p.OfferEndTime = 0
	assert.Equal(t, 405.0, UnitPrice(p, now), "open-ended offer stays active")

	p.OfferDiscount = 0
	assert.Equal(t, 450.0, UnitPrice(p, now))
}

func TestRemaining_MonotoneAndFloored(t *testing.T) {
	end := int64(10_000)
	prev := Remaining(end, 0)
	for now := int64(1); now <= 12_000; now += 500 {
		cur := Remaining(end, now)
		assert.LessOrEqual(t, cur, prev, "remaining must never grow as time passes")
		assert.GreaterOrEqual(t, cur, time.Duration(0))
		prev = cur
	}
	assert.Equal(t, time.Duration(0), Remaining(end, end))
	assert.Equal(t, time.Duration(0), Remaining(end, end+1))
}

func TestEarliestEnd_PicksHeadlineCountdown(t *testing.T) {
	now := int64(1_000)
	products := []catalog.Product{
		{ID: "late", OfferDiscount: 10, OfferEndTime: 9_000},
		{ID: "early", OfferDiscount: 20, OfferEndTime: 5_000},
		{ID: "open", OfferDiscount: 30},                         // no end time
		{ID: "expired", OfferDiscount: 10, OfferEndTime: 500},   // inactive
		{ID: "plain", OfferEndTime: 4_000},                      // no discount
	}
	assert.Equal(t, int64(5_000), EarliestEnd(products, now))

	assert.Equal(t, int64(0), EarliestEnd([]catalog.Product{{ID: "open", OfferDiscount: 30}}, now),
		"open-ended offers alone give no countdown")
}

func TestActiveProducts(t *testing.T) {
	now := int64(1_000)
	products := []catalog.Product{
		{ID: "a", OfferDiscount: 10, OfferEndTime: 2_000},
		{ID: "b", OfferDiscount: 10, OfferEndTime: 900},
		{ID: "c"},
	}
	active := ActiveProducts(products, now)
	assert.Len(t, active, 1)
	assert.Equal(t, "a", active[0].ID)
}

func TestBreakdownOf(t *testing.T) {
	d := 49*time.Hour + 3*time.Minute + 7*time.Second
	b := BreakdownOf(d)
	assert.Equal(t, Breakdown{Days: 2, Hours: 1, Minutes: 3, Seconds: 7}, b)

	assert.Equal(t, Breakdown{}, BreakdownOf(-time.Second), "negative durations clamp to zero")
}
