package offer

import (
	"math"
	"time"

	"github.com/veestore/storefront-backend/internal/catalog"
)

// EffectivePrice applies a percentage discount and rounds half-up to the
// nearest whole currency unit.
func EffectivePrice(base float64, discount float64) float64 {
	return math.Floor(base*(1-discount/100) + 0.5)
}

// UnitPrice resolves the price a unit sells for right now: the discounted
// price while the offer is active, the base price otherwise.
func UnitPrice(p catalog.Product, nowMs int64) float64 {
	if p.OfferActiveAt(nowMs) {
		return EffectivePrice(p.Price, p.OfferDiscount)
	}
	return p.Price
}

// Remaining is the time left until the end timestamp (epoch ms), floored at
// zero. An offer with no end time has no meaningful remaining time; callers
// check OfferEndTime != 0 first.
func Remaining(endMs int64, nowMs int64) time.Duration {
	if endMs <= nowMs {
		return 0
	}
	return time.Duration(endMs-nowMs) * time.Millisecond
}

// ActiveProducts filters the products whose offer applies at the given time.
func ActiveProducts(products []catalog.Product, nowMs int64) []catalog.Product {
	out := make([]catalog.Product, 0)
	for _, p := range products {
		if p.OfferActiveAt(nowMs) {
			out = append(out, p)
		}
	}
	return out
}

// EarliestEnd returns the earliest end timestamp among active offers, for
// the single headline countdown shown above listings. Zero when no active
// offer carries an end time.
func EarliestEnd(products []catalog.Product, nowMs int64) int64 {
	var earliest int64
	for _, p := range products {
		if !p.OfferActiveAt(nowMs) || p.OfferEndTime == 0 {
			continue
		}
		if earliest == 0 || p.OfferEndTime < earliest {
			earliest = p.OfferEndTime
		}
	}
	return earliest
}

// Breakdown splits a remaining duration into display components.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func BreakdownOf(d time.Duration) Breakdown {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return Breakdown{
		Days:    total / (60 * 60 * 24),
		Hours:   (total % (60 * 60 * 24)) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}
