package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
	"github.com/veestore/storefront-backend/internal/delivery"
)

// ErrNothingToOrder means every cart line failed revalidation against the
// live catalog.
var ErrNothingToOrder = errors.New("no valid items to order")

// CustomerInfo is the buyer-entered contact block. Name, Phone and Address
// are required before composition; the rest degrade to "-".
type CustomerInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	AdditionalPhone string `json:"additionalPhone"`
	Governorate     string `json:"governorate"`
	Center          string `json:"center"`
	Address         string `json:"address"`
}

// Order is a composed handoff: the WhatsApp deep link plus the plain-text
// summary it encodes.
type Order struct {
	URL           string  `json:"url"`
	Summary       string  `json:"summary"`
	ItemsTotal    float64 `json:"itemsTotal"`
	DeliveryFee   float64 `json:"deliveryFee"`
	DeliveryKnown bool    `json:"deliveryKnown"`
	Total         float64 `json:"total"`
	Dropped       int     `json:"dropped"`
}

// Composer turns a cart into a WhatsApp order message.
type Composer struct {
	phone   string
	payment string
	zones   *delivery.Zones
}

func NewComposer(phone, payment string, zones *delivery.Zones) *Composer {
	return &Composer{phone: phone, payment: payment, zones: zones}
}

// Compose revalidates the cart against the live products, resolves the
// delivery fee and builds the order summary and wa.me link. Lines whose
// product disappeared or whose size is no longer offered are dropped; it
// refuses only when nothing survives. An unknown governorate or center never
// blocks the order, it just shows up as "-" and leaves delivery out of the
// total.
func (cp *Composer) Compose(lines []cart.LineItem, info CustomerInfo, products []catalog.Product) (Order, error) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	valid := make([]cart.LineItem, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok || !p.HasSize(line.Size) {
			continue
		}
		valid = append(valid, line)
	}
	if len(valid) == 0 {
		return Order{}, ErrNothingToOrder
	}

	governorate := "-"
	center := "-"
	fee, feeKnown := 0.0, false
	if info.Governorate != "" {
		if _, ok := cp.zones.Governorates[info.Governorate]; ok {
			governorate = governorateDisplayName(info.Governorate)
			if info.Center != "" {
				if f, ok := cp.zones.Lookup(info.Governorate, info.Center); ok {
					center = info.Center
					fee, feeKnown = f, true
				}
			}
		}
	}

	var itemsTotal float64
	for _, line := range valid {
		itemsTotal += line.UnitPrice * float64(line.Quantity)
	}
	total := itemsTotal
	if feeKnown {
		total += fee
	}

	parts := []string{
		"طلب جديد",
		"الاسم: " + orDash(info.Name),
		"رقم الهاتف: " + orDash(info.Phone),
	}
	if info.AdditionalPhone != "" {
		parts = append(parts, "رقم إضافي: "+info.AdditionalPhone)
	}
	parts = append(parts,
		"المحافظة: "+governorate,
		"المركز: "+center,
		"العنوان: "+orDash(info.Address),
		"المنتجات:",
	)
	for i, line := range valid {
		subtotal := strconv.FormatFloat(line.UnitPrice*float64(line.Quantity), 'f', -1, 64)
		parts = append(parts, fmt.Sprintf("%d. %s - اللون: %s - المقاس: %s - الكمية: %d - السعر: EG %s",
			i+1, orDash(line.Name), orDash(line.Color), orDash(line.Size), line.Quantity, subtotal))
	}
	deliveryNote := ""
	if feeKnown {
		deliveryNote = " (" + strconv.FormatFloat(fee, 'f', -1, 64) + ")"
	}
	parts = append(parts,
		fmt.Sprintf("الإجمالي: EG %.2f", total),
		"يرجى إرسال سعر التوصيل"+deliveryNote+" لإتمام الطلب عن طريق إنستا باي أو فودافون كاش على الرقم: "+cp.payment,
	)

	summary := strings.Join(parts, "\n")
	message := strings.ReplaceAll(summary, "\n", "\r\n")
	message = strings.ReplaceAll(message, "&", "and")

	return Order{
		URL:           "https://wa.me/" + cp.phone + "?text=" + url.QueryEscape(message),
		Summary:       summary,
		ItemsTotal:    itemsTotal,
		DeliveryFee:   fee,
		DeliveryKnown: feeKnown,
		Total:         total,
		Dropped:       len(lines) - len(valid),
	}, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// governorateDisplayName shortens very long governorate labels for the
// message: names over 20 characters are cut at the first " و" or "،"
// separator when one sits between positions 3 and 25, else at 20 characters.
func governorateDisplayName(gov string) string {
	if gov == "" {
		return "-"
	}
	runes := []rune(gov)
	if len(runes) <= 20 {
		return strings.TrimSpace(gov)
	}

	firstAnd := runeIndex(runes, []rune(" و"))
	firstComma := runeIndex(runes, []rune("،"))
	sep := -1
	switch {
	case firstAnd > 0 && firstComma > 0:
		sep = firstAnd
		if firstComma < sep {
			sep = firstComma
		}
	case firstAnd > 0:
		sep = firstAnd
	case firstComma > 0:
		sep = firstComma
	}
	if sep > 3 && sep < 25 {
		return strings.TrimSpace(string(runes[:sep]))
	}
	return strings.TrimSpace(string(runes[:20]))
}

func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
