package catalog

// PlaceholderImage is served when a product carries no imagery at all.
const PlaceholderImage = "/placeholder.svg"

// ColorVariant is one selectable color of a product. After normalization
// Images always has at least one entry and Image mirrors Images[0] so readers
// expecting the old single-image shape keep working.
type ColorVariant struct {
	Color  string   `json:"color"`
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

// SizeVariant is a size label with optional dedicated imagery.
type SizeVariant struct {
	Size   string   `json:"size"`
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

// Product is the canonical in-memory product shape. Everything past the
// normalization boundary operates on this struct, never on raw document
// fields.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Sizes       []string       `json:"sizes"`
	Image       string         `json:"image"`
	SoldOut     bool           `json:"soldOut"`
	Colors      []ColorVariant `json:"colors"`
	SizeImages  []SizeVariant  `json:"sizeImages"`

	// Offer is the legacy flag written for backward compatibility; pricing
	// only consults OfferDiscount and OfferEndTime.
	Offer         bool    `json:"offer"`
	OfferDiscount float64 `json:"offerDiscount,omitempty"`
	// OfferEndTime is epoch milliseconds; zero means no expiry is set.
	OfferEndTime int64 `json:"offerEndTime,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// OfferActiveAt reports whether the product's discount applies at the given
// time (epoch milliseconds). An absent end time means the offer runs until
// the discount is removed; an end time at or before now deactivates it with
// no grace period.
func (p Product) OfferActiveAt(nowMs int64) bool {
	if p.OfferDiscount <= 0 {
		return false
	}
	return p.OfferEndTime == 0 || p.OfferEndTime > nowMs
}

// MainImage resolves the representative image: first image of the first
// color, then the product-level image, then the placeholder.
func (p Product) MainImage() string {
	if len(p.Colors) > 0 {
		c := p.Colors[0]
		if len(c.Images) > 0 && c.Images[0] != "" {
			return c.Images[0]
		}
		if c.Image != "" {
			return c.Image
		}
	}
	if p.Image != "" {
		return p.Image
	}
	return PlaceholderImage
}

// ImageForColor returns the representative image for the named color,
// falling back the same way MainImage does.
func (p Product) ImageForColor(color string) string {
	if color != "" {
		for _, c := range p.Colors {
			if c.Color != color {
				continue
			}
			if len(c.Images) > 0 && c.Images[0] != "" {
				return c.Images[0]
			}
			if c.Image != "" {
				return c.Image
			}
		}
	}
	if p.Image != "" {
		return p.Image
	}
	return PlaceholderImage
}

// HasSize reports whether the label is one of the product's current sizes.
// Products without a size list are one-size and accept anything.
func (p Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
