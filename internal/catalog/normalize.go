package catalog

import (
	"encoding/json"
	"strconv"
)

// RawVariant is the loosely-typed variant shape as persisted. Old documents
// carry a single `image` field, newer ones an `images` array; both are
// accepted and folded into the canonical shape.
type RawVariant struct {
	Color  string   `json:"color,omitempty"`
	Size   string   `json:"size,omitempty"`
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`
}

// RawProduct is the untyped field bag of a persisted product document.
// Only the normalizer looks at this shape.
type RawProduct struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         json.RawMessage `json:"price"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Sizes         []string        `json:"sizes"`
	Image         string          `json:"image"`
	Description   string          `json:"description"`
	Offer         bool            `json:"offer"`
	OfferDiscount float64         `json:"offerDiscount"`
	OfferEndTime  int64           `json:"offerEndTime"`
	Colors        []RawVariant    `json:"colors"`
	SizeImages    []RawVariant    `json:"sizeImages"`
	SoldOut       bool            `json:"soldOut"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func nonEmpty(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

// NormalizeColors folds heterogeneous persisted color entries into the
// canonical shape. Entries without any image are dropped; the function is
// total and never errors.
func NormalizeColors(raw []RawVariant) []ColorVariant {
	out := make([]ColorVariant, 0, len(raw))
	for _, c := range raw {
		imgs := nonEmpty(c.Images)
		if len(imgs) > 0 {
			out = append(out, ColorVariant{Color: c.Color, Image: imgs[0], Images: imgs})
			continue
		}
		if c.Image != "" {
			out = append(out, ColorVariant{Color: c.Color, Image: c.Image, Images: []string{c.Image}})
		}
	}
	return out
}

// NormalizeSizeImages applies the same dual-shape rule to size imagery.
func NormalizeSizeImages(raw []RawVariant) []SizeVariant {
	out := make([]SizeVariant, 0, len(raw))
	for _, si := range raw {
		imgs := nonEmpty(si.Images)
		if len(imgs) > 0 {
			out = append(out, SizeVariant{Size: si.Size, Image: imgs[0], Images: imgs})
			continue
		}
		if si.Image != "" {
			out = append(out, SizeVariant{Size: si.Size, Image: si.Image, Images: []string{si.Image}})
		}
	}
	return out
}

// coercePrice accepts a JSON number or a numeric string; anything else
// degrades to zero.
func coercePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}

// Normalize converts a raw document into the canonical product. Malformed or
// missing fields degrade to zero values and empty lists, never to an error.
func Normalize(doc RawProduct) Product {
	sizes := doc.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return Product{
		ID:            doc.ID,
		Name:          doc.Name,
		Price:         coercePrice(doc.Price),
		Category:      doc.Category,
		Type:          doc.Type,
		Sizes:         sizes,
		Image:         doc.Image,
		Description:   doc.Description,
		Offer:         doc.Offer,
		OfferDiscount: doc.OfferDiscount,
		OfferEndTime:  doc.OfferEndTime,
		Colors:        NormalizeColors(doc.Colors),
		SizeImages:    NormalizeSizeImages(doc.SizeImages),
		SoldOut:       doc.SoldOut,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// renormalizeColors reruns normalization over already-canonical variants.
// Used on the write path so stored documents are always canonical.
func renormalizeColors(colors []ColorVariant) []ColorVariant {
	raw := make([]RawVariant, 0, len(colors))
	for _, c := range colors {
		raw = append(raw, RawVariant{Color: c.Color, Image: c.Image, Images: c.Images})
	}
	return NormalizeColors(raw)
}

func renormalizeSizeImages(sizeImages []SizeVariant) []SizeVariant {
	raw := make([]RawVariant, 0, len(sizeImages))
	for _, si := range sizeImages {
		raw = append(raw, RawVariant{Size: si.Size, Image: si.Image, Images: si.Images})
	}
	return NormalizeSizeImages(raw)
}
