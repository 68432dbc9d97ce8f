package selection

import (
	"github.com/veestore/storefront-backend/internal/cart"
	"github.com/veestore/storefront-backend/internal/catalog"
	"github.com/veestore/storefront-backend/internal/offer"
)

// State is the value object for one product-selection session. Transitions
// are pure functions from State to State so the machine is testable without
// any HTTP or timer harness.
type State struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`

	// SelectedColor indexes Product.Colors; -1 means no color chosen yet.
	SelectedColor int `json:"selectedColor"`
	// PieceSizes holds one size label per unit of quantity; "" = unselected.
	PieceSizes []string `json:"pieceSizes"`

	// Images is the combined gallery: color imagery then size imagery,
	// deduplicated, order preserved.
	Images     []string `json:"images"`
	ImageIndex int      `json:"imageIndex"`

	// Explicit is set once the user picks a color or size; auto-selection
	// of a lone variant does not count. The gallery rotates only while
	// Explicit is false.
	Explicit bool `json:"explicit"`
	// GalleryHalted latches once rotation reaches the last image.
	GalleryHalted bool `json:"galleryHalted"`
}

// Gallery builds the combined image list for a product.
func Gallery(p catalog.Product) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(img string) {
		if img == "" || seen[img] {
			return
		}
		seen[img] = true
		out = append(out, img)
	}
	for _, c := range p.Colors {
		for _, img := range c.Images {
			add(img)
		}
	}
	for _, si := range p.SizeImages {
		for _, img := range si.Images {
			add(img)
		}
	}
	return out
}

// Open starts a selection for a product. A lone color or size is selected
// automatically; with more than one the control stays unset until the user
// chooses.
func Open(p catalog.Product) State {
	s := State{
		Product:       p,
		Quantity:      1,
		SelectedColor: -1,
		PieceSizes:    []string{""},
		Images:        Gallery(p),
	}
	if len(p.Colors) == 1 {
		s.SelectedColor = 0
	}
	if len(p.Sizes) == 1 {
		s.PieceSizes[0] = p.Sizes[0]
	}
	return s
}

// SetQuantity resizes the per-piece size selections: growing appends empty
// selections (or the lone size, which every piece gets automatically),
// shrinking truncates from the tail. Selections for retained pieces are
// preserved.
func SetQuantity(s State, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}
	s.Quantity = quantity

	auto := ""
	if len(s.Product.Sizes) == 1 {
		auto = s.Product.Sizes[0]
	}

	pieces := make([]string, quantity)
	copy(pieces, s.PieceSizes)
	for i := len(s.PieceSizes); i < quantity; i++ {
		pieces[i] = auto
	}
	s.PieceSizes = pieces
	return s
}

// ChooseColor selects a color and jumps the gallery to that color's first
// image. Size selections are untouched. Out-of-range indexes are ignored.
func ChooseColor(s State, idx int) State {
	if idx < 0 || idx >= len(s.Product.Colors) {
		return s
	}
	s.SelectedColor = idx
	s.Explicit = true

	c := s.Product.Colors[idx]
	if len(c.Images) > 0 {
		if pos := indexOf(s.Images, c.Images[0]); pos != -1 {
			s.ImageIndex = pos
		}
	}
	return s
}

// ChooseSize sets the size for one piece and, when the size carries a
// dedicated image, jumps the gallery to it. Unknown sizes and out-of-range
// pieces are ignored.
func ChooseSize(s State, piece int, size string) State {
	if piece < 0 || piece >= len(s.PieceSizes) {
		return s
	}
	if size != "" && !s.Product.HasSize(size) {
		return s
	}
	pieces := make([]string, len(s.PieceSizes))
	copy(pieces, s.PieceSizes)
	pieces[piece] = size
	s.PieceSizes = pieces
	s.Explicit = true

	for _, si := range s.Product.SizeImages {
		if si.Size != size || len(si.Images) == 0 {
			continue
		}
		if pos := indexOf(s.Images, si.Images[0]); pos != -1 {
			s.ImageIndex = pos
		}
		break
	}
	return s
}

// JumpImage moves the displayed image (thumbnail click). It does not halt
// the rotation; only an explicit color or size choice does.
func JumpImage(s State, idx int) State {
	if idx < 0 || idx >= len(s.Images) {
		return s
	}
	s.ImageIndex = idx
	return s
}

// GalleryTick advances the rotation by one image. Rotation runs only while
// no explicit choice has been made and there is more than one image; it
// halts permanently once the last image is reached — it does not loop.
func GalleryTick(s State) State {
	if s.GalleryHalted || s.Explicit || len(s.Images) < 2 {
		return s
	}
	next := s.ImageIndex + 1
	if next >= len(s.Images) {
		s.GalleryHalted = true
		return s
	}
	s.ImageIndex = next
	if next == len(s.Images)-1 {
		s.GalleryHalted = true
	}
	return s
}

// Rotating reports whether the gallery still auto-advances.
func (s State) Rotating() bool {
	return !s.GalleryHalted && !s.Explicit && len(s.Images) >= 2
}

// DisplayImage is the image currently shown, with the usual fallbacks.
func (s State) DisplayImage() string {
	if len(s.Images) > 0 && s.ImageIndex >= 0 && s.ImageIndex < len(s.Images) {
		return s.Images[s.ImageIndex]
	}
	return s.Product.MainImage()
}

// SelectedColorName returns the chosen color label, or "" when none.
func (s State) SelectedColorName() string {
	if s.SelectedColor < 0 || s.SelectedColor >= len(s.Product.Colors) {
		return ""
	}
	return s.Product.Colors[s.SelectedColor].Color
}

// Complete reports whether "add to cart" may commit: the product is not sold
// out, a color is chosen whenever there is more than one, and every piece
// has a size whenever there is more than one.
func (s State) Complete() bool {
	if s.Product.SoldOut {
		return false
	}
	if len(s.Product.Colors) > 1 && s.SelectedColor < 0 {
		return false
	}
	if len(s.Product.Sizes) > 1 {
		for _, size := range s.PieceSizes {
			if size == "" {
				return false
			}
		}
	}
	return true
}

// Lines converts a complete selection into cart lines: one line of quantity
// one per piece, all sharing the product and color, so distinct sizes within
// one purchase occupy distinct cart entries. The unit price is resolved once,
// here, and locked into each line.
func (s State) Lines(nowMs int64) []cart.LineItem {
	price := offer.UnitPrice(s.Product, nowMs)
	color := s.SelectedColorName()

	lines := make([]cart.LineItem, 0, len(s.PieceSizes))
	for _, size := range s.PieceSizes {
		lines = append(lines, cart.LineItem{
			ProductID: s.Product.ID,
			Name:      s.Product.Name,
			UnitPrice: price,
			Size:      size,
			Color:     color,
			Image:     s.Product.ImageForColor(color),
			Category:  s.Product.Category,
			Type:      s.Product.Type,
			Quantity:  1,
		})
	}
	return lines
}

func indexOf(images []string, img string) int {
	for i, candidate := range images {
		if candidate == img {
			return i
		}
	}
	return -1
}
