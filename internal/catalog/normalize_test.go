package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeColors_LegacySingleImage(t *testing.T) {
	got := NormalizeColors([]RawVariant{{Color: "red", Image: "red.jpg"}})
	want := []ColorVariant{{Color: "red", Image: "red.jpg", Images: []string{"red.jpg"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("legacy shape not folded: got %+v want %+v", got, want)
	}
}

func TestNormalizeColors_ImagesArrayWins(t *testing.T) {
	got := NormalizeColors([]RawVariant{{
		Color:  "blue",
		Image:  "old.jpg",
		Images: []string{"a.jpg", "b.jpg"},
	}})
	if len(got) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(got))
	}
	if got[0].Image != "a.jpg" {
		t.Fatalf("image should mirror images[0], got %q", got[0].Image)
	}
	if !reflect.DeepEqual(got[0].Images, []string{"a.jpg", "b.jpg"}) {
		t.Fatalf("unexpected images %v", got[0].Images)
	}
}

func TestNormalizeColors_DropsImagelessAndBlankEntries(t *testing.T) {
	got := NormalizeColors([]RawVariant{
		{Color: "ghost"},
		{Color: "blank", Images: []string{"", ""}},
		{Color: "kept", Images: []string{"", "x.jpg"}},
	})
	if len(got) != 1 || got[0].Color != "kept" {
		t.Fatalf("expected only the entry with a real image, got %+v", got)
	}
	if got[0].Image != "x.jpg" {
		t.Fatalf("blank image strings must be skipped, got %q", got[0].Image)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := RawProduct{
		ID:    "p1",
		Name:  "Tote",
		Price: json.RawMessage(`"120.5"`),
		Colors: []RawVariant{
			{Color: "red", Image: "red.jpg"},
			{Color: "blue", Images: []string{"b1.jpg", "b2.jpg"}},
		},
		SizeImages: []RawVariant{{Size: "M", Image: "m.jpg"}},
	}

	first := Normalize(doc)

	// feed the canonical product back through as a raw document
	again := Normalize(RawProduct{
		ID:         first.ID,
		Name:       first.Name,
		Price:      json.RawMessage(`120.5`),
		Sizes:      first.Sizes,
		Colors:     colorsAsRaw(first.Colors),
		SizeImages: sizesAsRaw(first.SizeImages),
	})

	if !reflect.DeepEqual(first.Colors, again.Colors) {
		t.Fatalf("colors not stable under renormalization: %+v vs %+v", first.Colors, again.Colors)
	}
	if !reflect.DeepEqual(first.SizeImages, again.SizeImages) {
		t.Fatalf("size images not stable under renormalization: %+v vs %+v", first.SizeImages, again.SizeImages)
	}
	if first.Price != again.Price {
		t.Fatalf("price drifted: %v vs %v", first.Price, again.Price)
	}
}

func colorsAsRaw(colors []ColorVariant) []RawVariant {
	out := make([]RawVariant, 0, len(colors))
	for _, c := range colors {
		out = append(out, RawVariant{Color: c.Color, Image: c.Image, Images: c.Images})
	}
	return out
}

func sizesAsRaw(sizeImages []SizeVariant) []RawVariant {
	out := make([]RawVariant, 0, len(sizeImages))
	for _, si := range sizeImages {
		out = append(out, RawVariant{Size: si.Size, Image: si.Image, Images: si.Images})
	}
	return out
}

func TestCoercePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`120`, 120},
		{`120.5`, 120.5},
		{`"99.9"`, 99.9},
		{`"not a number"`, 0},
		{`null`, 0},
		{``, 0},
	}
	for _, tc := range cases {
		if got := coercePrice(json.RawMessage(tc.raw)); got != tc.want {
			t.Errorf("coercePrice(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_MissingFieldsDegrade(t *testing.T) {
	p := Normalize(RawProduct{ID: "bare"})
	if p.Sizes == nil || len(p.Sizes) != 0 {
		t.Fatalf("sizes must be an empty list, got %#v", p.Sizes)
	}
	if p.Colors == nil || p.SizeImages == nil {
		t.Fatal("variant lists must be empty, not nil")
	}
	if p.Price != 0 {
		t.Fatalf("missing price must be 0, got %v", p.Price)
	}
}

func TestProduct_MainImageFallbacks(t *testing.T) {
	withColor := Product{
		Image:  "product.jpg",
		Colors: []ColorVariant{{Color: "red", Image: "red.jpg", Images: []string{"red.jpg"}}},
	}
	if got := withColor.MainImage(); got != "red.jpg" {
		t.Fatalf("first color image wins, got %q", got)
	}

	noColors := Product{Image: "product.jpg"}
	if got := noColors.MainImage(); got != "product.jpg" {
		t.Fatalf("product image fallback, got %q", got)
	}

	bare := Product{}
	if got := bare.MainImage(); got != PlaceholderImage {
		t.Fatalf("placeholder fallback, got %q", got)
	}
}

func TestProduct_OfferActiveAt(t *testing.T) {
	now := int64(1_000_000)
	cases := []struct {
		name string
		p    Product
		want bool
	}{
		{"no discount", Product{OfferEndTime: now + 1}, false},
		{"open ended", Product{OfferDiscount: 10}, true},
		{"running", Product{OfferDiscount: 10, OfferEndTime: now + 1}, true},
		{"expired exactly now", Product{OfferDiscount: 10, OfferEndTime: now}, false},
		{"expired", Product{OfferDiscount: 10, OfferEndTime: now - 1}, false},
	}
	for _, tc := range cases {
		if got := tc.p.OfferActiveAt(now); got != tc.want {
			t.Errorf("%s: OfferActiveAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}
