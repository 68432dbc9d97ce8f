package catalog

import (
	"sort"
	"time"
)

// Filter narrows and orders a product listing.
type Filter struct {
	Category  string
	Type      string
	PriceSort string // "low-to-high" or "high-to-low"
}

// Service provides business logic for the product catalog. Reads come from
// the live store snapshot; writes go to the repository and are pushed back
// to every consumer through the store.
type Service struct {
	repo  Repository
	store *Store
}

func NewService(repo Repository, store *Store) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) List(f Filter) []Product {
	products := s.store.Snapshot().Products

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.PriceSort {
	case "low-to-high":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "high-to-low":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered
}

// Get fetches the freshest copy of a product straight from the repository,
// bypassing the snapshot (admin edit forms want the latest write).
func (s *Service) Get(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	sanitizeForWrite(&p)
	created, err := s.repo.Create(p)
	if err != nil {
		return Product{}, err
	}
	s.store.Refresh()
	return created, nil
}

func (s *Service) Update(id string, p Product) (Product, error) {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	sanitizeForWrite(&p)
	updated, err := s.repo.Update(id, p)
	if err != nil {
		return Product{}, err
	}
	s.store.Refresh()
	return updated, nil
}

func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.store.Refresh()
	return nil
}

// SetGlobalOfferTimer re-stamps the offer end time on every product with an
// active offer. Each update is independent: one failure does not roll back
// the others, the caller re-runs the timer if any failed.
func (s *Service) SetGlobalOfferTimer(end int64) (updated, failed int) {
	now := time.Now().UnixMilli()
	for _, p := range s.store.Snapshot().Products {
		if !p.OfferActiveAt(now) {
			continue
		}
		if err := s.repo.SetOfferEndTime(p.ID, end); err != nil {
			failed++
			continue
		}
		updated++
	}
	s.store.Refresh()
	return updated, failed
}

// SetOffer attaches (or re-stamps) an offer on one product.
func (s *Service) SetOffer(id string, discount float64, end int64) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	p.Offer = discount > 0
	p.OfferDiscount = discount
	p.OfferEndTime = end
	return s.Update(id, p)
}

// RetagCategory moves every product tagged with the old category name onto
// the new one, one document at a time with no transactional guarantee.
func (s *Service) RetagCategory(oldName, newName string) (updated, failed int) {
	products, err := s.repo.ListByCategory(oldName)
	if err != nil {
		return 0, 0
	}
	for _, p := range products {
		if err := s.repo.SetCategory(p.ID, newName); err != nil {
			failed++
			continue
		}
		updated++
	}
	s.store.Refresh()
	return updated, failed
}

// sanitizeForWrite drops incomplete variant entries and renormalizes the
// rest so stored documents are always canonical. Color entries need both a
// label and an image to survive (matching the admin form behavior); size
// entries need an image.
func sanitizeForWrite(p *Product) {
	colors := make([]ColorVariant, 0, len(p.Colors))
	for _, c := range renormalizeColors(p.Colors) {
		if c.Color == "" {
			continue
		}
		colors = append(colors, c)
	}
	p.Colors = colors
	p.SizeImages = renormalizeSizeImages(p.SizeImages)
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	p.Offer = p.OfferDiscount > 0
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.Category == "" {
		errs["category"] = "category is required"
	}
	if p.OfferDiscount < 0 || p.OfferDiscount > 100 {
		errs["offerDiscount"] = "offerDiscount must be between 0 and 100"
	}
	return errs
}
