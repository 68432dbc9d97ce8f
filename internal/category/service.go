package category

import (
	"github.com/veestore/storefront-backend/internal/catalog"
)

// ProductRetagger moves products from one category name to another. The
// catalog service implements it; an interface keeps this package free of a
// dependency on catalog internals.
type ProductRetagger interface {
	RetagCategory(oldName, newName string) (updated, failed int)
}

// Service provides business logic for the managed category set.
type Service struct {
	repo     Repository
	retagger ProductRetagger
}

func NewService(repo Repository, retagger ProductRetagger) *Service {
	return &Service{repo: repo, retagger: retagger}
}

func (s *Service) List() []catalog.Category {
	items, err := s.repo.List()
	if err != nil {
		return []catalog.Category{}
	}
	return items
}

func (s *Service) Create(name string) (catalog.Category, error) {
	return s.repo.Create(name)
}

// RenameResult reports what a rename did. Failed counts products whose
// re-tag did not go through; the admin re-runs the rename for those.
type RenameResult struct {
	Category catalog.Category `json:"category"`
	Updated  int              `json:"updated"`
	Failed   int              `json:"failed"`
}

// Rename changes the category's display name and re-tags every product
// carrying the old name. Re-tagging is per-document: a failure in one
// product does not roll back the rename or the other products.
func (s *Service) Rename(id string, newName string) (RenameResult, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return RenameResult{}, err
	}
	renamed, err := s.repo.Rename(id, newName)
	if err != nil {
		return RenameResult{}, err
	}

	res := RenameResult{Category: renamed}
	if s.retagger != nil && existing.Name != newName {
		res.Updated, res.Failed = s.retagger.RetagCategory(existing.Name, newName)
	}
	return res, nil
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
