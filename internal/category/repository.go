package category

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/veestore/storefront-backend/internal/catalog"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrNameExists = errors.New("category name already exists")
)

// Repository provides access to the managed category set.
type Repository interface {
	List() ([]catalog.Category, error)
	GetByID(id string) (catalog.Category, error)
	Create(name string) (catalog.Category, error)
	Rename(id string, name string) (catalog.Category, error)
	Delete(id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []catalog.Category
}

func NewInMemoryRepository(seed []catalog.Category) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]catalog.Category, 0, len(seed))}
	for _, cat := range seed {
		if cat.ID == "" {
			cat.ID = uuid.NewString()
		}
		r.storage = append(r.storage, cat)
	}
	return r
}

func (r *InMemoryRepository) List() ([]catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Category, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cat := range r.storage {
		if cat.ID == id {
			return cat, nil
		}
	}
	return catalog.Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(name string) (catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cat := range r.storage {
		if cat.Name == name {
			return catalog.Category{}, ErrNameExists
		}
	}
	cat := catalog.Category{ID: uuid.NewString(), Name: name}
	r.storage = append(r.storage, cat)
	return cat, nil
}

func (r *InMemoryRepository) Rename(id string, name string) (catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cat := range r.storage {
		if cat.Name == name && cat.ID != id {
			return catalog.Category{}, ErrNameExists
		}
	}
	for i, cat := range r.storage {
		if cat.ID == id {
			r.storage[i].Name = name
			return r.storage[i], nil
		}
	}
	return catalog.Category{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cat := range r.storage {
		if cat.ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
