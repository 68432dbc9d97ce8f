package catalog

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List() ([]Product, error)
	GetByID(id string) (Product, error)
	Create(p Product) (Product, error)
	Update(id string, p Product) (Product, error)
	Delete(id string) error
	// ListByCategory returns products tagged with the given category name.
	ListByCategory(name string) ([]Product, error)
	// SetCategory re-tags a single product (used by category rename).
	SetCategory(id string, category string) error
	// SetOfferEndTime re-stamps a single product's offer expiry.
	SetOfferEndTime(id string, end int64) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.storage {
		if existing.ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.storage {
		if p.ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListByCategory(name string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.Category == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) SetCategory(id string, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.storage {
		if p.ID == id {
			r.storage[i].Category = category
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) SetOfferEndTime(id string, end int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.storage {
		if p.ID == id {
			r.storage[i].OfferEndTime = end
			return nil
		}
	}
	return ErrNotFound
}
