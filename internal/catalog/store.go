package catalog

import (
	"log"
	"sync"
	"time"
)

// Category is a managed category as seen by storefront consumers.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is the read-only live view handed to consumers. A consumer never
// observes a partially-updated product list; snapshots are swapped whole.
type Snapshot struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Loading    bool       `json:"loading"`
}

// Loader supplies the current product set.
type Loader interface {
	List() ([]Product, error)
}

// CategoryLoader supplies the current category set.
type CategoryLoader interface {
	List() ([]Category, error)
}

// Store keeps the latest catalog snapshot and pushes it to subscribers.
// Updates are latest-wins: consecutive refreshes are not queued, only the
// most recent snapshot is guaranteed visible. Consumers must treat the
// snapshot as read-only; all mutation goes through admin writes and comes
// back via Refresh.
type Store struct {
	products   Loader
	categories CategoryLoader

	mu      sync.RWMutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int

	expiry *time.Timer
}

func NewStore(products Loader, categories CategoryLoader) *Store {
	return &Store{
		products:   products,
		categories: categories,
		snap: Snapshot{
			Products:   []Product{},
			Categories: []Category{},
			Loading:    true,
		},
		subs: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current view. Slices are copied so a consumer holding
// the result cannot mutate shared state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap)
}

// Subscribe registers a handler that receives the current snapshot
// immediately and every subsequent one. The returned cancel function
// unregisters the handler; it is safe to call more than once.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := copySnapshot(s.snap)
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Refresh reloads the snapshot from the backing store and publishes it.
// A load failure is logged and leaves the last-known snapshot in place with
// Loading=false; consumers are never crashed by a backing-store error.
func (s *Store) Refresh() {
	products, err := s.products.List()
	if err != nil {
		log.Printf("catalog: loading products failed: %v", err)
		s.failLoad()
		return
	}
	categories := []Category{}
	if s.categories != nil {
		categories, err = s.categories.List()
		if err != nil {
			log.Printf("catalog: loading categories failed: %v", err)
			s.failLoad()
			return
		}
	}

	s.mu.Lock()
	s.snap = Snapshot{Products: products, Categories: categories, Loading: false}
	subs, snap := s.handlers(), copySnapshot(s.snap)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	s.scheduleOfferExpiry()
}

func (s *Store) failLoad() {
	s.mu.Lock()
	s.snap.Loading = false
	subs, snap := s.handlers(), copySnapshot(s.snap)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// handlers must be called with the mutex held.
func (s *Store) handlers() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// scheduleOfferExpiry arms a one-shot timer for the earliest active offer
// end so listing views see the offer drop out the moment it expires. Items
// already in carts keep their locked price; this only affects the live view.
func (s *Store) scheduleOfferExpiry() {
	now := time.Now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}

	var earliest int64
	for _, p := range s.snap.Products {
		if !p.OfferActiveAt(now) || p.OfferEndTime == 0 {
			continue
		}
		if earliest == 0 || p.OfferEndTime < earliest {
			earliest = p.OfferEndTime
		}
	}
	if earliest == 0 {
		return
	}

	wait := time.Duration(earliest-now) * time.Millisecond
	if wait < 0 {
		wait = 0
	}
	s.expiry = time.AfterFunc(wait, func() {
		s.mu.Lock()
		subs, snap := s.handlers(), copySnapshot(s.snap)
		s.mu.Unlock()
		for _, fn := range subs {
			fn(snap)
		}
		s.scheduleOfferExpiry()
	})
}

// Close stops the offer-expiry timer.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
}

func copySnapshot(snap Snapshot) Snapshot {
	out := Snapshot{
		Products:   make([]Product, len(snap.Products)),
		Categories: make([]Category, len(snap.Categories)),
		Loading:    snap.Loading,
	}
	copy(out.Products, snap.Products)
	copy(out.Categories, snap.Categories)
	return out
}
