package catalog

import (
	"errors"
	"testing"
)

type stubLoader struct {
	products []Product
	err      error
}

func (s *stubLoader) List() ([]Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type stubCategoryLoader struct {
	categories []Category
}

func (s *stubCategoryLoader) List() ([]Category, error) {
	return s.categories, nil
}

func TestStore_SubscribeDeliversCurrentSnapshotImmediately(t *testing.T) {
	store := NewStore(&stubLoader{}, &stubCategoryLoader{})
	defer store.Close()

	var got []Snapshot
	cancel := store.Subscribe(func(s Snapshot) { got = append(got, s) })
	defer cancel()

	if len(got) != 1 {
		t.Fatalf("expected immediate delivery, got %d snapshots", len(got))
	}
	if !got[0].Loading {
		t.Fatal("initial snapshot must be loading")
	}
}

func TestStore_RefreshPublishesToSubscribers(t *testing.T) {
	loader := &stubLoader{products: []Product{{ID: "p1", Name: "Tote"}}}
	store := NewStore(loader, &stubCategoryLoader{categories: []Category{{ID: "c1", Name: "Bags"}}})
	defer store.Close()

	var got []Snapshot
	cancel := store.Subscribe(func(s Snapshot) { got = append(got, s) })
	defer cancel()

	store.Refresh()

	if len(got) != 2 {
		t.Fatalf("expected initial + refreshed snapshot, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.Loading {
		t.Fatal("refreshed snapshot must not be loading")
	}
	if len(last.Products) != 1 || last.Products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", last.Products)
	}
	if len(last.Categories) != 1 || last.Categories[0].Name != "Bags" {
		t.Fatalf("unexpected categories %+v", last.Categories)
	}
}

func TestStore_LoadFailureKeepsLastSnapshot(t *testing.T) {
	loader := &stubLoader{products: []Product{{ID: "p1"}}}
	store := NewStore(loader, &stubCategoryLoader{})
	defer store.Close()

	store.Refresh()
	if got := store.Snapshot(); len(got.Products) != 1 {
		t.Fatalf("setup refresh failed: %+v", got)
	}

	loader.err = errors.New("connection refused")
	store.Refresh()

	got := store.Snapshot()
	if len(got.Products) != 1 || got.Products[0].ID != "p1" {
		t.Fatalf("failed refresh must keep last products, got %+v", got.Products)
	}
	if got.Loading {
		t.Fatal("failed refresh must still clear loading")
	}
}

func TestStore_CancelStopsDelivery(t *testing.T) {
	store := NewStore(&stubLoader{}, &stubCategoryLoader{})
	defer store.Close()

	calls := 0
	cancel := store.Subscribe(func(Snapshot) { calls++ })
	cancel()
	store.Refresh()

	if calls != 1 {
		t.Fatalf("cancelled subscriber still notified, calls=%d", calls)
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	loader := &stubLoader{products: []Product{{ID: "p1", Name: "Tote"}}}
	store := NewStore(loader, &stubCategoryLoader{})
	defer store.Close()
	store.Refresh()

	snap := store.Snapshot()
	snap.Products[0].Name = "mutated"

	if store.Snapshot().Products[0].Name != "Tote" {
		t.Fatal("consumer mutation leaked into the store")
	}
}
