package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/soundstitch/storefront/app/cart"
	"github.com/soundstitch/storefront/app/models"
	"github.com/soundstitch/storefront/app/repositories"
)

const snapshotWriteTimeout = 5 * time.Second

// CartService owns one cart store per cart key. Stores are rehydrated
// from their persisted snapshot on first access and re-persisted on
// every mutation through a subscriber. The service is constructed once
// at startup and passed down explicitly; there is no package-level
// store.
type CartService struct {
	mu        sync.Mutex
	stores    map[string]*cart.Store
	snapshots repositories.SnapshotRepository
}

func NewCartService(snapshots repositories.SnapshotRepository) *CartService {
	return &CartService{
		stores:    make(map[string]*cart.Store),
		snapshots: snapshots,
	}
}

// StoreFor returns the store for cartKey, creating and rehydrating it
// on first use. Snapshot load failures and corrupt payloads are
// discarded: the shopper starts with an empty cart, never an error.
func (s *CartService) StoreFor(ctx context.Context, cartKey string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[cartKey]; ok {
		return store
	}

	store := cart.NewStore()
	payload, found, err := s.snapshots.Get(ctx, cartKey)
	if err != nil {
		log.Printf("CartService: failed to load snapshot for cart %s: %v", cartKey, err)
	} else if found {
		items, err := models.DecodeCartItems([]byte(payload))
		if err != nil {
			log.Printf("CartService: discarding corrupt snapshot for cart %s: %v", cartKey, err)
		} else {
			store.Replace(items)
		}
	}

	store.Subscribe(s.persister(cartKey))
	s.stores[cartKey] = store
	return store
}

// Reset empties the cart and drops its persisted snapshot, e.g. after a
// completed purchase. Purchase history on the store is kept.
func (s *CartService) Reset(ctx context.Context, cartKey string) {
	store := s.StoreFor(ctx, cartKey)
	store.Clear()
	if err := s.snapshots.Delete(ctx, cartKey); err != nil {
		log.Printf("CartService: failed to delete snapshot for cart %s: %v", cartKey, err)
	}
}

// persister serializes the item list (never the purchase history) on
// every change. Writes are best effort: failures are logged and the
// in-memory store stays authoritative.
func (s *CartService) persister(cartKey string) cart.Subscriber {
	return func(state models.CartState) {
		payload, err := models.EncodeCartItems(state.Items)
		if err != nil {
			log.Printf("CartService: failed to serialize cart %s: %v", cartKey, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), snapshotWriteTimeout)
		defer cancel()
		if err := s.snapshots.Set(ctx, cartKey, string(payload)); err != nil {
			log.Printf("CartService: dropping snapshot write for cart %s: %v", cartKey, err)
		}
	}
}
