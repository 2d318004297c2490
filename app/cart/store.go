// Package cart holds the in-memory cart store: a mutex-guarded item list
// plus purchase history with synchronous subscriber notification. All
// mutations go through the store's methods; invalid input is rejected
// with an explicit error, never silently dropped.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soundstitch/storefront/app/models"
)

var (
	ErrInvalidItem     = errors.New("cart: invalid item")
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart: item not found")
	ErrVariantConflict = errors.New("cart: id already used by another item type")
)

// Subscriber receives the full cart state after every change. Calls are
// synchronous and run outside the store lock.
type Subscriber func(models.CartState)

type Store struct {
	mu      sync.Mutex
	items   []models.CartItem
	history []models.CartItem
	subs    map[int]Subscriber
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]Subscriber)}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn and returns its cancel function. The
// subscriber is not called with the current state on registration.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// AddItem appends item, or increments quantity when an item with the
// same id and variant is already present. The same id under a different
// variant is rejected: ids are unique across variants.
func (s *Store) AddItem(item models.CartItem) error {
	if item == nil {
		return ErrInvalidItem
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	incoming := item.Qty()

	s.mu.Lock()
	for _, existing := range s.items {
		if existing.ItemID() != item.ItemID() {
			continue
		}
		if existing.Kind() != item.Kind() {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s is a %s", ErrVariantConflict, item.ItemID(), existing.Kind())
		}
		existing.SetQty(existing.Qty() + incoming)
		notify := s.prepareNotifyLocked()
		s.mu.Unlock()
		notify()
		return nil
	}

	added := item.Clone()
	added.SetQty(incoming)
	s.items = append(s.items, added)
	notify := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// AddPack puts the pack into the cart as a single unit. Contained
// samples stay summaries inside the pack entry and are never expanded
// into their own lines.
func (s *Store) AddPack(pack *models.PackItem) error {
	if pack == nil {
		return ErrInvalidItem
	}
	return s.AddItem(pack)
}

// RemoveItem deletes the first item matching id regardless of variant.
// Removing an absent id is a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	for i, item := range s.items {
		if item.ItemID() != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		notify := s.prepareNotifyLocked()
		s.mu.Unlock()
		notify()
		return
	}
	s.mu.Unlock()
}

// UpdateQuantity sets the quantity of the item with the given id.
// Quantities below 1 are rejected and the stored quantity is unchanged.
func (s *Store) UpdateQuantity(id string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	for _, item := range s.items {
		if item.ItemID() != id {
			continue
		}
		item.SetQty(qty)
		notify := s.prepareNotifyLocked()
		s.mu.Unlock()
		notify()
		return nil
	}
	s.mu.Unlock()
	return ErrItemNotFound
}

// Clear empties the item list. Purchase history is untouched. Clearing
// an already empty cart is a no-op and does not notify.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	notify := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify()
}

// RecordPurchase appends the given items to the purchase history.
// History is append-only; completed purchases are never rewritten.
func (s *Store) RecordPurchase(items []models.CartItem) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	for _, item := range items {
		if item == nil {
			continue
		}
		s.history = append(s.history, item.Clone())
	}
	notify := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify()
}

// Replace swaps in a rehydrated item list. Invalid entries and
// duplicate ids are dropped: persisted snapshots are a best-effort
// cache, not a source of truth. No notification is sent; Replace runs
// before any subscriber is attached.
func (s *Store) Replace(items []models.CartItem) {
	kept := make([]models.CartItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item == nil || item.Validate() != nil || seen[item.ItemID()] {
			continue
		}
		seen[item.ItemID()] = true
		cl := item.Clone()
		cl.SetQty(item.Qty())
		kept = append(kept, cl)
	}

	s.mu.Lock()
	s.items = kept
	s.mu.Unlock()
}

func (s *Store) snapshotLocked() models.CartState {
	state := models.CartState{
		Items:           make([]models.CartItem, 0, len(s.items)),
		PurchaseHistory: make([]models.CartItem, 0, len(s.history)),
	}
	for _, item := range s.items {
		state.Items = append(state.Items, item.Clone())
	}
	for _, item := range s.history {
		state.PurchaseHistory = append(state.PurchaseHistory, item.Clone())
	}
	return state
}

// prepareNotifyLocked captures the state and subscriber set under the
// lock and returns the call to run after unlocking, so subscribers can
// re-enter the store.
func (s *Store) prepareNotifyLocked() func() {
	state := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return func() {
		for _, fn := range subs {
			fn(state)
		}
	}
}
