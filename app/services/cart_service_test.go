package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstitch/storefront/app/models"
)

type memorySnapshots struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	writes int
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: make(map[string]string)}
}

func (m *memorySnapshots) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	payload, ok := m.data[key]
	return payload, ok, nil
}

func (m *memorySnapshots) Set(ctx context.Context, key, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = payload
	m.writes++
	return nil
}

func (m *memorySnapshots) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memorySnapshots) payload(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.data[key]
	return payload, ok
}

func testSample(id, name, price string) *models.SampleItem {
	return &models.SampleItem{
		Type:  models.ItemTypeSample,
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestStoreForReturnsSameStore(t *testing.T) {
	svc := NewCartService(newMemorySnapshots())
	ctx := context.Background()

	a := svc.StoreFor(ctx, "cart-1")
	b := svc.StoreFor(ctx, "cart-1")
	c := svc.StoreFor(ctx, "cart-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestStoreForRehydratesFromSnapshot(t *testing.T) {
	snapshots := newMemorySnapshots()
	snapshots.data["cart-1"] = `[{"type":"sample","id":"s1","name":"Kick","price":"1.99","quantity":2}]`

	svc := NewCartService(snapshots)
	state := svc.StoreFor(context.Background(), "cart-1").Snapshot()

	require.Len(t, state.Items, 1)
	assert.Equal(t, "s1", state.Items[0].ItemID())
	assert.Equal(t, 2, state.Items[0].Qty())
}

func TestStoreForDiscardsCorruptSnapshot(t *testing.T) {
	snapshots := newMemorySnapshots()
	snapshots.data["cart-1"] = `{"definitely": "not items"}`

	svc := NewCartService(snapshots)
	state := svc.StoreFor(context.Background(), "cart-1").Snapshot()

	assert.Empty(t, state.Items)
}

func TestStoreForSwallowsLoadError(t *testing.T) {
	snapshots := newMemorySnapshots()
	snapshots.getErr = errors.New("storage offline")

	svc := NewCartService(snapshots)
	state := svc.StoreFor(context.Background(), "cart-1").Snapshot()

	assert.Empty(t, state.Items)
}

func TestEveryMutationPersistsItemsOnly(t *testing.T) {
	snapshots := newMemorySnapshots()
	svc := NewCartService(snapshots)
	ctx := context.Background()
	store := svc.StoreFor(ctx, "cart-1")

	require.NoError(t, store.AddItem(testSample("s1", "Kick", "1.99")))
	require.NoError(t, store.UpdateQuantity("s1", 3))
	store.RecordPurchase([]models.CartItem{testSample("old", "Snare", "1.49")})

	assert.Equal(t, 3, snapshots.writes)

	payload, ok := snapshots.payload("cart-1")
	require.True(t, ok)

	items, err := models.DecodeCartItems([]byte(payload))
	require.NoError(t, err)
	require.Len(t, items, 1, "purchase history must not be persisted")
	assert.Equal(t, "s1", items[0].ItemID())
	assert.Equal(t, 3, items[0].Qty())
}

func TestWriteFailureIsDropped(t *testing.T) {
	snapshots := newMemorySnapshots()
	snapshots.setErr = errors.New("quota exceeded")

	svc := NewCartService(snapshots)
	store := svc.StoreFor(context.Background(), "cart-1")

	require.NoError(t, store.AddItem(testSample("s1", "Kick", "1.99")))
	assert.Equal(t, 1, store.Len(), "in-memory store stays authoritative")
}

func TestResetClearsStoreAndSnapshot(t *testing.T) {
	snapshots := newMemorySnapshots()
	svc := NewCartService(snapshots)
	ctx := context.Background()

	store := svc.StoreFor(ctx, "cart-1")
	require.NoError(t, store.AddItem(testSample("s1", "Kick", "1.99")))

	svc.Reset(ctx, "cart-1")

	assert.Equal(t, 0, store.Len())
	_, ok := snapshots.payload("cart-1")
	assert.False(t, ok)
}
