package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstitch/storefront/app/models"
)

func sampleItem(id, name, price string) *models.SampleItem {
	return &models.SampleItem{
		Type:  models.ItemTypeSample,
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestAddItemAppendsWithDefaultQuantity(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))

	state := store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "s1", state.Items[0].ItemID())
	assert.Equal(t, 1, state.Items[0].Qty())
}

func TestAddItemSameIDAndTypeSumsQuantities(t *testing.T) {
	store := NewStore()

	first := sampleItem("s1", "Kick", "1.99")
	first.Quantity = 2
	require.NoError(t, store.AddItem(first))

	second := sampleItem("s1", "Kick", "1.99")
	second.Quantity = 3
	require.NoError(t, store.AddItem(second))

	state := store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Qty())
}

func TestAddItemSameIDDifferentTypeRejected(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(sampleItem("x1", "Kick", "1.99")))

	pack := &models.PackItem{
		Type:  models.ItemTypePack,
		ID:    "x1",
		Name:  "Starter",
		Price: decimal.RequireFromString("29.99"),
	}
	err := store.AddItem(pack)
	require.ErrorIs(t, err, ErrVariantConflict)
	assert.Equal(t, 1, store.Len())
}

func TestAddItemInvalidRejected(t *testing.T) {
	store := NewStore()

	missingName := &models.SampleItem{Type: models.ItemTypeSample, ID: "s1"}
	require.ErrorIs(t, store.AddItem(missingName), ErrInvalidItem)

	wrongTag := &models.SampleItem{Type: "bogus", ID: "s2", Name: "Snare"}
	require.ErrorIs(t, store.AddItem(wrongTag), ErrInvalidItem)

	require.ErrorIs(t, store.AddItem(nil), ErrInvalidItem)
	assert.Equal(t, 0, store.Len())
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))

	notified := 0
	store.Subscribe(func(models.CartState) { notified++ })

	store.RemoveItem("missing")

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 0, notified, "no-op removal must not notify")
}

func TestRemoveItemIgnoresVariant(t *testing.T) {
	store := NewStore()
	pack := &models.PackItem{
		Type:  models.ItemTypePack,
		ID:    "p1",
		Name:  "Starter",
		Price: decimal.RequireFromString("29.99"),
	}
	require.NoError(t, store.AddPack(pack))

	store.RemoveItem("p1")
	assert.Equal(t, 0, store.Len())
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	store := NewStore()
	item := sampleItem("s1", "Kick", "1.99")
	item.Quantity = 2
	require.NoError(t, store.AddItem(item))

	require.ErrorIs(t, store.UpdateQuantity("s1", 0), ErrInvalidQuantity)
	require.ErrorIs(t, store.UpdateQuantity("s1", -3), ErrInvalidQuantity)

	state := store.Snapshot()
	assert.Equal(t, 2, state.Items[0].Qty(), "rejected update must leave quantity unchanged")
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	store := NewStore()
	require.ErrorIs(t, store.UpdateQuantity("nope", 2), ErrItemNotFound)
}

func TestClearIsIdempotentAndKeepsHistory(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))
	store.RecordPurchase([]models.CartItem{sampleItem("old", "Snare", "1.49")})

	store.Clear()
	first := store.Snapshot()
	store.Clear()
	second := store.Snapshot()

	assert.Empty(t, first.Items)
	assert.Equal(t, first.Items, second.Items)
	assert.Len(t, second.PurchaseHistory, 1)
}

func TestAddPackDoesNotExpandSamples(t *testing.T) {
	store := NewStore()
	pack := &models.PackItem{
		Type:        models.ItemTypePack,
		ID:          "p1",
		Name:        "Starter",
		Price:       decimal.RequireFromString("29.99"),
		SampleCount: 2,
		Samples: []models.SampleSummary{
			{ID: "s1", Name: "Kick", BPM: 140},
			{ID: "s2", Name: "Snare", BPM: 140},
		},
	}

	require.NoError(t, store.AddPack(pack))

	state := store.Snapshot()
	require.Len(t, state.Items, 1, "pack must stay a single cart entry")
	got, ok := state.Items[0].(*models.PackItem)
	require.True(t, ok)
	assert.Len(t, got.Samples, 2)
}

func TestSubscribersNotifiedOnEveryChange(t *testing.T) {
	store := NewStore()

	var states []models.CartState
	cancel := store.Subscribe(func(state models.CartState) {
		states = append(states, state)
	})

	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))
	require.NoError(t, store.UpdateQuantity("s1", 4))
	store.RemoveItem("s1")

	require.Len(t, states, 3)
	assert.Equal(t, 1, states[0].Items[0].Qty())
	assert.Equal(t, 4, states[1].Items[0].Qty())
	assert.Empty(t, states[2].Items)

	cancel()
	require.NoError(t, store.AddItem(sampleItem("s2", "Snare", "1.49")))
	assert.Len(t, states, 3, "cancelled subscriber must not be called")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore()
	item := sampleItem("s1", "Kick", "1.99")
	item.Tags = []string{"kick", "drums"}
	require.NoError(t, store.AddItem(item))

	state := store.Snapshot()
	got := state.Items[0].(*models.SampleItem)
	got.Tags[0] = "mutated"
	got.SetQty(99)

	fresh := store.Snapshot()
	kept := fresh.Items[0].(*models.SampleItem)
	assert.Equal(t, "kick", kept.Tags[0])
	assert.Equal(t, 1, kept.Qty())
}

func TestReplaceDropsInvalidAndDuplicateEntries(t *testing.T) {
	store := NewStore()
	store.Replace([]models.CartItem{
		sampleItem("s1", "Kick", "1.99"),
		sampleItem("s1", "Kick", "1.99"),
		&models.SampleItem{Type: models.ItemTypeSample, ID: "s2"}, // no name
		nil,
		sampleItem("s3", "Snare", "1.49"),
	})

	state := store.Snapshot()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "s1", state.Items[0].ItemID())
	assert.Equal(t, "s3", state.Items[1].ItemID())
}

func TestCartScenarioAddUpdateRemove(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))
	state := store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Qty())

	require.NoError(t, store.AddItem(sampleItem("s1", "Kick", "1.99")))
	state = store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Qty())

	require.ErrorIs(t, store.UpdateQuantity("s1", 0), ErrInvalidQuantity)
	state = store.Snapshot()
	assert.Equal(t, 2, state.Items[0].Qty())

	store.RemoveItem("s1")
	assert.Equal(t, 0, store.Len())
}
