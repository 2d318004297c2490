package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartItemPicksVariant(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ItemType
	}{
		{
			name: "clothes",
			json: `{"type":"clothes","id":"c1","color":"#80c670","garment":"hoodie","rotation":45,"decalPosition":[0.1,0.2,0.3]}`,
			want: ItemTypeClothes,
		},
		{
			name: "sample",
			json: `{"type":"sample","id":"s1","name":"Kick","price":"1.99","bpm":140,"tags":["kick","808"]}`,
			want: ItemTypeSample,
		},
		{
			name: "pack",
			json: `{"type":"pack","id":"p1","name":"Starter","price":"29.99","sampleCount":2,"samples":[{"id":"s1","name":"Kick","bpm":140,"key":"C"}]}`,
			want: ItemTypePack,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := DecodeCartItem([]byte(tc.json))
			require.NoError(t, err)
			assert.Equal(t, tc.want, item.Kind())
			require.NoError(t, item.Validate())
		})
	}
}

func TestDecodeCartItemUnknownType(t *testing.T) {
	_, err := DecodeCartItem([]byte(`{"type":"subscription","id":"x"}`))
	require.ErrorIs(t, err, ErrUnknownItemType)

	_, err = DecodeCartItem([]byte(`{"id":"x"}`))
	require.ErrorIs(t, err, ErrUnknownItemType)
}

func TestDecodeCartItemsRoundTrip(t *testing.T) {
	pos := [3]float64{0.1, -0.2, 0.33}
	items := []CartItem{
		&ClothesItem{
			Type:          ItemTypeClothes,
			ID:            "c1",
			Color:         "#2f2f2f",
			Decal:         "logo",
			Garment:       "shirt",
			DecalPosition: &pos,
			Rotation:      180,
			Ripples:       []Ripple{{ID: "r1", Position: [3]float64{0, 1, 0}}},
			Quantity:      2,
		},
		&SampleItem{
			Type:     ItemTypeSample,
			ID:       "s1",
			Name:     "Kick",
			Price:    decimal.RequireFromString("1.99"),
			Artist:   "Lowend Theory",
			Genre:    "trap",
			BPM:      140,
			Key:      "C",
			Duration: 1.2,
			Tags:     []string{"kick", "808"},
		},
		&PackItem{
			Type:        ItemTypePack,
			ID:          "p1",
			Name:        "Starter",
			Price:       decimal.RequireFromString("29.99"),
			Genres:      []string{"trap", "hip-hop"},
			SampleCount: 1,
			Samples:     []SampleSummary{{ID: "s1", Name: "Kick", BPM: 140, Key: "C"}},
		},
	}

	data, err := EncodeCartItems(items)
	require.NoError(t, err)

	decoded, err := DecodeCartItems(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(items))

	assert.Equal(t, items[0], decoded[0])
	assert.Equal(t, items[2].(*PackItem).Samples, decoded[2].(*PackItem).Samples)

	// decimals compare by value, not representation
	gotSample := decoded[1].(*SampleItem)
	wantSample := items[1].(*SampleItem)
	assert.True(t, wantSample.Price.Equal(gotSample.Price))
	gotSample.Price, wantSample.Price = decimal.Decimal{}, decimal.Decimal{}
	assert.Equal(t, wantSample, gotSample)
}

func TestDecodeCartItemsMalformedListFails(t *testing.T) {
	_, err := DecodeCartItems([]byte(`{"not":"a list"}`))
	require.Error(t, err)

	_, err = DecodeCartItems([]byte(`[{"type":"sample","id":"s1"},{"type":"nope"}]`))
	require.ErrorIs(t, err, ErrUnknownItemType)
}

func TestEncodeCartItemsNilIsEmptyList(t *testing.T) {
	data, err := EncodeCartItems(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestValidateRejectsCrossVariantTag(t *testing.T) {
	item := &SampleItem{Type: ItemTypeClothes, ID: "s1", Name: "Kick"}
	require.ErrorIs(t, item.Validate(), ErrUnknownItemType)
}

func TestValidateRotationBounds(t *testing.T) {
	item := &ClothesItem{Type: ItemTypeClothes, ID: "c1", Rotation: 420}
	require.Error(t, item.Validate())

	item.Rotation = 360
	require.NoError(t, item.Validate())
}

func TestValidateNegativePrice(t *testing.T) {
	item := &SampleItem{
		Type:  ItemTypeSample,
		ID:    "s1",
		Name:  "Kick",
		Price: decimal.RequireFromString("-0.01"),
	}
	require.Error(t, item.Validate())
}

func TestEffectiveQuantityDefaultsToOne(t *testing.T) {
	item := &PackItem{Type: ItemTypePack, ID: "p1", Name: "Starter"}
	assert.Equal(t, 1, item.Qty())

	item.SetQty(3)
	assert.Equal(t, 3, item.Qty())
}
