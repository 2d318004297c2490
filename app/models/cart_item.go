package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeClothes ItemType = "clothes"
	ItemTypeSample  ItemType = "sample"
	ItemTypePack    ItemType = "pack"
)

var ErrUnknownItemType = errors.New("unknown cart item type")

var validate = validator.New()

// CartItem is one purchasable entry in a cart: a custom clothing design,
// a single audio sample, or a sample pack. Exactly one variant per item,
// discriminated by the "type" JSON field.
type CartItem interface {
	ItemID() string
	Kind() ItemType
	// Qty returns the effective quantity: a missing or zero quantity
	// counts as 1.
	Qty() int
	SetQty(q int)
	Clone() CartItem
	Validate() error
}

// Ripple is a visual ripple effect placed on a garment.
type Ripple struct {
	ID       string     `json:"id" validate:"required"`
	Position [3]float64 `json:"position"`
}

// SampleSummary is the trimmed-down sample listing carried inside a pack.
type SampleSummary struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	BPM  int    `json:"bpm,omitempty"`
	Key  string `json:"key,omitempty"`
}

type ClothesItem struct {
	Type          ItemType    `json:"type"`
	ID            string      `json:"id" validate:"required"`
	Color         string      `json:"color,omitempty"`
	Decal         string      `json:"decal,omitempty"`
	Garment       string      `json:"garment,omitempty"`
	DecalPosition *[3]float64 `json:"decalPosition,omitempty"`
	Rotation      float64     `json:"rotation,omitempty" validate:"gte=0,lte=360"`
	Ripples       []Ripple    `json:"ripples,omitempty" validate:"dive"`
	Quantity      int         `json:"quantity,omitempty" validate:"gte=0"`
}

func (c *ClothesItem) ItemID() string { return c.ID }
func (c *ClothesItem) Kind() ItemType { return ItemTypeClothes }
func (c *ClothesItem) Qty() int       { return effectiveQty(c.Quantity) }
func (c *ClothesItem) SetQty(q int)   { c.Quantity = q }

func (c *ClothesItem) Clone() CartItem {
	cp := *c
	if c.DecalPosition != nil {
		pos := *c.DecalPosition
		cp.DecalPosition = &pos
	}
	if c.Ripples != nil {
		cp.Ripples = make([]Ripple, len(c.Ripples))
		copy(cp.Ripples, c.Ripples)
	}
	return &cp
}

func (c *ClothesItem) Validate() error {
	if c.Type != ItemTypeClothes {
		return fmt.Errorf("%w: %q", ErrUnknownItemType, c.Type)
	}
	return validate.Struct(c)
}

type SampleItem struct {
	Type       ItemType        `json:"type"`
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Artist     string          `json:"artist,omitempty"`
	Genre      string          `json:"genre,omitempty"`
	BPM        int             `json:"bpm,omitempty" validate:"gte=0"`
	Key        string          `json:"key,omitempty"`
	Duration   float64         `json:"duration,omitempty" validate:"gte=0"`
	CoverImage string          `json:"coverImage,omitempty"`
	AudioURL   string          `json:"audioUrl,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Quantity   int             `json:"quantity,omitempty" validate:"gte=0"`
}

func (s *SampleItem) ItemID() string { return s.ID }
func (s *SampleItem) Kind() ItemType { return ItemTypeSample }
func (s *SampleItem) Qty() int       { return effectiveQty(s.Quantity) }
func (s *SampleItem) SetQty(q int)   { s.Quantity = q }

func (s *SampleItem) Clone() CartItem {
	cp := *s
	if s.Tags != nil {
		cp.Tags = make([]string, len(s.Tags))
		copy(cp.Tags, s.Tags)
	}
	return &cp
}

func (s *SampleItem) Validate() error {
	if s.Type != ItemTypeSample {
		return fmt.Errorf("%w: %q", ErrUnknownItemType, s.Type)
	}
	if s.Price.IsNegative() {
		return errors.New("sample price must not be negative")
	}
	return validate.Struct(s)
}

type PackItem struct {
	Type        ItemType        `json:"type"`
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Artist      string          `json:"artist,omitempty"`
	Description string          `json:"description,omitempty"`
	Genres      []string        `json:"genres,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	SampleCount int             `json:"sampleCount" validate:"gte=0"`
	Samples     []SampleSummary `json:"samples,omitempty" validate:"dive"`
	Quantity    int             `json:"quantity,omitempty" validate:"gte=0"`
}

func (p *PackItem) ItemID() string { return p.ID }
func (p *PackItem) Kind() ItemType { return ItemTypePack }
func (p *PackItem) Qty() int       { return effectiveQty(p.Quantity) }
func (p *PackItem) SetQty(q int)   { p.Quantity = q }

func (p *PackItem) Clone() CartItem {
	cp := *p
	if p.Genres != nil {
		cp.Genres = make([]string, len(p.Genres))
		copy(cp.Genres, p.Genres)
	}
	if p.Tags != nil {
		cp.Tags = make([]string, len(p.Tags))
		copy(cp.Tags, p.Tags)
	}
	if p.Samples != nil {
		cp.Samples = make([]SampleSummary, len(p.Samples))
		copy(cp.Samples, p.Samples)
	}
	return &cp
}

func (p *PackItem) Validate() error {
	if p.Type != ItemTypePack {
		return fmt.Errorf("%w: %q", ErrUnknownItemType, p.Type)
	}
	if p.Price.IsNegative() {
		return errors.New("pack price must not be negative")
	}
	return validate.Struct(p)
}

func effectiveQty(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// CartState is a point-in-time view of a cart handed to readers and
// subscribers. Slices are deep copies; mutating them does not touch the
// store.
type CartState struct {
	Items           []CartItem `json:"items"`
	PurchaseHistory []CartItem `json:"purchaseHistory"`
}

// DecodeCartItem picks the variant from the "type" field and unmarshals
// into it.
func DecodeCartItem(data []byte) (CartItem, error) {
	var probe struct {
		Type ItemType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode cart item: %w", err)
	}

	var item CartItem
	switch probe.Type {
	case ItemTypeClothes:
		item = &ClothesItem{}
	case ItemTypeSample:
		item = &SampleItem{}
	case ItemTypePack:
		item = &PackItem{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItemType, probe.Type)
	}

	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("decode cart item: %w", err)
	}
	return item, nil
}

// DecodeCartItems decodes a serialized item list. Any malformed element
// fails the whole list; callers treating persistence as a best-effort
// cache discard on error.
func DecodeCartItems(data []byte) ([]CartItem, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}

	items := make([]CartItem, 0, len(raws))
	for _, raw := range raws {
		item, err := DecodeCartItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func EncodeCartItems(items []CartItem) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}
