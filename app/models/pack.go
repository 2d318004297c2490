package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pack is a bundle of audio samples sold as a single purchasable unit.
type Pack struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Artist      string          `gorm:"size:255" json:"artist,omitempty"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Genres      string          `gorm:"size:512" json:"genres,omitempty"`
	Tags        string          `gorm:"size:512" json:"tags,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);" json:"price"`
	CoverImage  string          `gorm:"size:512" json:"coverImage,omitempty"`
	Samples     []Sample        `gorm:"many2many:pack_samples;" json:"samples,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Pack) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Pack) GenreList() []string { return splitCSV(p.Genres) }
func (p *Pack) TagList() []string   { return splitCSV(p.Tags) }

// CartItem builds the cart variant for this pack. Packs are purchased as
// a unit: the contained samples become summaries, never their own cart
// entries.
func (p *Pack) CartItem(qty int) *PackItem {
	summaries := make([]SampleSummary, 0, len(p.Samples))
	for i := range p.Samples {
		summaries = append(summaries, p.Samples[i].Summary())
	}
	return &PackItem{
		Type:        ItemTypePack,
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Artist:      p.Artist,
		Description: p.Description,
		Genres:      p.GenreList(),
		Tags:        p.TagList(),
		SampleCount: len(p.Samples),
		Samples:     summaries,
		Quantity:    qty,
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
