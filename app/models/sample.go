package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sample is a catalog entry for a single purchasable audio sample.
type Sample struct {
	ID         string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Artist     string          `gorm:"size:255" json:"artist,omitempty"`
	Genre      string          `gorm:"size:100;index" json:"genre,omitempty"`
	BPM        int             `gorm:"index" json:"bpm,omitempty"`
	Key        string          `gorm:"size:8;column:music_key" json:"key,omitempty"`
	Duration   float64         `json:"duration,omitempty"`
	Price      decimal.Decimal `gorm:"type:decimal(16,2);" json:"price"`
	CoverImage string          `gorm:"size:512" json:"coverImage,omitempty"`
	AudioURL   string          `gorm:"size:512" json:"audioUrl,omitempty"`
	Tags       string          `gorm:"size:512" json:"tags,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (s *Sample) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// TagList splits the comma-separated tag column.
func (s *Sample) TagList() []string {
	if s.Tags == "" {
		return nil
	}
	parts := strings.Split(s.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// CartItem builds the cart variant for this catalog sample.
func (s *Sample) CartItem(qty int) *SampleItem {
	return &SampleItem{
		Type:       ItemTypeSample,
		ID:         s.ID,
		Name:       s.Name,
		Price:      s.Price,
		Artist:     s.Artist,
		Genre:      s.Genre,
		BPM:        s.BPM,
		Key:        s.Key,
		Duration:   s.Duration,
		CoverImage: s.CoverImage,
		AudioURL:   s.AudioURL,
		Tags:       s.TagList(),
		Quantity:   qty,
	}
}

// Summary is the trimmed form carried inside a pack cart item.
func (s *Sample) Summary() SampleSummary {
	return SampleSummary{
		ID:   s.ID,
		Name: s.Name,
		BPM:  s.BPM,
		Key:  s.Key,
	}
}
