package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var sampleSeeds = []models.Sample{
	{
		ID:       "smp-kick-808",
		Name:     "808 Kick",
		Artist:   "Lowend Theory",
		Genre:    "trap",
		BPM:      140,
		Key:      "C",
		Duration: 1.2,
		Price:    price("1.99"),
		Tags:     "kick,808,drums",
	},
	{
		ID:       "smp-snare-clap",
		Name:     "Layered Snare Clap",
		Artist:   "Lowend Theory",
		Genre:    "trap",
		BPM:      140,
		Key:      "",
		Duration: 0.8,
		Price:    price("1.49"),
		Tags:     "snare,clap,drums",
	},
	{
		ID:       "smp-keys-lofi",
		Name:     "Dusty Rhodes Loop",
		Artist:   "Mellow Gold",
		Genre:    "lofi",
		BPM:      85,
		Key:      "Fm",
		Duration: 11.3,
		Price:    price("2.99"),
		Tags:     "keys,rhodes,loop",
	},
	{
		ID:       "smp-bass-reese",
		Name:     "Reese Bass Growl",
		Artist:   "Subsonic",
		Genre:    "dnb",
		BPM:      174,
		Key:      "F",
		Duration: 4.0,
		Price:    price("2.49"),
		Tags:     "bass,reese",
	},
	{
		ID:       "smp-vox-chop",
		Name:     "Chopped Vocal Phrase",
		Artist:   "Mellow Gold",
		Genre:    "house",
		BPM:      124,
		Key:      "Am",
		Duration: 7.7,
		Price:    price("3.49"),
		Tags:     "vocal,chop",
	},
}

var packSeeds = []struct {
	pack      models.Pack
	sampleIDs []string
}{
	{
		pack: models.Pack{
			ID:          "pck-trap-starter",
			Name:        "Trap Starter Pack",
			Artist:      "Lowend Theory",
			Description: "Foundational trap drums and 808s.",
			Genres:      "trap,hip-hop",
			Tags:        "drums,808",
			Price:       price("29.99"),
		},
		sampleIDs: []string{"smp-kick-808", "smp-snare-clap"},
	},
	{
		pack: models.Pack{
			ID:          "pck-lofi-textures",
			Name:        "Lofi Textures",
			Artist:      "Mellow Gold",
			Description: "Warm keys and vocal chops for laid-back beats.",
			Genres:      "lofi,house",
			Tags:        "keys,vocal",
			Price:       price("19.99"),
		},
		sampleIDs: []string{"smp-keys-lofi", "smp-vox-chop"},
	},
}

// Seed inserts the catalog fixtures; existing rows are left alone so
// the command can be re-run.
func Seed(db *gorm.DB) error {
	for i := range sampleSeeds {
		sample := sampleSeeds[i]
		if err := db.Where(models.Sample{ID: sample.ID}).FirstOrCreate(&sample).Error; err != nil {
			return fmt.Errorf("failed to seed sample %s: %w", sample.ID, err)
		}
	}

	for _, seed := range packSeeds {
		pack := seed.pack
		var samples []models.Sample
		if err := db.Where("id IN ?", seed.sampleIDs).Find(&samples).Error; err != nil {
			return fmt.Errorf("failed to load samples for pack %s: %w", pack.ID, err)
		}
		pack.Samples = samples
		if err := db.Where(models.Pack{ID: pack.ID}).FirstOrCreate(&pack).Error; err != nil {
			return fmt.Errorf("failed to seed pack %s: %w", pack.ID, err)
		}
	}

	return nil
}
