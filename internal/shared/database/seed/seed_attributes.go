package seed

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/sedirimou/Gameva-sub001/internal/attribute"
)

// SeedAttributes installs the filter facets the storefront ships with.
func SeedAttributes(db *sql.DB) error {
	ctx := context.Background()
	repo := attribute.NewRepository(db)

	facets := map[attribute.Kind][]string{
		attribute.KindPlatform: {"Steam", "Epic Games", "GOG", "PlayStation", "Xbox", "Nintendo"},
		attribute.KindRegion:   {"Global", "EU", "NA", "ASIA"},
		attribute.KindGenre:    {"Action", "RPG", "Strategy", "Indie", "Sports", "Simulation"},
	}

	for kind, names := range facets {
		for _, name := range names {
			slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
			if _, err := repo.Create(ctx, string(kind), name, slug); err != nil {
				log.Println("skip seed attribute:", err)
				continue
			}
		}
	}

	return nil
}
