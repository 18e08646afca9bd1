package di

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	auction "auction_backend/internal/feature/auction/domain/entity"
	authadapters "auction_backend/internal/feature/auth/adapters"
	auth "auction_backend/internal/feature/auth/domain/entity"
	catalogadapters "auction_backend/internal/feature/catalog/adapters"
	catalog "auction_backend/internal/feature/catalog/domain/entity"
	engagement "auction_backend/internal/feature/engagement/domain/entity"
	profile "auction_backend/internal/feature/profile/domain/entity"
)

// Models lists every table the application owns, parents before children.
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&profile.ContactProfile{},
		&authadapters.SessionRow{},
		&catalog.Category{},
		&catalog.Listing{},
		&auction.Bid{},
		&engagement.Comment{},
		&engagement.WatchlistEntry{},
	}
}

// Migrate creates or updates the schema.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("database schema migrated")
	return nil
}

// Seeder inserts categories by name.
type Seeder interface {
	Seed(ctx context.Context, names []string) error
}

// SeedCategories inserts the default category set.
func SeedCategories(ctx context.Context, s Seeder) error {
	if err := s.Seed(ctx, catalogadapters.DefaultCategories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.WithField("count", len(catalogadapters.DefaultCategories)).Info("categories seeded")
	return nil
}
