package services

import (
	"context"
	"errors"

	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/logging"
)

const (
	MsgAlreadySeeded = "Database already seeded."
	MsgSeeded        = "Database seeded."
)

type SeedService struct {
	seeder Seeder
	path   string
	cache  *cache.Cache
}

func NewSeedService(seeder Seeder, path string, c *cache.Cache) *SeedService {
	return &SeedService{seeder: seeder, path: path, cache: c}
}

// Seed imports the seed file once. Later calls report that the catalog is
// already seeded and write nothing.
func (s *SeedService) Seed(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	seeded, err := s.seeder.IsSeeded(ctx)
	if err != nil {
		return "", &Error{Kind: KindSeedFailure, Message: "Failed to seed database: " + err.Error(), Err: err}
	}
	if seeded {
		log.Info("Seed skipped, catalog not empty")
		return MsgAlreadySeeded, nil
	}

	if err := s.seeder.SeedFromFile(ctx, s.path); err != nil {
		if errors.Is(err, seed.ErrFileNotFound) {
			log.Error("Seed file missing", "path", s.path)
			return "", &Error{Kind: KindNotFound, Message: "Seed data file not found at path '" + s.path + "'.", Err: err}
		}
		log.Error("Seed failed", "path", s.path, "error", err)
		return "", &Error{Kind: KindSeedFailure, Message: "Failed to seed database: " + err.Error(), Err: err}
	}

	s.cache.Clear()
	log.Info("Catalog seeded", "path", s.path)
	return MsgSeeded, nil
}
