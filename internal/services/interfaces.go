package services

import "context"

// Seeder imports the initial catalog.
// Use this interface when you only need the idempotent seed step.
type Seeder interface {
	IsSeeded(ctx context.Context) (bool, error)
	SeedFromFile(ctx context.Context, path string) error
}
