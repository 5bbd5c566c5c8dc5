package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/entities"
)

type fakeSeeder struct {
	seeded   bool
	seedErr  error
	checkErr error
	calls    int
}

func (f *fakeSeeder) IsSeeded(context.Context) (bool, error) {
	return f.seeded, f.checkErr
}

func (f *fakeSeeder) SeedFromFile(context.Context, string) error {
	f.calls++
	if f.seedErr != nil {
		return f.seedErr
	}
	f.seeded = true
	return nil
}

func TestSeedService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds once", func(t *testing.T) {
		c := cache.New(0)
		c.Set(cache.KeyAuthorsAll, []AuthorSummary{}, 0)
		f := &fakeSeeder{}
		svc := NewSeedService(f, "seed.json", c)

		msg, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, MsgSeeded, msg)
		assert.Zero(t, c.Len())

		msg, err = svc.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, MsgAlreadySeeded, msg)
		assert.Equal(t, 1, f.calls)
	})

	t.Run("missing file", func(t *testing.T) {
		f := &fakeSeeder{seedErr: fmt.Errorf("%w: seed.json", seed.ErrFileNotFound)}
		_, err := NewSeedService(f, "seed.json", cache.New(0)).Seed(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "Seed data file not found at path 'seed.json'.", err.Error())
	})

	t.Run("other failure", func(t *testing.T) {
		f := &fakeSeeder{seedErr: errors.New("bad json")}
		_, err := NewSeedService(f, "seed.json", cache.New(0)).Seed(ctx)
		assert.ErrorIs(t, err, ErrSeedFailure)
		assert.Equal(t, "Failed to seed database: bad json", err.Error())
	})

	t.Run("check failure", func(t *testing.T) {
		f := &fakeSeeder{checkErr: errors.New("db down")}
		_, err := NewSeedService(f, "seed.json", cache.New(0)).Seed(ctx)
		assert.ErrorIs(t, err, ErrSeedFailure)
		assert.Zero(t, f.calls)
	})
}

func TestSeedService_SeedTwiceWritesNothing(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	svc := NewSeedService(env.seeder, "../../seed/seed-data.json", env.cache)

	msg, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, MsgSeeded, msg)

	var auditRows int64
	require.NoError(t, env.db.Model(&entities.AuditLog{}).Count(&auditRows).Error)

	msg, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, MsgAlreadySeeded, msg)

	var after int64
	require.NoError(t, env.db.Model(&entities.AuditLog{}).Count(&after).Error)
	assert.Equal(t, auditRows, after)

	all, err := env.authors.GetAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)
}
