package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	"github.com/railzwaylabs/mrrboard/internal/migration"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	subscriptionrepo "github.com/railzwaylabs/mrrboard/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.RunMigrations(conn))
	return conn
}

func newTestSeeder(t *testing.T, db *gorm.DB, customers int) *Seeder {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewSeeder(SeederParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.SystemClock{},
		GenID: node,
		Repo:  subscriptionrepo.Provide(),
		Cfg: config.Config{
			Seed: config.SeedConfig{Customers: customers, RandSeed: 7},
		},
	})
}

func TestSeedWritesPortfolio(t *testing.T) {
	db := newTestDB(t)
	seeder := newTestSeeder(t, db, 30)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := clock.WithFixedNow(context.Background(), now)
	require.NoError(t, seeder.Run(ctx))

	records, err := subscriptionrepo.Provide().List(ctx, db, subscriptiondomain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, records, 30)

	for _, rec := range records {
		require.NotNil(t, rec.CreatedAt)
		assert.False(t, rec.CreatedAt.After(now))
		require.NotNil(t, rec.PlanAmount)
		require.NotNil(t, rec.Quantity)
		if rec.Status == subscriptiondomain.SubscriptionStatusCanceled {
			require.NotNil(t, rec.CanceledAt)
			assert.False(t, rec.CanceledAt.After(now))
		}
	}
}

func TestSynthesizeIsDeterministicPerSeed(t *testing.T) {
	db := newTestDB(t)
	seeder := newTestSeeder(t, db, 0)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		ra := seeder.synthesize(a, now, i)
		rb := seeder.synthesize(b, now, i)
		// IDs differ, the billing shape does not.
		assert.Equal(t, ra.Status, rb.Status)
		assert.Equal(t, *ra.PlanAmount, *rb.PlanAmount)
		assert.Equal(t, *ra.Quantity, *rb.Quantity)
		assert.Equal(t, *ra.PlanInterval, *rb.PlanInterval)
		assert.True(t, ra.CreatedAt.Equal(*rb.CreatedAt))
	}
}

func TestNextPeriodEnd(t *testing.T) {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	end := nextPeriodEnd(created, subscriptiondomain.PlanIntervalMonth, now)
	assert.Equal(t, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), end)

	end = nextPeriodEnd(created, subscriptiondomain.PlanIntervalYear, now)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), end)
}
