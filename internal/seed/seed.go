// Package seed writes a deterministic synthetic subscription portfolio so
// the dashboard works without a billing-provider account.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type plan struct {
	priceID  string
	amount   int64
	interval string
}

var catalog = []plan{
	{priceID: "price_starter_monthly", amount: 2900, interval: subscriptiondomain.PlanIntervalMonth},
	{priceID: "price_growth_monthly", amount: 9900, interval: subscriptiondomain.PlanIntervalMonth},
	{priceID: "price_scale_monthly", amount: 29900, interval: subscriptiondomain.PlanIntervalMonth},
	{priceID: "price_growth_annual", amount: 79000, interval: subscriptiondomain.PlanIntervalYear},
}

type Seeder struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  subscriptiondomain.Repository
	cfg   config.SeedConfig
}

type SeederParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  subscriptiondomain.Repository
	Cfg   config.Config
}

func NewSeeder(p SeederParam) *Seeder {
	return &Seeder{
		db:    p.DB,
		log:   p.Log.Named("seed"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
		cfg:   p.Cfg.Seed,
	}
}

// Run replaces the snapshot with cfg.Customers synthetic subscriptions:
// starts spread over the trailing 18 months, roughly 15% canceled, 5%
// past_due, 5% scheduled to cancel at period end.
func (s *Seeder) Run(ctx context.Context) error {
	now := s.clock.Now(ctx)
	rng := rand.New(rand.NewSource(s.cfg.RandSeed))

	records := make([]subscriptiondomain.SubscriptionRecord, 0, s.cfg.Customers)
	for i := 0; i < s.cfg.Customers; i++ {
		records = append(records, s.synthesize(rng, now, i))
	}

	if err := s.repo.ReplaceAll(ctx, s.db, records); err != nil {
		return fmt.Errorf("seed subscriptions: %w", err)
	}
	s.log.Info("synthetic subscriptions seeded", zap.Int("count", len(records)))
	return nil
}

func (s *Seeder) synthesize(rng *rand.Rand, now time.Time, i int) subscriptiondomain.SubscriptionRecord {
	p := catalog[rng.Intn(len(catalog))]
	createdAt := now.AddDate(0, 0, -rng.Intn(18*30)).UTC()
	quantity := int64(1 + rng.Intn(3))
	intervalCount := int64(1)
	currency := "usd"
	productID := "prod_mrrboard_demo"
	email := fmt.Sprintf("customer%d@example.com", i+1)
	name := fmt.Sprintf("Customer %d", i+1)

	rec := subscriptiondomain.SubscriptionRecord{
		SubscriptionID:    "sub_" + s.genID.Generate().String(),
		CustomerID:        "cus_" + s.genID.Generate().String(),
		CustomerEmail:     &email,
		CustomerName:      &name,
		Status:            subscriptiondomain.SubscriptionStatusActive,
		PriceID:           &p.priceID,
		ProductID:         &productID,
		PlanAmount:        &p.amount,
		PlanInterval:      &p.interval,
		PlanIntervalCount: &intervalCount,
		Currency:          &currency,
		Quantity:          &quantity,
		CreatedAt:         &createdAt,
		ExtractedAt:       now,
	}

	periodEnd := nextPeriodEnd(createdAt, p.interval, now)
	rec.CurrentPeriodEnd = &periodEnd

	switch roll := rng.Float64(); {
	case roll < 0.15:
		rec.Status = subscriptiondomain.SubscriptionStatusCanceled
		lived := rng.Intn(12*30) + 15
		canceledAt := createdAt.AddDate(0, 0, lived)
		if canceledAt.After(now) {
			canceledAt = now
		}
		rec.CanceledAt = &canceledAt
		rec.EndedAt = &canceledAt
	case roll < 0.20:
		rec.Status = subscriptiondomain.SubscriptionStatusPastDue
	case roll < 0.25:
		rec.CancelAtPeriodEnd = true
	}

	return rec
}

// nextPeriodEnd walks billing periods forward from the start date until the
// first boundary on or after now.
func nextPeriodEnd(createdAt time.Time, interval string, now time.Time) time.Time {
	months := 1
	if interval == subscriptiondomain.PlanIntervalYear {
		months = 12
	}
	end := createdAt.AddDate(0, months, 0)
	for end.Before(now) {
		end = end.AddDate(0, months, 0)
	}
	return end
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

var Module = fx.Module("seed",
	fx.Provide(NewSeeder),
)
