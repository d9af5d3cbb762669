package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  subscriptiondomain.Repository

	cache    *redis.Client
	cacheTTL time.Duration
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  subscriptiondomain.Repository
	Cache *redis.Client `optional:"true"`
	Cfg   config.Config
}

func NewService(p ServiceParam) mrrdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("mrr.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		cache:    p.Cache,
		cacheTTL: p.Cfg.Cache.TTL,
	}
}

// MonthlySeries recomputes the full series from the current snapshot. The
// redis cache is advisory: any cache failure falls through to recompute.
func (s *Service) MonthlySeries(ctx context.Context, req mrrdomain.SeriesRequest) ([]mrrdomain.MonthBucket, error) {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now(ctx)
	}
	asOf = asOf.UTC()

	key := cacheKey(asOf)
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached []mrrdomain.MonthBucket
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	records, err := s.repo.List(ctx, s.db, subscriptiondomain.ListRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mrrdomain.ErrSourceUnavailable, err)
	}

	windows := NormalizeAll(records, s.log)
	buckets := AggregateMonthly(windows, asOf)

	if s.cache != nil {
		if payload, err := json.Marshal(buckets); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.log.Warn("series cache write failed", zap.Error(err))
			}
		}
	}

	return buckets, nil
}

func cacheKey(asOf time.Time) string {
	return "mrr:series:" + asOf.Format("2006-01-02")
}
