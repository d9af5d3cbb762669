// Package scheduler keeps the series cache warm so dashboard reads stay
// cheap between extracts.
package scheduler

import (
	"context"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/config"
	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Refresher struct {
	log    *zap.Logger
	mrrSvc mrrdomain.Service
	cfg    config.SchedulerConfig

	cancel context.CancelFunc
	done   chan struct{}
}

type RefresherParam struct {
	fx.In

	Log    *zap.Logger
	MRRSvc mrrdomain.Service
	Cfg    config.Config
}

func NewRefresher(p RefresherParam) *Refresher {
	return &Refresher{
		log:    p.Log.Named("scheduler"),
		mrrSvc: p.MRRSvc,
		cfg:    p.Cfg.Scheduler,
	}
}

func (r *Refresher) Start() {
	if !r.cfg.Enabled || r.cfg.RefreshInterval <= 0 {
		r.log.Info("series refresh disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx)
}

func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	start := time.Now()
	buckets, err := r.mrrSvc.MonthlySeries(ctx, mrrdomain.SeriesRequest{})
	if err != nil {
		r.log.Warn("series refresh failed", zap.Error(err))
		return
	}
	r.log.Info("series refreshed",
		zap.Int("months", len(buckets)),
		zap.Duration("took", time.Since(start)),
	)
}

var Module = fx.Module("scheduler",
	fx.Provide(NewRefresher),
	fx.Invoke(func(lc fx.Lifecycle, r *Refresher) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				r.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				r.Stop()
				return nil
			},
		})
	}),
)
