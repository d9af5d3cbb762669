package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	"github.com/railzwaylabs/mrrboard/internal/etl/stripeclient"
	invoicedomain "github.com/railzwaylabs/mrrboard/internal/invoice/domain"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runner runs one full extract-and-load: every subscription and invoice in
// the provider account replaces the local snapshot.
type Runner struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	client *stripeclient.Client

	subRepo subscriptiondomain.Repository
	invRepo invoicedomain.Repository
}

type RunnerParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Cfg     config.Config
	SubRepo subscriptiondomain.Repository
	InvRepo invoicedomain.Repository
}

func NewRunner(p RunnerParam) (*Runner, error) {
	if p.Cfg.Stripe.APIKey == "" {
		return nil, errors.New("stripe api key is required for etl")
	}
	return &Runner{
		db:      p.DB,
		log:     p.Log.Named("etl"),
		clock:   p.Clock,
		client:  stripeclient.New(p.Cfg.Stripe, p.Log),
		subRepo: p.SubRepo,
		invRepo: p.InvRepo,
	}, nil
}

func (r *Runner) Run(ctx context.Context) error {
	extractedAt := r.clock.Now(ctx)

	subs, err := r.client.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("extract subscriptions: %w", err)
	}

	records := make([]subscriptiondomain.SubscriptionRecord, 0, len(subs))
	for _, sub := range subs {
		records = append(records, SubscriptionToRecord(sub, extractedAt))
	}
	if err := r.subRepo.ReplaceAll(ctx, r.db, records); err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}
	r.log.Info("subscriptions loaded", zap.Int("count", len(records)))

	invoices, err := r.client.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("extract invoices: %w", err)
	}

	invRecords := make([]invoicedomain.InvoiceRecord, 0, len(invoices))
	for _, inv := range invoices {
		invRecords = append(invRecords, InvoiceToRecord(inv, extractedAt))
	}
	if err := r.invRepo.ReplaceAll(ctx, r.db, invRecords); err != nil {
		return fmt.Errorf("load invoices: %w", err)
	}
	r.log.Info("invoices loaded", zap.Int("count", len(invRecords)))

	return nil
}

var Module = fx.Module("etl",
	fx.Provide(NewRunner),
)
