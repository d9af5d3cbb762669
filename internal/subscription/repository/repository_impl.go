package repository

import (
	"context"

	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter subscriptiondomain.ListRequest) ([]subscriptiondomain.SubscriptionRecord, error) {
	var records []subscriptiondomain.SubscriptionRecord
	stmt := db.WithContext(ctx).Model(&subscriptiondomain.SubscriptionRecord{})

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	stmt = stmt.Order("created_at asc, subscription_id asc")

	if err := stmt.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ReplaceAll(ctx context.Context, db *gorm.DB, records []subscriptiondomain.SubscriptionRecord) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM subscriptions`).Error; err != nil {
			return err
		}
		for i := range records {
			if err := insert(ctx, tx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *subscriptiondomain.SubscriptionRecord) error {
	return insert(ctx, db, record)
}

func insert(ctx context.Context, db *gorm.DB, rec *subscriptiondomain.SubscriptionRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			subscription_id, customer_id, customer_email, customer_name, status,
			price_id, product_id, plan_amount, plan_interval, plan_interval_count,
			currency, quantity, created_at, current_period_start, current_period_end,
			canceled_at, cancel_at_period_end, ended_at, trial_start, trial_end, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SubscriptionID,
		rec.CustomerID,
		rec.CustomerEmail,
		rec.CustomerName,
		rec.Status,
		rec.PriceID,
		rec.ProductID,
		rec.PlanAmount,
		rec.PlanInterval,
		rec.PlanIntervalCount,
		rec.Currency,
		rec.Quantity,
		rec.CreatedAt,
		rec.CurrentPeriodStart,
		rec.CurrentPeriodEnd,
		rec.CanceledAt,
		rec.CancelAtPeriodEnd,
		rec.EndedAt,
		rec.TrialStart,
		rec.TrialEnd,
		rec.ExtractedAt,
	).Error
}
