package repository

import (
	"context"

	invoicedomain "github.com/railzwaylabs/mrrboard/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

func (r *repo) ReplaceAll(ctx context.Context, db *gorm.DB, records []invoicedomain.InvoiceRecord) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM invoices`).Error; err != nil {
			return err
		}
		for i := range records {
			rec := &records[i]
			err := tx.Exec(
				`INSERT INTO invoices (
					invoice_id, customer_id, subscription_id, status, amount_due, amount_paid,
					currency, period_start, period_end, created_at, paid_at, hosted_invoice_url, extracted_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.InvoiceID,
				rec.CustomerID,
				rec.SubscriptionID,
				rec.Status,
				rec.AmountDue,
				rec.AmountPaid,
				rec.Currency,
				rec.PeriodStart,
				rec.PeriodEnd,
				rec.CreatedAt,
				rec.PaidAt,
				rec.HostedInvoiceURL,
				rec.ExtractedAt,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) CountBySubscription(ctx context.Context, db *gorm.DB, subscriptionID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM invoices WHERE subscription_id = ?`,
		subscriptionID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
