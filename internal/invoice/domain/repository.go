package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ReplaceAll(ctx context.Context, db *gorm.DB, records []InvoiceRecord) error
	CountBySubscription(ctx context.Context, db *gorm.DB, subscriptionID string) (int64, error)
}
