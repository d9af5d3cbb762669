package domain

import (
	"context"

	"gorm.io/gorm"
)

type ListRequest struct {
	Status string
	Limit  int
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]SubscriptionRecord, error)
	// ReplaceAll atomically swaps the full extract snapshot.
	ReplaceAll(ctx context.Context, db *gorm.DB, records []SubscriptionRecord) error
	Insert(ctx context.Context, db *gorm.DB, record *SubscriptionRecord) error
}
