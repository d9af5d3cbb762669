package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
)

const (
	PlanIntervalMonth = "month"
	PlanIntervalYear  = "year"
)

// SubscriptionRecord is one extracted subscription snapshot row. Billing
// metadata is nullable because the upstream extract carries whatever the
// provider returned; strictness is enforced downstream when windows are
// normalized.
type SubscriptionRecord struct {
	SubscriptionID     string             `gorm:"column:subscription_id;primaryKey" json:"subscription_id"`
	CustomerID         string             `gorm:"column:customer_id" json:"customer_id"`
	CustomerEmail      *string            `gorm:"column:customer_email" json:"customer_email,omitempty"`
	CustomerName       *string            `gorm:"column:customer_name" json:"customer_name,omitempty"`
	Status             SubscriptionStatus `gorm:"column:status" json:"status"`
	PriceID            *string            `gorm:"column:price_id" json:"price_id,omitempty"`
	ProductID          *string            `gorm:"column:product_id" json:"product_id,omitempty"`
	PlanAmount         *int64             `gorm:"column:plan_amount" json:"plan_amount,omitempty"`
	PlanInterval       *string            `gorm:"column:plan_interval" json:"plan_interval,omitempty"`
	PlanIntervalCount  *int64             `gorm:"column:plan_interval_count" json:"plan_interval_count,omitempty"`
	Currency           *string            `gorm:"column:currency" json:"currency,omitempty"`
	Quantity           *int64             `gorm:"column:quantity" json:"quantity,omitempty"`
	CreatedAt          *time.Time         `gorm:"column:created_at" json:"created_at,omitempty"`
	CurrentPeriodStart *time.Time         `gorm:"column:current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time         `gorm:"column:current_period_end" json:"current_period_end,omitempty"`
	CanceledAt         *time.Time         `gorm:"column:canceled_at" json:"canceled_at,omitempty"`
	CancelAtPeriodEnd  bool               `gorm:"column:cancel_at_period_end" json:"cancel_at_period_end"`
	EndedAt            *time.Time         `gorm:"column:ended_at" json:"ended_at,omitempty"`
	TrialStart         *time.Time         `gorm:"column:trial_start" json:"trial_start,omitempty"`
	TrialEnd           *time.Time         `gorm:"column:trial_end" json:"trial_end,omitempty"`
	ExtractedAt        time.Time          `gorm:"column:extracted_at" json:"extracted_at"`
}

func (SubscriptionRecord) TableName() string {
	return "subscriptions"
}
