package domain

import "time"

// NormalizedWindow is a subscription reduced to its active date range and
// monthly-equivalent revenue.
type NormalizedWindow struct {
	SubscriptionID     string
	CustomerID         string
	StartDate          time.Time
	EndDate            *time.Time // nil = still active
	MonthlyAmountCents int64
}

// MonthBucket is one point of the monthly series.
type MonthBucket struct {
	MonthStart          time.Time `json:"-"`
	Month               string    `json:"month"` // YYYY-MM
	ActiveSubscriptions int       `json:"active_subscriptions"`
	ActiveCustomers     int       `json:"active_customers"`
	MRRAmount           float64   `json:"mrr_amount"`
}
