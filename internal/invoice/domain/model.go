package domain

import "time"

// InvoiceRecord is one extracted invoice row. Invoices are loaded next to
// subscriptions for reconciliation; the MRR series never reads them.
type InvoiceRecord struct {
	InvoiceID        string     `gorm:"column:invoice_id;primaryKey" json:"invoice_id"`
	CustomerID       string     `gorm:"column:customer_id" json:"customer_id"`
	SubscriptionID   *string    `gorm:"column:subscription_id" json:"subscription_id,omitempty"`
	Status           *string    `gorm:"column:status" json:"status,omitempty"`
	AmountDue        *int64     `gorm:"column:amount_due" json:"amount_due,omitempty"`
	AmountPaid       *int64     `gorm:"column:amount_paid" json:"amount_paid,omitempty"`
	Currency         *string    `gorm:"column:currency" json:"currency,omitempty"`
	PeriodStart      *time.Time `gorm:"column:period_start" json:"period_start,omitempty"`
	PeriodEnd        *time.Time `gorm:"column:period_end" json:"period_end,omitempty"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	PaidAt           *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	HostedInvoiceURL *string    `gorm:"column:hosted_invoice_url" json:"hosted_invoice_url,omitempty"`
	ExtractedAt      time.Time  `gorm:"column:extracted_at" json:"extracted_at"`
}

func (InvoiceRecord) TableName() string {
	return "invoices"
}
