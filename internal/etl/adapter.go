package etl

import (
	"time"

	"github.com/railzwaylabs/mrrboard/internal/etl/stripeclient"
	invoicedomain "github.com/railzwaylabs/mrrboard/internal/invoice/domain"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
)

// The adapter is the only place that knows how loose the provider payloads
// are. Everything past here works with strict records: optional price,
// missing recurring block, unexpanded customer, and epoch-second
// timestamps are all resolved at this boundary.

func SubscriptionToRecord(sub stripeclient.Subscription, extractedAt time.Time) subscriptiondomain.SubscriptionRecord {
	rec := subscriptiondomain.SubscriptionRecord{
		SubscriptionID:     sub.ID,
		Status:             subscriptiondomain.SubscriptionStatus(sub.Status),
		Currency:           sub.Currency,
		CreatedAt:          epochTime(sub.Created),
		CurrentPeriodStart: epochTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:   epochTime(sub.CurrentPeriodEnd),
		CanceledAt:         epochTime(sub.CanceledAt),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		EndedAt:            epochTime(sub.EndedAt),
		TrialStart:         epochTime(sub.TrialStart),
		TrialEnd:           epochTime(sub.TrialEnd),
		ExtractedAt:        extractedAt,
	}

	if sub.Customer != nil {
		rec.CustomerID = sub.Customer.ID
		rec.CustomerEmail = sub.Customer.Email
		rec.CustomerName = sub.Customer.Name
	}

	if len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		rec.Quantity = item.Quantity
		if rec.Quantity == nil {
			one := int64(1)
			rec.Quantity = &one
		}
		if item.Price != nil {
			priceID := item.Price.ID
			rec.PriceID = &priceID
			rec.ProductID = item.Price.Product
			rec.PlanAmount = item.Price.UnitAmount
			if item.Price.Recurring != nil {
				interval := item.Price.Recurring.Interval
				rec.PlanInterval = &interval
				rec.PlanIntervalCount = item.Price.Recurring.IntervalCount
			}
		}
	}

	return rec
}

func InvoiceToRecord(inv stripeclient.Invoice, extractedAt time.Time) invoicedomain.InvoiceRecord {
	rec := invoicedomain.InvoiceRecord{
		InvoiceID:        inv.ID,
		SubscriptionID:   inv.Subscription,
		Status:           inv.Status,
		AmountDue:        inv.AmountDue,
		AmountPaid:       inv.AmountPaid,
		Currency:         inv.Currency,
		PeriodStart:      epochTime(inv.PeriodStart),
		PeriodEnd:        epochTime(inv.PeriodEnd),
		CreatedAt:        epochTime(inv.Created),
		PaidAt:           epochTime(inv.StatusTransitions.PaidAt),
		HostedInvoiceURL: inv.HostedInvoiceURL,
		ExtractedAt:      extractedAt,
	}
	if inv.Customer != nil {
		rec.CustomerID = *inv.Customer
	}
	return rec
}

func epochTime(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.Unix(*v, 0).UTC()
	return &t
}
