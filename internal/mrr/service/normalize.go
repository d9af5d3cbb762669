package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"go.uber.org/zap"
)

func eligibleStatus(s subscriptiondomain.SubscriptionStatus) bool {
	switch s {
	case subscriptiondomain.SubscriptionStatusActive,
		subscriptiondomain.SubscriptionStatusPastDue,
		subscriptiondomain.SubscriptionStatusCanceled:
		return true
	}
	return false
}

// MonthlyAmountCents prorates one billing cycle to its monthly equivalent.
// Rounding is half-away-from-zero to integer cents.
func MonthlyAmountCents(planAmount, quantity int64, interval string, intervalCount int64) int64 {
	if intervalCount <= 0 {
		intervalCount = 1
	}
	total := float64(planAmount * quantity)
	switch interval {
	case subscriptiondomain.PlanIntervalYear:
		return int64(math.Round(total / (12 * float64(intervalCount))))
	case subscriptiondomain.PlanIntervalMonth:
		return int64(math.Round(total / float64(intervalCount)))
	default:
		// Unknown intervals are treated as already monthly.
		return planAmount * quantity
	}
}

// ResolveEndDate picks the date after which the subscription stops counting.
// A hard termination wins over a cancellation timestamp, which wins over a
// scheduled end-of-period cancellation.
func ResolveEndDate(rec subscriptiondomain.SubscriptionRecord) *time.Time {
	if rec.EndedAt != nil {
		d := dateOf(*rec.EndedAt)
		return &d
	}
	if rec.Status == subscriptiondomain.SubscriptionStatusCanceled && rec.CanceledAt != nil {
		d := dateOf(*rec.CanceledAt)
		return &d
	}
	if rec.CancelAtPeriodEnd && rec.CurrentPeriodEnd != nil {
		d := dateOf(*rec.CurrentPeriodEnd)
		return &d
	}
	return nil
}

// NormalizeRecord maps one subscription record to its window. It returns
// ErrIneligibleStatus for statuses outside the reporting set and
// ErrMalformedRecord when required billing fields are missing.
func NormalizeRecord(rec subscriptiondomain.SubscriptionRecord) (mrrdomain.NormalizedWindow, error) {
	if !eligibleStatus(rec.Status) {
		return mrrdomain.NormalizedWindow{}, mrrdomain.ErrIneligibleStatus
	}
	if rec.CreatedAt == nil {
		return mrrdomain.NormalizedWindow{}, fmt.Errorf("%w: missing created_at", mrrdomain.ErrMalformedRecord)
	}
	if rec.PlanAmount == nil {
		return mrrdomain.NormalizedWindow{}, fmt.Errorf("%w: missing plan_amount", mrrdomain.ErrMalformedRecord)
	}
	if rec.Quantity == nil {
		return mrrdomain.NormalizedWindow{}, fmt.Errorf("%w: missing quantity", mrrdomain.ErrMalformedRecord)
	}

	interval := ""
	if rec.PlanInterval != nil {
		interval = *rec.PlanInterval
	}
	intervalCount := int64(1)
	if rec.PlanIntervalCount != nil {
		intervalCount = *rec.PlanIntervalCount
	}

	return mrrdomain.NormalizedWindow{
		SubscriptionID:     rec.SubscriptionID,
		CustomerID:         rec.CustomerID,
		StartDate:          dateOf(*rec.CreatedAt),
		EndDate:            ResolveEndDate(rec),
		MonthlyAmountCents: MonthlyAmountCents(*rec.PlanAmount, *rec.Quantity, interval, intervalCount),
	}, nil
}

// NormalizeAll converts the full snapshot, silently dropping ineligible
// statuses and logging malformed records as warnings.
func NormalizeAll(records []subscriptiondomain.SubscriptionRecord, log *zap.Logger) []mrrdomain.NormalizedWindow {
	windows := make([]mrrdomain.NormalizedWindow, 0, len(records))
	for _, rec := range records {
		win, err := NormalizeRecord(rec)
		if err != nil {
			if !errors.Is(err, mrrdomain.ErrIneligibleStatus) && log != nil {
				log.Warn("excluding malformed subscription record",
					zap.String("subscription_id", rec.SubscriptionID),
					zap.Error(err),
				)
			}
			continue
		}
		windows = append(windows, win)
	}
	return windows
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
