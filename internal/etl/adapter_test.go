package etl

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/etl/stripeclient"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func TestSubscriptionToRecord(t *testing.T) {
	extractedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	sub := stripeclient.Subscription{
		ID: "sub_123",
		Customer: &stripeclient.Customer{
			ID:    "cus_123",
			Email: strPtr("jo@example.com"),
			Name:  strPtr("Jo"),
		},
		Status:            "canceled",
		Currency:          strPtr("usd"),
		Created:           int64Ptr(1704067200), // 2024-01-01T00:00:00Z
		CanceledAt:        int64Ptr(1708387200), // 2024-02-20T00:00:00Z
		CancelAtPeriodEnd: false,
	}
	sub.Items.Data = []stripeclient.SubscriptionItem{{
		Quantity: int64Ptr(2),
		Price: &stripeclient.Price{
			ID:         "price_1",
			Product:    strPtr("prod_1"),
			UnitAmount: int64Ptr(2900),
			Recurring: &stripeclient.Recurring{
				Interval:      "month",
				IntervalCount: int64Ptr(1),
			},
		},
	}}

	rec := SubscriptionToRecord(sub, extractedAt)

	assert.Equal(t, "sub_123", rec.SubscriptionID)
	assert.Equal(t, "cus_123", rec.CustomerID)
	assert.Equal(t, subscriptiondomain.SubscriptionStatusCanceled, rec.Status)
	require.NotNil(t, rec.PlanAmount)
	assert.Equal(t, int64(2900), *rec.PlanAmount)
	require.NotNil(t, rec.Quantity)
	assert.Equal(t, int64(2), *rec.Quantity)
	require.NotNil(t, rec.PlanInterval)
	assert.Equal(t, "month", *rec.PlanInterval)
	require.NotNil(t, rec.CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *rec.CreatedAt)
	require.NotNil(t, rec.CanceledAt)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), *rec.CanceledAt)
	assert.Equal(t, extractedAt, rec.ExtractedAt)
}

func TestSubscriptionToRecordSparsePayload(t *testing.T) {
	// No items, no customer expansion, no timestamps beyond created.
	sub := stripeclient.Subscription{
		ID:      "sub_sparse",
		Status:  "active",
		Created: int64Ptr(1704067200),
	}

	rec := SubscriptionToRecord(sub, time.Now().UTC())

	assert.Equal(t, "sub_sparse", rec.SubscriptionID)
	assert.Empty(t, rec.CustomerID)
	assert.Nil(t, rec.PlanAmount)
	assert.Nil(t, rec.PlanInterval)
	assert.Nil(t, rec.Quantity)
	assert.Nil(t, rec.EndedAt)
}

func TestSubscriptionToRecordDefaultsQuantity(t *testing.T) {
	sub := stripeclient.Subscription{ID: "sub_q", Status: "active"}
	sub.Items.Data = []stripeclient.SubscriptionItem{{
		Price: &stripeclient.Price{ID: "price_1", UnitAmount: int64Ptr(500)},
	}}

	rec := SubscriptionToRecord(sub, time.Now().UTC())
	require.NotNil(t, rec.Quantity)
	assert.Equal(t, int64(1), *rec.Quantity)
	// Price without a recurring block stays interval-less.
	assert.Nil(t, rec.PlanInterval)
}

func TestCustomerUnmarshalBothShapes(t *testing.T) {
	var expanded stripeclient.Customer
	require.NoError(t, json.Unmarshal([]byte(`{"id":"cus_1","email":"a@b.c","name":"A"}`), &expanded))
	assert.Equal(t, "cus_1", expanded.ID)
	require.NotNil(t, expanded.Email)
	assert.Equal(t, "a@b.c", *expanded.Email)

	var bare stripeclient.Customer
	require.NoError(t, json.Unmarshal([]byte(`"cus_2"`), &bare))
	assert.Equal(t, "cus_2", bare.ID)
	assert.Nil(t, bare.Email)
}

func TestInvoiceToRecord(t *testing.T) {
	extractedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	inv := stripeclient.Invoice{
		ID:           "in_1",
		Customer:     strPtr("cus_1"),
		Subscription: strPtr("sub_1"),
		Status:       strPtr("paid"),
		AmountDue:    int64Ptr(2900),
		AmountPaid:   int64Ptr(2900),
		Currency:     strPtr("usd"),
		Created:      int64Ptr(1704067200),
	}
	inv.StatusTransitions.PaidAt = int64Ptr(1704153600)

	rec := InvoiceToRecord(inv, extractedAt)

	assert.Equal(t, "in_1", rec.InvoiceID)
	assert.Equal(t, "cus_1", rec.CustomerID)
	require.NotNil(t, rec.SubscriptionID)
	assert.Equal(t, "sub_1", *rec.SubscriptionID)
	require.NotNil(t, rec.PaidAt)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *rec.PaidAt)
	assert.Equal(t, extractedAt, rec.ExtractedAt)
}
