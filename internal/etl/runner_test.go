package etl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	invoicerepo "github.com/railzwaylabs/mrrboard/internal/invoice/repository"
	"github.com/railzwaylabs/mrrboard/internal/migration"
	subscriptiondomain "github.com/railzwaylabs/mrrboard/internal/subscription/domain"
	subscriptionrepo "github.com/railzwaylabs/mrrboard/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.RunMigrations(conn))
	return conn
}

func TestRunnerExtractsAndLoads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/subscriptions":
			fmt.Fprint(w, `{
				"data": [
					{"id":"sub_1","status":"active","customer":{"id":"cus_1","email":"a@b.c","name":"A"},
					 "created":1704067200,"currency":"usd",
					 "items":{"data":[{"quantity":1,"price":{"id":"price_1","product":"prod_1","unit_amount":2900,
					 "recurring":{"interval":"month","interval_count":1}}}]}},
					{"id":"sub_2","status":"canceled","customer":"cus_2","created":1704067200,
					 "canceled_at":1708387200,"ended_at":1708387200}
				],
				"has_more": false
			}`)
		case "/v1/invoices":
			fmt.Fprint(w, `{
				"data": [
					{"id":"in_1","customer":"cus_1","subscription":"sub_1","status":"paid",
					 "amount_due":2900,"amount_paid":2900,"created":1704067200,
					 "status_transitions":{"paid_at":1704153600}}
				],
				"has_more": false
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	db := newTestDB(t)
	runner, err := NewRunner(RunnerParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.SystemClock{},
		Cfg: config.Config{
			Stripe: config.StripeConfig{APIKey: "sk_test_x", BaseURL: srv.URL, PageSize: 100},
		},
		SubRepo: subscriptionrepo.Provide(),
		InvRepo: invoicerepo.Provide(),
	})
	require.NoError(t, err)

	ctx := clock.WithFixedNow(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, runner.Run(ctx))

	records, err := subscriptionrepo.Provide().List(ctx, db, subscriptiondomain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "cus_1", records[0].CustomerID)
	require.NotNil(t, records[0].PlanAmount)
	assert.Equal(t, int64(2900), *records[0].PlanAmount)
	require.NotNil(t, records[1].EndedAt)

	count, err := invoicerepo.Provide().CountBySubscription(ctx, db, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewRunnerRequiresAPIKey(t *testing.T) {
	_, err := NewRunner(RunnerParam{
		Log:     zap.NewNop(),
		Clock:   clock.SystemClock{},
		Cfg:     config.Config{},
		SubRepo: subscriptionrepo.Provide(),
		InvRepo: invoicerepo.Provide(),
	})
	require.Error(t, err)
}
