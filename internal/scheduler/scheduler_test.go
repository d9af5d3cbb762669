package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/config"
	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notifyingService struct {
	calls chan struct{}
	err   error
}

func (s *notifyingService) MonthlySeries(ctx context.Context, req mrrdomain.SeriesRequest) ([]mrrdomain.MonthBucket, error) {
	select {
	case s.calls <- struct{}{}:
	default:
	}
	if s.err != nil {
		return nil, s.err
	}
	return []mrrdomain.MonthBucket{}, nil
}

func newRefresher(svc mrrdomain.Service, cfg config.SchedulerConfig) *Refresher {
	return NewRefresher(RefresherParam{
		Log:    zap.NewNop(),
		MRRSvc: svc,
		Cfg:    config.Config{Scheduler: cfg},
	})
}

func TestRefresherRunsImmediatelyOnStart(t *testing.T) {
	svc := &notifyingService{calls: make(chan struct{}, 1)}
	r := newRefresher(svc, config.SchedulerConfig{Enabled: true, RefreshInterval: time.Hour})
	r.Start()
	defer r.Stop()

	select {
	case <-svc.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an initial refresh on start")
	}
}

func TestRefresherDisabled(t *testing.T) {
	svc := &notifyingService{calls: make(chan struct{}, 1)}
	r := newRefresher(svc, config.SchedulerConfig{Enabled: false, RefreshInterval: time.Hour})
	r.Start()
	r.Stop() // must be a no-op without a running loop

	select {
	case <-svc.calls:
		t.Fatal("disabled refresher must not touch the service")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRefresherSurvivesServiceErrors(t *testing.T) {
	svc := &notifyingService{calls: make(chan struct{}, 2), err: errors.New("source down")}
	r := newRefresher(svc, config.SchedulerConfig{Enabled: true, RefreshInterval: 10 * time.Millisecond})
	r.Start()
	defer r.Stop()

	// The loop keeps ticking after a failed refresh.
	for i := 0; i < 2; i++ {
		select {
		case <-svc.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh loop stalled after error")
		}
	}
	require.NotNil(t, r.done)
}
