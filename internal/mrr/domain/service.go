package domain

import (
	"context"
	"time"
)

type SeriesRequest struct {
	// AsOf caps the month spine; zero means the clock's now.
	AsOf time.Time
}

type Service interface {
	MonthlySeries(ctx context.Context, req SeriesRequest) ([]MonthBucket, error)
}
