package clock

import (
	"context"
	"time"
)

type fixedNowKey struct{}

// WithFixedNow pins the clock for the remainder of the request. Used to
// replay the series as of an arbitrary reporting date.
func WithFixedNow(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, fixedNowKey{}, t.UTC())
}

func fixedNowFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(fixedNowKey{}).(time.Time)
	return t, ok
}

type SystemClock struct{}

func (SystemClock) Now(ctx context.Context) time.Time {
	if t, ok := fixedNowFromContext(ctx); ok {
		return t
	}
	return time.Now().UTC()
}
