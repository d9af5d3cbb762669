package service

import (
	"math"
	"sort"
	"time"

	mrrdomain "github.com/railzwaylabs/mrrboard/internal/mrr/domain"
)

// AggregateMonthly builds the gapless month spine from the earliest window
// start through asOf and joins windows to buckets with a sweep line:
// difference arrays over month indexes for subscription count and revenue,
// and per-customer interval merging for the distinct customer count.
//
// A window is active in month m when start <= m+1mo (started by the end of
// m, inclusive of the next month's first day) and end is nil or end >= m.
// A window ending before it starts therefore covers zero months with no
// special casing.
func AggregateMonthly(windows []mrrdomain.NormalizedWindow, asOf time.Time) []mrrdomain.MonthBucket {
	buckets := []mrrdomain.MonthBucket{}
	if len(windows) == 0 {
		return buckets
	}

	first := monthFloor(windows[0].StartDate)
	for _, w := range windows[1:] {
		if m := monthFloor(w.StartDate); m.Before(first) {
			first = m
		}
	}
	last := monthFloor(asOf)
	if last.Before(first) {
		return buckets
	}

	n := monthsBetween(first, last) + 1
	subDiff := make([]int, n+1)
	amtDiff := make([]int64, n+1)
	custSpans := make(map[string][][2]int)

	for _, w := range windows {
		lo := firstActiveIndex(w.StartDate, first)
		if lo < 0 {
			lo = 0
		}
		hi := n - 1
		if w.EndDate != nil {
			hi = monthsBetween(first, monthFloor(*w.EndDate))
			if hi > n-1 {
				hi = n - 1
			}
		}
		if hi < lo {
			continue
		}
		subDiff[lo]++
		subDiff[hi+1]--
		amtDiff[lo] += w.MonthlyAmountCents
		amtDiff[hi+1] -= w.MonthlyAmountCents
		custSpans[w.CustomerID] = append(custSpans[w.CustomerID], [2]int{lo, hi})
	}

	custDiff := make([]int, n+1)
	for _, spans := range custSpans {
		for _, span := range mergeSpans(spans) {
			custDiff[span[0]]++
			custDiff[span[1]+1]--
		}
	}

	var subs, custs int
	var cents int64
	for i := 0; i < n; i++ {
		subs += subDiff[i]
		custs += custDiff[i]
		cents += amtDiff[i]
		month := addMonths(first, i)
		buckets = append(buckets, mrrdomain.MonthBucket{
			MonthStart:          month,
			Month:               month.Format("2006-01"),
			ActiveSubscriptions: subs,
			ActiveCustomers:     custs,
			MRRAmount:           round2(float64(cents) / 100),
		})
	}
	return buckets
}

// firstActiveIndex finds the first spine index satisfying start <= m+1mo.
// A start on the first day of a month already satisfies it for the
// preceding month.
func firstActiveIndex(start, first time.Time) int {
	m := monthFloor(start)
	if start.Equal(m) {
		m = addMonths(m, -1)
	}
	return monthsBetween(first, m)
}

func mergeSpans(spans [][2]int) [][2]int {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	merged := spans[:1]
	for _, s := range spans[1:] {
		top := &merged[len(merged)-1]
		if s[0] <= top[1]+1 {
			if s[1] > top[1] {
				top[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func monthFloor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func addMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// monthsBetween counts whole calendar months from a to b; both must be
// month starts. Negative when b precedes a.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
