package ranking

import (
	"time"

	"galmaetgil/internal/domain"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all-time"
)

// ParsePeriod maps a query value to a Period. Anything unrecognized is all-time.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly:
		return Period(s)
	}
	return PeriodAllTime
}

// Start returns the inclusive lower bound of the period ending at now.
// All-time has no bound and returns the zero time.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, -1, 0)
	}
	return time.Time{}
}

// FilterPeriod keeps the records dated within the period ending at now.
// Records dated after now are kept.
func FilterPeriod(records []domain.CompletionRecord, p Period, now time.Time) []domain.CompletionRecord {
	start := p.Start(now)
	if start.IsZero() {
		return records
	}
	out := make([]domain.CompletionRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}
