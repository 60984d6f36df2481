package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"galmaetgil/internal/domain"
)

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodWeekly, ParsePeriod("weekly"))
	assert.Equal(t, PeriodMonthly, ParsePeriod("monthly"))
	assert.Equal(t, PeriodAllTime, ParsePeriod("all-time"))
	assert.Equal(t, PeriodAllTime, ParsePeriod(""))
	assert.Equal(t, PeriodAllTime, ParsePeriod("yearly"))
}

func TestFilterPeriod(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	records := []domain.CompletionRecord{
		{UserID: 1, Date: now.AddDate(0, 0, -1)},
		{UserID: 2, Date: now.AddDate(0, 0, -7)},
		{UserID: 3, Date: now.AddDate(0, 0, -8)},
		{UserID: 4, Date: now.AddDate(0, -2, 0)},
	}

	assert.Len(t, FilterPeriod(records, PeriodWeekly, now), 2)
	assert.Len(t, FilterPeriod(records, PeriodMonthly, now), 3)
	assert.Len(t, FilterPeriod(records, PeriodAllTime, now), 4)
}
