package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galmaetgil/internal/catalog"
	"galmaetgil/internal/domain"
)

type fakeDirectory struct {
	names   map[domain.UserID]string
	special map[domain.UserID][]domain.Badge
}

func (d fakeDirectory) UserName(id domain.UserID) string { return d.names[id] }

func (d fakeDirectory) SpecialBadges(id domain.UserID) []domain.Badge { return d.special[id] }

func newAggregator() *Aggregator {
	return NewAggregator(catalog.Default(), fakeDirectory{
		names: map[domain.UserID]string{1: "갈맷길러버", 2: "부산트래커", 4: "갈맷길킹"},
		special: map[domain.UserID][]domain.Badge{
			4: {{ID: 13, Name: "월간 챔피언"}, {ID: 16, Name: "스피드러너"}},
		},
	})
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// runs returns n records for user on course, the last one timed and dated lastDay.
func runs(user domain.UserID, course domain.CourseID, n, seconds, lastDay int) []domain.CompletionRecord {
	out := make([]domain.CompletionRecord, 0, n)
	for i := 1; i <= n; i++ {
		r := domain.CompletionRecord{UserID: user, CourseID: course, Date: day(lastDay - (n - i)), CumulativeCount: i}
		if i == n {
			r.CompletionTimeSeconds = seconds
		}
		out = append(out, r)
	}
	return out
}

func concat(sets ...[]domain.CompletionRecord) []domain.CompletionRecord {
	var out []domain.CompletionRecord
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func TestBuildCourseRanking_OrdersByCompletionCount(t *testing.T) {
	a := newAggregator()
	records := concat(
		runs(2, 1, 12, 10335, 19),
		runs(4, 1, 22, 9502, 17),
		runs(1, 1, 15, 9930, 20),
		runs(1, 2, 10, 12015, 15),
	)

	got := a.BuildCourseRanking(1, records)

	require.Len(t, got, 3)
	assert.Equal(t, []domain.UserID{4, 1, 2}, []domain.UserID{got[0].UserID, got[1].UserID, got[2].UserID})
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
	assert.Equal(t, 605.0, got[0].TotalDistanceForCourse)
	assert.Equal(t, 412.5, got[1].TotalDistanceForCourse)
	assert.Equal(t, 330.0, got[2].TotalDistanceForCourse)
	assert.Equal(t, "02:38:22", got[0].BestTime)
	assert.Equal(t, day(17), got[0].LastCompletionDate)
	assert.Equal(t, "갈맷길킹", got[0].UserName)
	assert.Len(t, got[0].Badges, 2)
	assert.NotNil(t, got[1].Badges)
}

func TestBuildCourseRanking_Empty(t *testing.T) {
	got := newAggregator().BuildCourseRanking(1, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildCourseRanking_OtherCourseOnly(t *testing.T) {
	got := newAggregator().BuildCourseRanking(3, runs(1, 1, 2, 100, 10))
	assert.Empty(t, got)
}

func TestBuildCourseRanking_EqualCountFasterWins(t *testing.T) {
	records := concat(runs(1, 1, 3, 9000, 10), runs(2, 1, 3, 8000, 10))

	got := newAggregator().BuildCourseRanking(1, records)

	assert.Equal(t, domain.UserID(2), got[0].UserID)
	assert.Equal(t, domain.UserID(1), got[1].UserID)
}

func TestBuildCourseRanking_EqualCountAndTimeLowerIDWins(t *testing.T) {
	records := concat(runs(9, 1, 2, 9000, 10), runs(3, 1, 2, 9000, 11))

	got := newAggregator().BuildCourseRanking(1, records)

	assert.Equal(t, domain.UserID(3), got[0].UserID)
	assert.Equal(t, 2, got[1].Rank)
}

func TestBuildCourseRanking_UntimedSortsLast(t *testing.T) {
	records := concat(runs(1, 1, 2, 0, 10), runs(2, 1, 2, 20000, 10))

	got := newAggregator().BuildCourseRanking(1, records)

	assert.Equal(t, domain.UserID(2), got[0].UserID)
	assert.Equal(t, 0, got[1].BestTimeSeconds)
	assert.Equal(t, "", got[1].BestTime)
}

func TestBuildCourseRanking_BestTimeIsMinimum(t *testing.T) {
	records := []domain.CompletionRecord{
		{UserID: 1, CourseID: 1, CompletionTimeSeconds: 9000, Date: day(1)},
		{UserID: 1, CourseID: 1, CompletionTimeSeconds: 8500, Date: day(3)},
		{UserID: 1, CourseID: 1, CompletionTimeSeconds: 9900, Date: day(2)},
	}

	got := newAggregator().BuildCourseRanking(1, records)

	require.Len(t, got, 1)
	assert.Equal(t, 8500, got[0].BestTimeSeconds)
	assert.Equal(t, day(3), got[0].LastCompletionDate)
}

func TestBuildCourseRanking_UnknownCourseHasZeroDistance(t *testing.T) {
	got := newAggregator().BuildCourseRanking(77, runs(1, 77, 4, 100, 10))
	require.Len(t, got, 1)
	assert.Zero(t, got[0].TotalDistanceForCourse)
}

func TestBuildCourseRanking_RanksContiguous(t *testing.T) {
	var records []domain.CompletionRecord
	for u := domain.UserID(1); u <= 25; u++ {
		records = append(records, runs(u, 2, int(u%4)+1, int(u%3)*1000, 20)...)
	}

	got := newAggregator().BuildCourseRanking(2, records)

	require.Len(t, got, 25)
	for i, e := range got {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestBuildGlobalRanking(t *testing.T) {
	a := newAggregator()
	records := concat(
		runs(1, 1, 3, 9930, 20),
		runs(1, 2, 3, 12015, 21),
		runs(2, 3, 6, 20000, 10),
		runs(4, 1, 2, 9502, 25),
	)

	got := a.BuildGlobalRanking(records)

	require.Len(t, got, 3)
	// 1 and 2 tie on six runs; 2 walked further on course 3.
	assert.Equal(t, domain.UserID(2), got[0].UserID)
	assert.Equal(t, domain.UserID(1), got[1].UserID)
	assert.Equal(t, domain.UserID(4), got[2].UserID)
	assert.InDelta(t, 252.0, got[0].TotalDistance, 1e-9)
	assert.InDelta(t, 152.7, got[1].TotalDistance, 1e-9)
	assert.Equal(t, "3코스", got[0].FavoriteCourseName)
	assert.Equal(t, "1코스", got[1].FavoriteCourseName, "tie on count picks the lowest course id")
	assert.Equal(t, day(21), got[1].LastActivityDate)
	assert.Len(t, got[2].SpecialBadges, 2)
	assert.NotNil(t, got[0].SpecialBadges)
	for i, e := range got {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestBuildGlobalRanking_EqualTotalsLowerIDWins(t *testing.T) {
	records := concat(runs(5, 1, 2, 0, 10), runs(3, 1, 2, 0, 10))

	got := newAggregator().BuildGlobalRanking(records)

	assert.Equal(t, domain.UserID(3), got[0].UserID)
	assert.Equal(t, domain.UserID(5), got[1].UserID)
}

func TestBuildGlobalRanking_Empty(t *testing.T) {
	got := newAggregator().BuildGlobalRanking([]domain.CompletionRecord{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
