// Package ranking turns completion records into sorted leaderboards.
//
// Leaderboards are never stored. Each call recomputes them from the record
// snapshot it is handed, so concurrent writers only need to agree on that
// snapshot.
package ranking

import (
	"sort"
	"time"

	"galmaetgil/internal/catalog"
	"galmaetgil/internal/domain"
)

// Directory resolves display data the aggregator attaches but never computes.
type Directory interface {
	UserName(id domain.UserID) string
	// SpecialBadges returns the ranking-achievement badges granted to id.
	SpecialBadges(id domain.UserID) []domain.Badge
}

// Aggregator builds leaderboards over a course catalog.
type Aggregator struct {
	cat *catalog.Catalog
	dir Directory
}

func NewAggregator(cat *catalog.Catalog, dir Directory) *Aggregator {
	return &Aggregator{cat: cat, dir: dir}
}

type courseTally struct {
	userID   domain.UserID
	count    int
	best     int
	lastDate time.Time
}

// BuildCourseRanking ranks the users who completed courseID. Order is
// completion count descending, then best time ascending with untimed users
// last, then user id ascending. Ranks are strictly positional.
func (a *Aggregator) BuildCourseRanking(courseID domain.CourseID, records []domain.CompletionRecord) []RankingEntry {
	tallies := map[domain.UserID]*courseTally{}
	for _, r := range records {
		if r.CourseID != courseID {
			continue
		}
		t, ok := tallies[r.UserID]
		if !ok {
			t = &courseTally{userID: r.UserID}
			tallies[r.UserID] = t
		}
		t.count++
		if r.CompletionTimeSeconds > 0 && (t.best == 0 || r.CompletionTimeSeconds < t.best) {
			t.best = r.CompletionTimeSeconds
		}
		if r.Date.After(t.lastDate) {
			t.lastDate = r.Date
		}
	}

	sorted := make([]*courseTally, 0, len(tallies))
	for _, t := range tallies {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		x, y := sorted[i], sorted[j]
		if x.count != y.count {
			return x.count > y.count
		}
		if x.best != y.best {
			switch {
			case x.best == 0:
				return false
			case y.best == 0:
				return true
			}
			return x.best < y.best
		}
		return x.userID < y.userID
	})

	distance := a.cat.Distance(courseID)
	entries := make([]RankingEntry, 0, len(sorted))
	for i, t := range sorted {
		entries = append(entries, RankingEntry{
			Rank:                   i + 1,
			UserID:                 t.userID,
			UserName:               a.dir.UserName(t.userID),
			CompletionCount:        t.count,
			BestTimeSeconds:        t.best,
			BestTime:               FormatDuration(t.best),
			LastCompletionDate:     t.lastDate,
			TotalDistanceForCourse: float64(t.count) * distance,
			Badges:                 nonNil(a.dir.SpecialBadges(t.userID)),
		})
	}
	return entries
}

type globalTally struct {
	userID    domain.UserID
	count     int
	distance  float64
	perCourse map[domain.CourseID]int
	lastDate  time.Time
}

func (t *globalTally) favorite() domain.CourseID {
	var fav domain.CourseID
	best := 0
	for id, n := range t.perCourse {
		if n > best || (n == best && id < fav) {
			fav, best = id, n
		}
	}
	return fav
}

// BuildGlobalRanking ranks every user across all courses by total
// completions, then total distance, then user id.
func (a *Aggregator) BuildGlobalRanking(records []domain.CompletionRecord) []GlobalRankingEntry {
	tallies := map[domain.UserID]*globalTally{}
	for _, r := range records {
		t, ok := tallies[r.UserID]
		if !ok {
			t = &globalTally{userID: r.UserID, perCourse: map[domain.CourseID]int{}}
			tallies[r.UserID] = t
		}
		t.count++
		t.distance += a.cat.Distance(r.CourseID)
		t.perCourse[r.CourseID]++
		if r.Date.After(t.lastDate) {
			t.lastDate = r.Date
		}
	}

	sorted := make([]*globalTally, 0, len(tallies))
	for _, t := range tallies {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		x, y := sorted[i], sorted[j]
		if x.count != y.count {
			return x.count > y.count
		}
		if x.distance != y.distance {
			return x.distance > y.distance
		}
		return x.userID < y.userID
	})

	entries := make([]GlobalRankingEntry, 0, len(sorted))
	for i, t := range sorted {
		entries = append(entries, GlobalRankingEntry{
			Rank:               i + 1,
			UserID:             t.userID,
			UserName:           a.dir.UserName(t.userID),
			TotalCompletions:   t.count,
			TotalDistance:      t.distance,
			FavoriteCourseName: a.cat.CourseName(t.favorite()),
			SpecialBadges:      nonNil(a.dir.SpecialBadges(t.userID)),
			LastActivityDate:   t.lastDate,
		})
	}
	return entries
}

func nonNil(b []domain.Badge) []domain.Badge {
	if b == nil {
		return []domain.Badge{}
	}
	return b
}
