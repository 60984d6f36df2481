// Package progress decides which completion badges a user has newly earned.
//
// UserProgress values are snapshots. Every evaluation returns a fresh snapshot
// and leaves its input untouched, so callers can keep the previous state
// around for comparison or rollback.
package progress

import (
	"encoding/json"
	"sort"

	"galmaetgil/internal/domain"
)

// UserProgress is one user's cumulative achievement state.
type UserProgress struct {
	UserID             domain.UserID
	CompletedCourseIDs map[domain.CourseID]struct{}
	TotalDistanceKm    float64
	ReviewCount        int
	AwardedBadgeIDs    map[domain.BadgeID]struct{}
}

// New returns an empty progress record for userID.
func New(userID domain.UserID) UserProgress {
	return UserProgress{
		UserID:             userID,
		CompletedCourseIDs: make(map[domain.CourseID]struct{}),
		AwardedBadgeIDs:    make(map[domain.BadgeID]struct{}),
	}
}

// Restore builds a snapshot from previously saved totals.
func Restore(userID domain.UserID, completed []domain.CourseID, distanceKm float64, reviews int, awarded []domain.BadgeID) UserProgress {
	p := New(userID)
	for _, id := range completed {
		p.CompletedCourseIDs[id] = struct{}{}
	}
	for _, id := range awarded {
		p.AwardedBadgeIDs[id] = struct{}{}
	}
	p.TotalDistanceKm = distanceKm
	p.ReviewCount = reviews
	return p
}

// Clone returns a deep copy. A zero UserProgress clones into an initialized one.
func (p UserProgress) Clone() UserProgress {
	c := UserProgress{
		UserID:             p.UserID,
		CompletedCourseIDs: make(map[domain.CourseID]struct{}, len(p.CompletedCourseIDs)),
		TotalDistanceKm:    p.TotalDistanceKm,
		ReviewCount:        p.ReviewCount,
		AwardedBadgeIDs:    make(map[domain.BadgeID]struct{}, len(p.AwardedBadgeIDs)),
	}
	for id := range p.CompletedCourseIDs {
		c.CompletedCourseIDs[id] = struct{}{}
	}
	for id := range p.AwardedBadgeIDs {
		c.AwardedBadgeIDs[id] = struct{}{}
	}
	return c
}

func (p UserProgress) HasCompleted(id domain.CourseID) bool {
	_, ok := p.CompletedCourseIDs[id]
	return ok
}

func (p UserProgress) HasBadge(id domain.BadgeID) bool {
	_, ok := p.AwardedBadgeIDs[id]
	return ok
}

// CompletedCount is the number of distinct courses finished.
func (p UserProgress) CompletedCount() int {
	return len(p.CompletedCourseIDs)
}

// CompletedCourses returns the distinct completed courses in ascending order.
func (p UserProgress) CompletedCourses() []domain.CourseID {
	out := make([]domain.CourseID, 0, len(p.CompletedCourseIDs))
	for id := range p.CompletedCourseIDs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Badges returns the awarded badge ids in ascending order.
func (p UserProgress) Badges() []domain.BadgeID {
	out := make([]domain.BadgeID, 0, len(p.AwardedBadgeIDs))
	for id := range p.AwardedBadgeIDs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type progressJSON struct {
	UserID             domain.UserID     `json:"userId"`
	CompletedCourseIDs []domain.CourseID `json:"completedCourseIds"`
	TotalDistanceKm    float64           `json:"totalDistanceKm"`
	ReviewCount        int               `json:"reviewCount"`
	AwardedBadgeIDs    []domain.BadgeID  `json:"awardedBadgeIds"`
}

// MarshalJSON renders the sets as sorted arrays.
func (p UserProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(progressJSON{
		UserID:             p.UserID,
		CompletedCourseIDs: p.CompletedCourses(),
		TotalDistanceKm:    p.TotalDistanceKm,
		ReviewCount:        p.ReviewCount,
		AwardedBadgeIDs:    p.Badges(),
	})
}
