package progress

import (
	"fmt"

	"galmaetgil/internal/catalog"
	"galmaetgil/internal/domain"
)

// Result is the outcome of one evaluation.
type Result struct {
	Progress UserProgress
	// NewlyAwarded is in ascending badge id order. Empty when nothing unlocked.
	NewlyAwarded []domain.Badge
}

// Primary returns the badge a single-notification UI should show first.
func (r Result) Primary() (domain.Badge, bool) {
	if len(r.NewlyAwarded) == 0 {
		return domain.Badge{}, false
	}
	return r.NewlyAwarded[0], true
}

// Tracker evaluates a fixed rule set against progress snapshots.
// It holds no per-user state and is safe for concurrent use.
type Tracker struct {
	cat   *catalog.Catalog
	rules []Rule
}

// NewTracker compiles the catalog's badge rules.
func NewTracker(cat *catalog.Catalog) (*Tracker, error) {
	rules, err := RulesFromCatalog(cat)
	if err != nil {
		return nil, fmt.Errorf("compiling badge rules: %w", err)
	}
	for _, r := range rules {
		if _, ok := cat.Badge(r.BadgeID); !ok {
			return nil, fmt.Errorf("rule references unknown badge %d", r.BadgeID)
		}
	}
	return &Tracker{cat: cat, rules: rules}, nil
}

// EvaluateAfterCompletion records a first-time completion of courseID and
// awards every badge whose rule now holds. A course already in the completed
// set leaves progress unchanged and awards nothing; repeat runs only matter
// to rankings.
func (t *Tracker) EvaluateAfterCompletion(p UserProgress, courseID domain.CourseID) Result {
	next := p.Clone()
	if next.HasCompleted(courseID) {
		return Result{Progress: next, NewlyAwarded: []domain.Badge{}}
	}
	next.CompletedCourseIDs[courseID] = struct{}{}
	next.TotalDistanceKm += t.cat.Distance(courseID)
	return t.award(next, nil)
}

// EvaluateAfterReview updates the review total and evaluates review rules only.
// A lower count than already recorded is ignored.
func (t *Tracker) EvaluateAfterReview(p UserProgress, reviewCount int) Result {
	next := p.Clone()
	if reviewCount > next.ReviewCount {
		next.ReviewCount = reviewCount
	}
	return t.award(next, func(r Rule) bool { return r.Kind == KindReviewCount })
}

func (t *Tracker) award(p UserProgress, only func(Rule) bool) Result {
	awarded := []domain.Badge{}
	for _, r := range t.rules {
		if only != nil && !only(r) {
			continue
		}
		if p.HasBadge(r.BadgeID) || !r.Satisfied(p) {
			continue
		}
		p.AwardedBadgeIDs[r.BadgeID] = struct{}{}
		b, _ := t.cat.Badge(r.BadgeID)
		awarded = append(awarded, b)
	}
	return Result{Progress: p, NewlyAwarded: awarded}
}
