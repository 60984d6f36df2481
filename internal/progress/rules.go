package progress

import (
	"fmt"
	"sort"

	"galmaetgil/internal/catalog"
	"galmaetgil/internal/domain"
)

// RuleKind tags which part of UserProgress a rule inspects.
type RuleKind string

const (
	KindCompletionCount RuleKind = "completionCount"
	KindTotalDistance   RuleKind = "totalDistance"
	KindReviewCount     RuleKind = "reviewCount"
	KindCourseSet       RuleKind = "courseSet"
)

// Rule unlocks BadgeID once its predicate holds on the cumulative state.
// Threshold applies to the count and distance kinds, Courses to courseSet.
type Rule struct {
	BadgeID   domain.BadgeID
	Kind      RuleKind
	Threshold float64
	Courses   []domain.CourseID
}

// Satisfied reports whether p meets the rule. Thresholds are inclusive.
func (r Rule) Satisfied(p UserProgress) bool {
	switch r.Kind {
	case KindCompletionCount:
		return float64(p.CompletedCount()) >= r.Threshold
	case KindTotalDistance:
		return p.TotalDistanceKm >= r.Threshold
	case KindReviewCount:
		return float64(p.ReviewCount) >= r.Threshold
	case KindCourseSet:
		for _, id := range r.Courses {
			if !p.HasCompleted(id) {
				return false
			}
		}
		return true
	}
	return false
}

func ruleFromSpec(id domain.BadgeID, spec catalog.RuleSpec) (Rule, error) {
	r := Rule{BadgeID: id, Kind: RuleKind(spec.Kind), Threshold: spec.Threshold}
	switch r.Kind {
	case KindCompletionCount, KindTotalDistance, KindReviewCount:
		if spec.Threshold < 0 {
			return Rule{}, fmt.Errorf("badge %d: negative threshold %v", id, spec.Threshold)
		}
	case KindCourseSet:
		if len(spec.Courses) == 0 {
			return Rule{}, fmt.Errorf("badge %d: courseSet rule lists no courses", id)
		}
		r.Courses = append([]domain.CourseID(nil), spec.Courses...)
	default:
		return Rule{}, fmt.Errorf("badge %d: unknown rule kind %q", id, spec.Kind)
	}
	return r, nil
}

// RulesFromCatalog turns the catalog's rule table into Rules sorted by badge id.
func RulesFromCatalog(cat *catalog.Catalog) ([]Rule, error) {
	specs := cat.Rules()
	rules := make([]Rule, 0, len(specs))
	for id, spec := range specs {
		r, err := ruleFromSpec(id, spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].BadgeID < rules[j].BadgeID })
	return rules, nil
}
