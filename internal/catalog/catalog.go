// Package catalog holds the read-only course and badge registries that every
// other component looks up by id.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"galmaetgil/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// RuleSpec is the declarative unlock condition attached to a completion badge.
type RuleSpec struct {
	Kind      string            `yaml:"kind"`
	Threshold float64           `yaml:"threshold"`
	Courses   []domain.CourseID `yaml:"courses"`
}

type badgeEntry struct {
	domain.Badge `yaml:",inline"`
	Rule         RuleSpec `yaml:"rule"`
}

type file struct {
	Courses       []domain.Course `yaml:"courses"`
	Badges        []badgeEntry    `yaml:"badges"`
	RankingBadges []domain.Badge  `yaml:"rankingBadges"`
}

// Catalog is immutable after Load returns. All accessors return copies.
type Catalog struct {
	courses       map[domain.CourseID]domain.Course
	courseOrder   []domain.CourseID
	badges        map[domain.BadgeID]domain.Badge
	badgeOrder    []domain.BadgeID
	rules         map[domain.BadgeID]RuleSpec
	rankingBadges map[domain.BadgeID]domain.Badge
	rankingOrder  []domain.BadgeID
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load parses a YAML registry and checks ids are unique and rarities known.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		courses:       make(map[domain.CourseID]domain.Course, len(f.Courses)),
		badges:        make(map[domain.BadgeID]domain.Badge, len(f.Badges)),
		rules:         make(map[domain.BadgeID]RuleSpec, len(f.Badges)),
		rankingBadges: make(map[domain.BadgeID]domain.Badge, len(f.RankingBadges)),
	}

	for _, course := range f.Courses {
		if _, dup := c.courses[course.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %d", course.ID)
		}
		if course.DistanceKm < 0 {
			return nil, fmt.Errorf("course %d has negative distance", course.ID)
		}
		c.courses[course.ID] = course
		c.courseOrder = append(c.courseOrder, course.ID)
	}

	for _, b := range f.Badges {
		if err := c.checkBadge(b.Badge); err != nil {
			return nil, err
		}
		c.badges[b.ID] = b.Badge
		c.rules[b.ID] = b.Rule
		c.badgeOrder = append(c.badgeOrder, b.ID)
	}

	for _, b := range f.RankingBadges {
		if err := c.checkBadge(b); err != nil {
			return nil, err
		}
		c.rankingBadges[b.ID] = b
		c.rankingOrder = append(c.rankingOrder, b.ID)
	}

	sortIDs(c.courseOrder)
	sortIDs(c.badgeOrder)
	sortIDs(c.rankingOrder)
	return c, nil
}

func (c *Catalog) checkBadge(b domain.Badge) error {
	if _, dup := c.badges[b.ID]; dup {
		return fmt.Errorf("duplicate badge id %d", b.ID)
	}
	if _, dup := c.rankingBadges[b.ID]; dup {
		return fmt.Errorf("duplicate badge id %d", b.ID)
	}
	if !b.Rarity.Valid() {
		return fmt.Errorf("badge %d has unknown rarity %q", b.ID, b.Rarity)
	}
	return nil
}

func sortIDs[T ~int](ids []T) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// Course looks up a course by id.
func (c *Catalog) Course(id domain.CourseID) (domain.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Distance returns the course length in km, or 0 for an unknown course.
func (c *Catalog) Distance(id domain.CourseID) float64 {
	return c.courses[id].DistanceKm
}

// CourseName returns the display name, or "" for an unknown course.
func (c *Catalog) CourseName(id domain.CourseID) string {
	return c.courses[id].Name
}

// Courses returns every course ordered by id.
func (c *Catalog) Courses() []domain.Course {
	out := make([]domain.Course, 0, len(c.courseOrder))
	for _, id := range c.courseOrder {
		out = append(out, c.courses[id])
	}
	return out
}

// CoursesByRegion returns the courses passing through district, ordered by id.
// A course region lists its districts separated by "/".
func (c *Catalog) CoursesByRegion(district string) []domain.Course {
	var out []domain.Course
	for _, course := range c.Courses() {
		for _, r := range strings.Split(course.Region, "/") {
			if r == district {
				out = append(out, course)
				break
			}
		}
	}
	return out
}

// CoursesByDifficulty returns the courses graded d, ordered by id.
func (c *Catalog) CoursesByDifficulty(d domain.Difficulty) []domain.Course {
	var out []domain.Course
	for _, course := range c.Courses() {
		if course.Difficulty == d {
			out = append(out, course)
		}
	}
	return out
}

func (c *Catalog) Badge(id domain.BadgeID) (domain.Badge, bool) {
	b, ok := c.badges[id]
	return b, ok
}

// Badges returns the completion badges ordered by id.
func (c *Catalog) Badges() []domain.Badge {
	out := make([]domain.Badge, 0, len(c.badgeOrder))
	for _, id := range c.badgeOrder {
		out = append(out, c.badges[id])
	}
	return out
}

// Rules returns the unlock rule of every completion badge, keyed by badge id.
func (c *Catalog) Rules() map[domain.BadgeID]RuleSpec {
	out := make(map[domain.BadgeID]RuleSpec, len(c.rules))
	for id, r := range c.rules {
		out[id] = r
	}
	return out
}

func (c *Catalog) RankingBadge(id domain.BadgeID) (domain.Badge, bool) {
	b, ok := c.rankingBadges[id]
	return b, ok
}

// RankingBadges returns the ranking-achievement catalog ordered by id.
func (c *Catalog) RankingBadges() []domain.Badge {
	out := make([]domain.Badge, 0, len(c.rankingOrder))
	for _, id := range c.rankingOrder {
		out = append(out, c.rankingBadges[id])
	}
	return out
}
