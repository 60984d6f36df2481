// Package seed loads the mock community the service starts with.
package seed

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/ranking"
)

//go:embed seed.yaml
var seedYAML []byte

// Gap between the synthesized earlier runs of a summary row.
const runInterval = 7 * 24 * time.Hour

type completionRow struct {
	UserID   domain.UserID   `yaml:"userId"`
	CourseID domain.CourseID `yaml:"courseId"`
	BestTime string          `yaml:"bestTime"`
	LastDate time.Time       `yaml:"lastDate"`
	Count    int             `yaml:"count"`
}

// Demo is the profile an email login receives.
type Demo struct {
	UserID           domain.UserID     `yaml:"userId"`
	Nickname         string            `yaml:"nickname"`
	Region           string            `yaml:"region"`
	JoinDate         time.Time         `yaml:"joinDate"`
	CompletedCourses []domain.CourseID `yaml:"completedCourses"`
	TotalDistance    float64           `yaml:"totalDistance"`
	Badges           []domain.BadgeID  `yaml:"badges"`
}

type file struct {
	Users         []domain.User                      `yaml:"users"`
	Completions   []completionRow                    `yaml:"completions"`
	SpecialBadges map[domain.UserID][]domain.BadgeID `yaml:"specialBadges"`
	Reviews       []domain.Review                    `yaml:"reviews"`
	Announcements []domain.Announcement              `yaml:"announcements"`
	Demo          Demo                               `yaml:"demo"`
}

// Data is the decoded seed. Records are ordered by date, oldest first.
type Data struct {
	Users         []domain.User
	Records       []domain.CompletionRecord
	SpecialBadges map[domain.UserID][]domain.BadgeID
	// Reviews and Announcements are oldest first.
	Reviews       []domain.Review
	Announcements []domain.Announcement
	Demo          Demo
}

var (
	defaultOnce sync.Once
	defaultData *Data
)

// Default returns the seed compiled into the binary.
func Default() *Data {
	defaultOnce.Do(func() {
		d, err := Load(seedYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded seed is invalid: %v", err))
		}
		defaultData = d
	})
	return defaultData
}

func Load(data []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	records, err := expand(f.Completions)
	if err != nil {
		return nil, err
	}

	reviews := append([]domain.Review(nil), f.Reviews...)
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].Date.Before(reviews[j].Date) })
	for i := range reviews {
		if reviews[i].Photos == nil {
			reviews[i].Photos = []string{}
		}
	}

	announcements := append([]domain.Announcement(nil), f.Announcements...)
	for _, a := range announcements {
		if !a.Category.Valid() {
			return nil, fmt.Errorf("announcement %d: unknown category %q", a.ID, a.Category)
		}
	}
	sort.SliceStable(announcements, func(i, j int) bool { return announcements[i].Date.Before(announcements[j].Date) })

	special := f.SpecialBadges
	if special == nil {
		special = map[domain.UserID][]domain.BadgeID{}
	}

	return &Data{
		Users:         f.Users,
		Records:       records,
		SpecialBadges: special,
		Reviews:       reviews,
		Announcements: announcements,
		Demo:          f.Demo,
	}, nil
}

// expand turns each summary row into Count records, one week apart and ending
// on LastDate. Only the latest run carries the best time; earlier runs are
// untimed so the row's best time is preserved exactly.
func expand(rows []completionRow) ([]domain.CompletionRecord, error) {
	var records []domain.CompletionRecord
	for _, row := range rows {
		if row.Count < 1 {
			return nil, fmt.Errorf("user %d course %d: count must be positive", row.UserID, row.CourseID)
		}
		best, err := ranking.ParseDuration(row.BestTime)
		if err != nil {
			return nil, fmt.Errorf("user %d course %d: %w", row.UserID, row.CourseID, err)
		}
		for k := 1; k <= row.Count; k++ {
			r := domain.CompletionRecord{
				UserID:          row.UserID,
				CourseID:        row.CourseID,
				Date:            row.LastDate.Add(-time.Duration(row.Count-k) * runInterval),
				CumulativeCount: k,
			}
			if k == row.Count {
				r.CompletionTimeSeconds = best
			}
			records = append(records, r)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}
