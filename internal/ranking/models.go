package ranking

import (
	"time"

	"galmaetgil/internal/domain"
)

// RankingEntry is one row of a single course's leaderboard.
type RankingEntry struct {
	Rank            int           `json:"rank"`
	UserID          domain.UserID `json:"userId"`
	UserName        string        `json:"userName"`
	CompletionCount int           `json:"completionCount"`
	// BestTimeSeconds is zero when none of the user's runs were timed.
	BestTimeSeconds        int            `json:"bestTimeSeconds"`
	BestTime               string         `json:"bestTime,omitempty"`
	LastCompletionDate     time.Time      `json:"lastCompletionDate"`
	TotalDistanceForCourse float64        `json:"totalDistance"`
	Badges                 []domain.Badge `json:"badges"`
}

// GlobalRankingEntry aggregates one user across every course.
type GlobalRankingEntry struct {
	Rank               int            `json:"rank"`
	UserID             domain.UserID  `json:"userId"`
	UserName           string         `json:"userName"`
	TotalCompletions   int            `json:"totalCompletions"`
	TotalDistance      float64        `json:"totalDistance"`
	FavoriteCourseName string         `json:"favoriteCourseName"`
	SpecialBadges      []domain.Badge `json:"specialBadges"`
	LastActivityDate   time.Time      `json:"lastActivityDate"`
}

// CourseRanking is a course leaderboard as served to clients.
type CourseRanking struct {
	CourseID    domain.CourseID `json:"courseId"`
	CourseName  string          `json:"courseName"`
	Period      Period          `json:"period"`
	Rankings    []RankingEntry  `json:"rankings"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

type GlobalRanking struct {
	Period      Period               `json:"period"`
	Rankings    []GlobalRankingEntry `json:"rankings"`
	LastUpdated time.Time            `json:"lastUpdated"`
}
