package session

import (
	"time"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/progress"
	"galmaetgil/internal/timeline"
)

// Session is one signed-in browser. Its progress lives only as long as the session.
type Session struct {
	Token     string
	User      domain.User
	Progress  progress.UserProgress
	Favorites map[domain.CourseID]struct{}
	// Badges holds awarded badges newest first.
	Badges   timeline.Timeline[domain.Badge]
	LastSeen time.Time
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=2,max=20"`
	Region   string `json:"region" validate:"required"`
}

type LoginInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ReviewInput struct {
	CourseID domain.CourseID `json:"courseId" validate:"required"`
	Rating   int             `json:"rating" validate:"min=1,max=5"`
	Content  string          `json:"content" validate:"min=10,max=1000"`
	Photos   []string        `json:"photos" validate:"max=5,dive,required"`
}

// CompletionResult reports one recorded run.
type CompletionResult struct {
	// FirstTime is false for a repeat run of an already completed course.
	FirstTime    bool                    `json:"firstTime"`
	Record       domain.CompletionRecord `json:"record"`
	Progress     progress.UserProgress   `json:"progress"`
	NewlyAwarded []domain.Badge          `json:"newlyAwarded"`
}

type ReviewResult struct {
	Review       domain.Review         `json:"review"`
	Progress     progress.UserProgress `json:"progress"`
	NewlyAwarded []domain.Badge        `json:"newlyAwarded"`
}

// Profile is the my-page view of the signed-in user.
type Profile struct {
	User             domain.User           `json:"user"`
	Progress         progress.UserProgress `json:"progress"`
	Badges           []domain.Badge        `json:"badges"`
	Favorites        []domain.Course       `json:"favorites"`
	Reviews          []domain.Review       `json:"reviews"`
	CompletedCourses []domain.Course       `json:"completedCourses"`
	NextCourses      []domain.Course       `json:"nextCourses"`
}
