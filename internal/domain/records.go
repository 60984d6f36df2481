package domain

import "time"

// CompletionRecord is one finished run of a course. Records are append-only.
type CompletionRecord struct {
	UserID   UserID   `json:"userId" yaml:"userId"`
	CourseID CourseID `json:"courseId" yaml:"courseId"`
	// CompletionTimeSeconds is zero when the run was not timed.
	CompletionTimeSeconds int       `json:"completionTimeSeconds" yaml:"seconds"`
	Date                  time.Time `json:"date" yaml:"date"`
	// CumulativeCount is the user's running completion count for this course, this record included.
	CumulativeCount int `json:"cumulativeCount" yaml:"count"`
}

type Review struct {
	ID       int64     `json:"id" yaml:"id"`
	CourseID CourseID  `json:"courseId" yaml:"courseId"`
	UserID   UserID    `json:"userId" yaml:"userId"`
	UserName string    `json:"userName" yaml:"userName"`
	Rating   int       `json:"rating" yaml:"rating"`
	Content  string    `json:"content" yaml:"content"`
	Photos   []string  `json:"photos" yaml:"photos"`
	Date     time.Time `json:"date" yaml:"date"`
	Likes    int       `json:"likes" yaml:"likes"`
}

type User struct {
	ID       UserID    `json:"id" yaml:"id"`
	Email    string    `json:"email" yaml:"email"`
	Nickname string    `json:"nickname" yaml:"nickname"`
	Region   string    `json:"region" yaml:"region"`
	JoinDate time.Time `json:"joinDate" yaml:"joinDate"`
}

// Comment is a reply under a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"reviewId"`
	UserID   UserID    `json:"userId"`
	UserName string    `json:"userName"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}
