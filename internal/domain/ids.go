package domain

// UserID identifies a member. Ordering of UserIDs is the final tie-break on every leaderboard.
type UserID int64

// CourseID identifies a Galmaetgil course (1..9 in the seeded catalog).
type CourseID int

// BadgeID identifies a catalog badge. Completion badges and ranking badges share the id space.
type BadgeID int
