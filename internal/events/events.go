// Package events carries progression notifications from the session layer to
// the push transports.
package events

import "galmaetgil/internal/domain"

type BadgeUnlockedEvent struct {
	UserID domain.UserID
	Badge  domain.Badge
	// Primary marks the first badge of a simultaneous unlock.
	Primary bool
}

type CompletionRecordedEvent struct {
	Record    domain.CompletionRecord
	FirstTime bool
}

type ReviewPostedEvent struct {
	Review domain.Review
}

type CommentPostedEvent struct {
	Comment domain.Comment
}

type Bus struct {
	BadgeUnlocks chan BadgeUnlockedEvent
	Completions  chan CompletionRecordedEvent
	Reviews      chan ReviewPostedEvent
	Comments     chan CommentPostedEvent
}

func NewBus() *Bus {
	return &Bus{
		BadgeUnlocks: make(chan BadgeUnlockedEvent, 32),
		Completions:  make(chan CompletionRecordedEvent, 32),
		Reviews:      make(chan ReviewPostedEvent, 32),
		Comments:     make(chan CommentPostedEvent, 32),
	}
}

// Close closes every channel. Senders must be stopped first.
func (b *Bus) Close() {
	close(b.BadgeUnlocks)
	close(b.Completions)
	close(b.Reviews)
	close(b.Comments)
}
