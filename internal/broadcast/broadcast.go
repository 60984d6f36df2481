package broadcast

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/events"
)

const (
	EventBadgeUnlocked = "badgeUnlocked"
	EventCompletion    = "completion"
	EventReview        = "review"
	EventComment       = "comment"
)

// Message is one notification fanned out to subscribers. UserID is the user
// the event belongs to; Data is the JSON payload.
type Message struct {
	Event  string
	UserID domain.UserID
	Data   string
}

type badgePayload struct {
	UserID  domain.UserID `json:"userId"`
	Badge   domain.Badge  `json:"badge"`
	Primary bool          `json:"primary"`
}

type completionPayload struct {
	UserID          domain.UserID   `json:"userId"`
	CourseID        domain.CourseID `json:"courseId"`
	FirstTime       bool            `json:"firstTime"`
	CumulativeCount int             `json:"count"`
	Date            time.Time       `json:"date"`
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

// NewBroadcaster forwards everything published on bus until its channels close.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go b.forward(bus)
	return b
}

func (b *Broadcaster) forward(bus *events.Bus) {
	badges, completions, reviews, comments := bus.BadgeUnlocks, bus.Completions, bus.Reviews, bus.Comments
	for badges != nil || completions != nil || reviews != nil || comments != nil {
		select {
		case ev, ok := <-badges:
			if !ok {
				badges = nil
				continue
			}
			b.publish(EventBadgeUnlocked, ev.UserID, badgePayload{UserID: ev.UserID, Badge: ev.Badge, Primary: ev.Primary})
		case ev, ok := <-completions:
			if !ok {
				completions = nil
				continue
			}
			b.publish(EventCompletion, ev.Record.UserID, completionPayload{
				UserID:          ev.Record.UserID,
				CourseID:        ev.Record.CourseID,
				FirstTime:       ev.FirstTime,
				CumulativeCount: ev.Record.CumulativeCount,
				Date:            ev.Record.Date,
			})
		case ev, ok := <-reviews:
			if !ok {
				reviews = nil
				continue
			}
			b.publish(EventReview, ev.Review.UserID, ev.Review)
		case ev, ok := <-comments:
			if !ok {
				comments = nil
				continue
			}
			b.publish(EventComment, ev.Comment.UserID, ev.Comment)
		}
	}
}

func (b *Broadcaster) publish(event string, userID domain.UserID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("encoding broadcast payload", "event", event, "error", err)
		return
	}
	b.Broadcast(Message{Event: event, UserID: userID, Data: string(data)})
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Broadcast(msg Message) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- msg:
		default:
			// skip clients with full data channels
		}
	}
}
