// Package session owns every piece of mutable state: signed-in users, their
// progress snapshots, favorites, the completion journal and reviews. All
// mutations are serialized under one mutex before the progress and ranking
// cores see them.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"galmaetgil/internal/catalog"
	"galmaetgil/internal/domain"
	"galmaetgil/internal/events"
	"galmaetgil/internal/progress"
	"galmaetgil/internal/ranking"
	"galmaetgil/internal/seed"
	"galmaetgil/internal/timeline"
)

const (
	// First id handed to accounts created at runtime.
	firstSignupID domain.UserID = 1000

	DefaultSessionTTL = time.Hour
	DefaultCacheSize  = 128
	DefaultCacheTTL   = 30 * time.Second
)

var validate = validator.New()

type Options struct {
	Catalog *catalog.Catalog
	Seed    *seed.Data
	// Bus receives notifications after each successful mutation. Optional.
	Bus        *events.Bus
	SessionTTL time.Duration
	// LeaderboardLimit truncates served rankings. Zero serves every row.
	LeaderboardLimit int
	CacheSize        int
	CacheTTL         time.Duration
	Now              func() time.Time
	Logger           *slog.Logger
}

type Store struct {
	mu      sync.Mutex
	cat     *catalog.Catalog
	tracker *progress.Tracker
	cache   *ranking.Cache
	bus     *events.Bus
	log     *slog.Logger
	now     func() time.Time
	ttl     time.Duration
	limit   int
	demo    seed.Demo

	sessions map[string]*Session
	users    map[domain.UserID]domain.User
	emails   map[string]domain.UserID
	special  map[domain.UserID][]domain.BadgeID
	records  []domain.CompletionRecord
	// seeded is the number of leading records that came from the seed.
	seeded       int
	version      uint64
	reviews      timeline.Timeline[domain.Review]
	// likers records who liked each review at runtime, on top of its seeded Likes.
	likers        map[int64]map[domain.UserID]struct{}
	comments      timeline.Timeline[domain.Comment]
	announcements timeline.Timeline[domain.Announcement]
	nextUserID    domain.UserID
	nextReviewID  int64
	nextCommentID int64
}

func NewStore(opts Options) (*Store, error) {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Seed == nil {
		opts.Seed = seed.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	tracker, err := progress.NewTracker(opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("building badge tracker: %w", err)
	}

	s := &Store{
		cat:           opts.Catalog,
		tracker:       tracker,
		cache:         ranking.NewCache(opts.CacheSize, opts.CacheTTL),
		bus:           opts.Bus,
		log:           opts.Logger.With("component", "session"),
		now:           opts.Now,
		ttl:           opts.SessionTTL,
		limit:         opts.LeaderboardLimit,
		demo:          opts.Seed.Demo,
		sessions:      make(map[string]*Session),
		users:         make(map[domain.UserID]domain.User),
		emails:        make(map[string]domain.UserID),
		special:       make(map[domain.UserID][]domain.BadgeID),
		likers:        make(map[int64]map[domain.UserID]struct{}),
		announcements: timeline.FromOldest(opts.Seed.Announcements),
		nextUserID:    firstSignupID,
		nextReviewID:  1,
		nextCommentID: 1,
	}

	for _, u := range opts.Seed.Users {
		s.users[u.ID] = u
		if u.Email != "" {
			s.emails[u.Email] = u.ID
		}
		if u.ID >= s.nextUserID {
			s.nextUserID = u.ID + 1
		}
	}
	for id, badges := range opts.Seed.SpecialBadges {
		for _, b := range badges {
			if _, ok := s.cat.RankingBadge(b); !ok {
				return nil, fmt.Errorf("user %d: unknown ranking badge %d", id, b)
			}
		}
		s.special[id] = append([]domain.BadgeID(nil), badges...)
	}
	s.records = append(s.records, opts.Seed.Records...)
	s.seeded = len(s.records)
	s.reviews = timeline.FromOldest(opts.Seed.Reviews)
	for _, r := range opts.Seed.Reviews {
		if r.ID >= s.nextReviewID {
			s.nextReviewID = r.ID + 1
		}
	}
	return s, nil
}

// session resolves token and marks the session as active. Callers hold s.mu.
func (s *Store) session(token string) (*Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotAuthenticated
	}
	sess.LastSeen = s.now()
	return sess, nil
}

func (s *Store) publishBadges(userID domain.UserID, res progress.Result) {
	primary, _ := res.Primary()
	for _, b := range res.NewlyAwarded {
		s.emit(func() bool {
			select {
			case s.bus.BadgeUnlocks <- events.BadgeUnlockedEvent{UserID: userID, Badge: b, Primary: b.ID == primary.ID}:
				return true
			default:
				return false
			}
		}, "badge")
	}
}

func (s *Store) publishCompletion(rec domain.CompletionRecord, firstTime bool) {
	s.emit(func() bool {
		select {
		case s.bus.Completions <- events.CompletionRecordedEvent{Record: rec, FirstTime: firstTime}:
			return true
		default:
			return false
		}
	}, "completion")
}

func (s *Store) publishReview(r domain.Review) {
	s.emit(func() bool {
		select {
		case s.bus.Reviews <- events.ReviewPostedEvent{Review: r}:
			return true
		default:
			return false
		}
	}, "review")
}

func (s *Store) publishComment(c domain.Comment) {
	s.emit(func() bool {
		select {
		case s.bus.Comments <- events.CommentPostedEvent{Comment: c}:
			return true
		default:
			return false
		}
	}, "comment")
}

func (s *Store) emit(send func() bool, kind string) {
	if s.bus == nil {
		return
	}
	if !send() {
		s.log.Warn("event bus full, dropping notification", "kind", kind)
	}
}
