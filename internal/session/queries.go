package session

import (
	"galmaetgil/internal/domain"
	"galmaetgil/internal/metrics"
	"galmaetgil/internal/ranking"
)

// directory is a point-in-time copy of the display data rankings attach.
type directory struct {
	names   map[domain.UserID]string
	special map[domain.UserID][]domain.Badge
}

func (d directory) UserName(id domain.UserID) string { return d.names[id] }

func (d directory) SpecialBadges(id domain.UserID) []domain.Badge { return d.special[id] }

// snapshot copies what a ranking build needs. Callers hold s.mu.
func (s *Store) snapshot() ([]domain.CompletionRecord, directory) {
	records := append([]domain.CompletionRecord(nil), s.records...)
	dir := directory{
		names:   make(map[domain.UserID]string, len(s.users)),
		special: make(map[domain.UserID][]domain.Badge, len(s.special)),
	}
	for id, u := range s.users {
		dir.names[id] = u.Nickname
	}
	for id, ids := range s.special {
		badges := make([]domain.Badge, 0, len(ids))
		for _, bid := range ids {
			if b, ok := s.cat.RankingBadge(bid); ok {
				badges = append(badges, b)
			}
		}
		dir.special[id] = badges
	}
	return records, dir
}

// CourseRanking serves the leaderboard of courseID for period.
func (s *Store) CourseRanking(courseID domain.CourseID, period ranking.Period) (ranking.CourseRanking, error) {
	course, ok := s.cat.Course(courseID)
	if !ok {
		return ranking.CourseRanking{}, ErrUnknownCourse
	}

	s.mu.Lock()
	version := s.version
	if cached, ok := s.cache.Course(courseID, period, version); ok {
		s.mu.Unlock()
		metrics.RankingCacheLookups.WithLabelValues("hit").Inc()
		return s.limitCourse(cached), nil
	}
	metrics.RankingCacheLookups.WithLabelValues("miss").Inc()
	records, dir := s.snapshot()
	now := s.now()
	s.mu.Unlock()

	agg := ranking.NewAggregator(s.cat, dir)
	board := ranking.CourseRanking{
		CourseID:    courseID,
		CourseName:  course.Name,
		Period:      period,
		Rankings:    agg.BuildCourseRanking(courseID, ranking.FilterPeriod(records, period, now)),
		LastUpdated: now.UTC(),
	}
	s.cache.SetCourse(board, version)
	return s.limitCourse(board), nil
}

// GlobalRanking serves the all-course leaderboard for period.
func (s *Store) GlobalRanking(period ranking.Period) ranking.GlobalRanking {
	s.mu.Lock()
	version := s.version
	if cached, ok := s.cache.Global(period, version); ok {
		s.mu.Unlock()
		metrics.RankingCacheLookups.WithLabelValues("hit").Inc()
		return s.limitGlobal(cached)
	}
	metrics.RankingCacheLookups.WithLabelValues("miss").Inc()
	records, dir := s.snapshot()
	now := s.now()
	s.mu.Unlock()

	agg := ranking.NewAggregator(s.cat, dir)
	board := ranking.GlobalRanking{
		Period:      period,
		Rankings:    agg.BuildGlobalRanking(ranking.FilterPeriod(records, period, now)),
		LastUpdated: now.UTC(),
	}
	s.cache.SetGlobal(board, version)
	return s.limitGlobal(board)
}

func (s *Store) limitCourse(b ranking.CourseRanking) ranking.CourseRanking {
	if s.limit > 0 && len(b.Rankings) > s.limit {
		b.Rankings = b.Rankings[:s.limit:s.limit]
	}
	return b
}

func (s *Store) limitGlobal(b ranking.GlobalRanking) ranking.GlobalRanking {
	if s.limit > 0 && len(b.Rankings) > s.limit {
		b.Rankings = b.Rankings[:s.limit:s.limit]
	}
	return b
}

// CourseCompleters is the catalog's historical completer count plus the
// distinct users who completed courseID since startup.
func (s *Store) CourseCompleters(courseID domain.CourseID) (int, error) {
	course, ok := s.cat.Course(courseID)
	if !ok {
		return 0, ErrUnknownCourse
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users := map[domain.UserID]struct{}{}
	for _, r := range s.records[s.seeded:] {
		if r.CourseID == courseID {
			users[r.UserID] = struct{}{}
		}
	}
	return course.SeedCompletedCount + len(users), nil
}

// Reviews lists the reviews of courseID, newest first.
func (s *Store) Reviews(courseID domain.CourseID) ([]domain.Review, error) {
	if _, ok := s.cat.Course(courseID); !ok {
		return nil, ErrUnknownCourse
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withLikes(s.reviews.Filter(func(r domain.Review) bool { return r.CourseID == courseID })), nil
}

// Profile assembles the signed-in user's page.
func (s *Store) Profile(token string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		User:             sess.User,
		Progress:         sess.Progress.Clone(),
		Badges:           sess.Badges.Items(),
		Favorites:        []domain.Course{},
		Reviews:          s.withLikes(s.reviews.Filter(func(r domain.Review) bool { return r.UserID == sess.User.ID })),
		CompletedCourses: []domain.Course{},
		NextCourses:      []domain.Course{},
	}
	for _, c := range s.cat.Courses() {
		if _, fav := sess.Favorites[c.ID]; fav {
			p.Favorites = append(p.Favorites, c)
		}
		switch {
		case sess.Progress.HasCompleted(c.ID):
			p.CompletedCourses = append(p.CompletedCourses, c)
		case len(p.NextCourses) < 2:
			p.NextCourses = append(p.NextCourses, c)
		}
	}
	return p, nil
}

// UserCount is the number of known accounts, seeded and runtime.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// CachedBoards is the number of leaderboards currently memoized.
func (s *Store) CachedBoards() int {
	return s.cache.Len()
}

// ActiveSessions is the number of live sessions.
func (s *Store) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
