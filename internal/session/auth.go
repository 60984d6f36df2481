package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/metrics"
	"galmaetgil/internal/progress"
)

// Providers accepted by SocialLogin.
var socialProviders = map[string]bool{"kakao": true, "naver": true}

// open starts a session for u. Callers hold s.mu.
func (s *Store) open(u domain.User, p progress.UserProgress) *Session {
	sess := &Session{
		Token:     uuid.NewString(),
		User:      u,
		Progress:  p,
		Favorites: make(map[domain.CourseID]struct{}),
		LastSeen:  s.now(),
	}
	for _, id := range p.Badges() {
		if b, ok := s.cat.Badge(id); ok {
			sess.Badges.Prepend(b)
		}
	}
	s.sessions[sess.Token] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return sess
}

// register creates a runtime account. Callers hold s.mu.
func (s *Store) register(email, nickname, region string) domain.User {
	u := domain.User{
		ID:       s.nextUserID,
		Email:    email,
		Nickname: nickname,
		Region:   region,
		JoinDate: s.now().UTC(),
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.emails[email] = u.ID
	return u
}

// Signup creates an account and signs it in with empty progress.
func (s *Store) Signup(in SignupInput) (string, domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Nickname = strings.TrimSpace(in.Nickname)
	if err := validate.Struct(in); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[in.Email]; taken {
		return "", domain.User{}, ErrEmailTaken
	}
	u := s.register(in.Email, in.Nickname, in.Region)
	sess := s.open(u, progress.New(u.ID))
	s.log.Info("user signed up", "user_id", u.ID, "region", u.Region)
	return sess.Token, u, nil
}

// Login signs in by email. Accounts created through Signup or SocialLogin get
// a fresh session; any other address receives the demo profile.
func (s *Store) Login(in LoginInput) (string, domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := validate.Struct(in); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.emails[in.Email]; ok && id >= firstSignupID {
		u := s.users[id]
		sess := s.open(u, progress.New(u.ID))
		s.log.Info("user logged in", "user_id", u.ID)
		return sess.Token, u, nil
	}

	d := s.demo
	u := domain.User{
		ID:       d.UserID,
		Email:    in.Email,
		Nickname: d.Nickname,
		Region:   d.Region,
		JoinDate: d.JoinDate,
	}
	p := progress.Restore(d.UserID, d.CompletedCourses, d.TotalDistance, s.reviewCount(d.UserID), d.Badges)
	sess := s.open(u, p)
	s.log.Info("demo profile logged in", "user_id", u.ID)
	return sess.Token, u, nil
}

// SocialLogin signs in through a mocked OAuth provider. The first login per
// provider creates the account.
func (s *Store) SocialLogin(provider string) (string, domain.User, error) {
	provider = strings.ToLower(provider)
	if !socialProviders[provider] {
		return "", domain.User{}, fmt.Errorf("%w: unsupported provider %q", ErrInvalidInput, provider)
	}
	email := "user@" + provider + ".com"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[s.emails[email]]
	if !ok {
		u = s.register(email, provider+"사용자", "부산진구")
	}
	sess := s.open(u, progress.New(u.ID))
	s.log.Info("social login", "user_id", u.ID, "provider", provider)
	return sess.Token, u, nil
}

// Logout discards the session and its progress.
func (s *Store) Logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return ErrNotAuthenticated
	}
	delete(s.sessions, token)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.log.Info("user logged out", "user_id", sess.User.ID)
	return nil
}

// User returns the account behind token.
func (s *Store) User(token string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(token)
	if err != nil {
		return domain.User{}, err
	}
	return sess.User, nil
}

// ValidateSession reports whether token names a live session.
func (s *Store) ValidateSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[token]
	return exists
}

// reviewCount counts the reviews written by id. Callers hold s.mu.
func (s *Store) reviewCount(id domain.UserID) int {
	return len(s.reviews.Filter(func(r domain.Review) bool { return r.UserID == id }))
}
