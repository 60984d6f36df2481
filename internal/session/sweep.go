package session

import (
	"context"
	"time"

	"galmaetgil/internal/metrics"
)

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	swept := 0
	for token, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > s.ttl {
			delete(s.sessions, token)
			swept++
		}
	}
	if swept > 0 {
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	return swept
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info("swept idle sessions", "count", n)
			}
		}
	}
}
