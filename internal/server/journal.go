package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/logger"
	"galmaetgil/internal/metrics"
)

const (
	journalFlushInterval = 500 * time.Millisecond
	journalBatchSize     = 50
)

type completionJournal interface {
	BatchRecordCompletions(records []domain.CompletionRecord) error
}

func (s *Server) journalUser(r *http.Request, u domain.User) {
	if s.DB == nil {
		return
	}
	if err := s.DB.UpsertUser(u); err != nil {
		metrics.JournalWriteErrors.WithLabelValues("user").Inc()
		logger.FromContext(r.Context()).Error("UpsertUser failed", "user_id", u.ID, "error", err)
	}
}

func (s *Server) journalBadges(r *http.Request, userID domain.UserID, badges []domain.Badge) {
	if s.DB == nil {
		return
	}
	for _, b := range badges {
		if err := s.DB.AwardBadge(userID, b.ID); err != nil {
			metrics.JournalWriteErrors.WithLabelValues("badge").Inc()
			logger.FromContext(r.Context()).Error("AwardBadge failed",
				"user_id", userID, "badge_id", strconv.Itoa(int(b.ID)), "error", err)
		}
	}
}

// journalCompletion queues rec for the batch writer. The request never waits on the database.
func (s *Server) journalCompletion(r *http.Request, rec domain.CompletionRecord) {
	s.journalMu.RLock()
	defer s.journalMu.RUnlock()
	if s.CompletionBuffer == nil || s.journalClosed {
		return
	}
	select {
	case s.CompletionBuffer <- rec:
	default:
		metrics.JournalWriteErrors.WithLabelValues("completion_dropped").Inc()
		logger.FromContext(r.Context()).Warn("completion buffer full, dropping record",
			"user_id", rec.UserID, "course_id", rec.CourseID)
	}
}

// closeJournal stops further queueing and closes the completion buffer.
// It is safe to call more than once.
func (s *Server) closeJournal() {
	s.journalMu.Lock()
	defer s.journalMu.Unlock()
	if s.CompletionBuffer == nil || s.journalClosed {
		return
	}
	s.journalClosed = true
	close(s.CompletionBuffer)
}

// completionBatchWriter flushes buffered completions every interval or once
// a batch fills. It drains and returns when buffer is closed.
func completionBatchWriter(journal completionJournal, buffer <-chan domain.CompletionRecord, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	batch := make([]domain.CompletionRecord, 0, journalBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := journal.BatchRecordCompletions(batch); err != nil {
			metrics.JournalWriteErrors.WithLabelValues("completion").Inc()
			slog.Error("BatchRecordCompletions failed", "count", len(batch), "error", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec, ok := <-buffer:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= journalBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
