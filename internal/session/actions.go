package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/metrics"
)

// ToggleFavorite flips courseID in the user's favorites and reports the new state.
func (s *Store) ToggleFavorite(token string, courseID domain.CourseID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return false, err
	}
	if _, ok := s.cat.Course(courseID); !ok {
		return false, ErrUnknownCourse
	}
	if _, fav := sess.Favorites[courseID]; fav {
		delete(sess.Favorites, courseID)
		return false, nil
	}
	sess.Favorites[courseID] = struct{}{}
	return true, nil
}

// RecordCompletion journals one finished run of courseID. Every run counts
// toward rankings; only the first run of a course can unlock badges. elapsed
// is zero for an untimed run.
func (s *Store) RecordCompletion(token string, courseID domain.CourseID, elapsed time.Duration) (CompletionResult, error) {
	if elapsed < 0 {
		return CompletionResult{}, fmt.Errorf("%w: negative completion time", ErrInvalidInput)
	}

	s.mu.Lock()
	sess, err := s.session(token)
	if err != nil {
		s.mu.Unlock()
		return CompletionResult{}, err
	}
	if _, ok := s.cat.Course(courseID); !ok {
		s.mu.Unlock()
		return CompletionResult{}, ErrUnknownCourse
	}

	userID := sess.User.ID
	count := 1
	for _, r := range s.records {
		if r.UserID == userID && r.CourseID == courseID {
			count++
		}
	}
	rec := domain.CompletionRecord{
		UserID:                userID,
		CourseID:              courseID,
		CompletionTimeSeconds: int(elapsed / time.Second),
		Date:                  s.now().UTC(),
		CumulativeCount:       count,
	}
	s.records = append(s.records, rec)
	s.version++

	firstTime := !sess.Progress.HasCompleted(courseID)
	res := s.tracker.EvaluateAfterCompletion(sess.Progress, courseID)
	sess.Progress = res.Progress
	for _, b := range res.NewlyAwarded {
		sess.Badges.Prepend(b)
	}
	s.mu.Unlock()

	s.log.Info("completion recorded",
		"user_id", userID,
		"course_id", courseID,
		"first_time", firstTime,
		"count", count,
		"new_badges", len(res.NewlyAwarded))

	metrics.CompletionsRecorded.WithLabelValues(strconv.FormatBool(firstTime)).Inc()
	countAwards(res.NewlyAwarded)

	s.publishCompletion(rec, firstTime)
	s.publishBadges(userID, res)

	return CompletionResult{
		FirstTime:    firstTime,
		Record:       rec,
		Progress:     res.Progress,
		NewlyAwarded: res.NewlyAwarded,
	}, nil
}

// SubmitReview posts a review and evaluates the review badges.
func (s *Store) SubmitReview(token string, in ReviewInput) (ReviewResult, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate.Struct(in); err != nil {
		return ReviewResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	sess, err := s.session(token)
	if err != nil {
		s.mu.Unlock()
		return ReviewResult{}, err
	}
	if _, ok := s.cat.Course(in.CourseID); !ok {
		s.mu.Unlock()
		return ReviewResult{}, ErrUnknownCourse
	}

	photos := append([]string{}, in.Photos...)
	review := domain.Review{
		ID:       s.nextReviewID,
		CourseID: in.CourseID,
		UserID:   sess.User.ID,
		UserName: sess.User.Nickname,
		Rating:   in.Rating,
		Content:  in.Content,
		Photos:   photos,
		Date:     s.now().UTC(),
	}
	s.nextReviewID++
	s.reviews.Prepend(review)

	res := s.tracker.EvaluateAfterReview(sess.Progress, s.reviewCount(sess.User.ID))
	sess.Progress = res.Progress
	for _, b := range res.NewlyAwarded {
		sess.Badges.Prepend(b)
	}
	s.mu.Unlock()

	s.log.Info("review posted",
		"user_id", review.UserID,
		"course_id", review.CourseID,
		"review_id", review.ID,
		"new_badges", len(res.NewlyAwarded))

	metrics.ReviewsPosted.Inc()
	countAwards(res.NewlyAwarded)

	s.publishReview(review)
	s.publishBadges(review.UserID, res)

	return ReviewResult{Review: review, Progress: res.Progress, NewlyAwarded: res.NewlyAwarded}, nil
}

func countAwards(badges []domain.Badge) {
	for _, b := range badges {
		metrics.BadgesAwarded.WithLabelValues(strconv.Itoa(int(b.ID))).Inc()
	}
}
