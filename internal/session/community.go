package session

import (
	"fmt"
	"strings"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/metrics"
)

// LikeResult reports a review's like state after a toggle.
type LikeResult struct {
	ReviewID int64 `json:"reviewId"`
	Liked    bool  `json:"liked"`
	Likes    int   `json:"likes"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required,max=500"`
}

// review finds a review by id. Callers hold s.mu.
func (s *Store) review(id int64) (domain.Review, bool) {
	found := s.reviews.Filter(func(r domain.Review) bool { return r.ID == id })
	if len(found) == 0 {
		return domain.Review{}, false
	}
	return found[0], true
}

// withLikes adds runtime likes to the seeded counts. Callers hold s.mu.
func (s *Store) withLikes(reviews []domain.Review) []domain.Review {
	for i := range reviews {
		reviews[i].Likes += len(s.likers[reviews[i].ID])
	}
	return reviews
}

// ToggleLike likes reviewID for the signed-in user, or takes the like back.
func (s *Store) ToggleLike(token string, reviewID int64) (LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(token)
	if err != nil {
		return LikeResult{}, err
	}
	r, ok := s.review(reviewID)
	if !ok {
		return LikeResult{}, ErrUnknownReview
	}

	likers := s.likers[reviewID]
	if likers == nil {
		likers = make(map[domain.UserID]struct{})
		s.likers[reviewID] = likers
	}
	_, liked := likers[sess.User.ID]
	if liked {
		delete(likers, sess.User.ID)
	} else {
		likers[sess.User.ID] = struct{}{}
	}
	return LikeResult{ReviewID: reviewID, Liked: !liked, Likes: r.Likes + len(likers)}, nil
}

// AddComment posts a reply under reviewID.
func (s *Store) AddComment(token string, reviewID int64, in CommentInput) (domain.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate.Struct(in); err != nil {
		return domain.Comment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	sess, err := s.session(token)
	if err != nil {
		s.mu.Unlock()
		return domain.Comment{}, err
	}
	if _, ok := s.review(reviewID); !ok {
		s.mu.Unlock()
		return domain.Comment{}, ErrUnknownReview
	}
	c := domain.Comment{
		ID:       s.nextCommentID,
		ReviewID: reviewID,
		UserID:   sess.User.ID,
		UserName: sess.User.Nickname,
		Content:  in.Content,
		Date:     s.now().UTC(),
	}
	s.nextCommentID++
	s.comments.Prepend(c)
	s.mu.Unlock()

	s.log.Info("comment posted", "user_id", c.UserID, "review_id", reviewID, "comment_id", c.ID)
	metrics.CommentsPosted.Inc()
	s.publishComment(c)
	return c, nil
}

// Comments lists the replies under reviewID, newest first.
func (s *Store) Comments(reviewID int64) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.review(reviewID); !ok {
		return nil, ErrUnknownReview
	}
	return s.comments.Filter(func(c domain.Comment) bool { return c.ReviewID == reviewID }), nil
}

// Announcements lists operator notices, newest first.
func (s *Store) Announcements() []domain.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcements.Items()
}
