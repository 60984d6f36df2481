package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/logger"
	"galmaetgil/internal/ranking"
	"galmaetgil/internal/session"
)

type authResponse struct {
	User domain.User `json:"user"`
}

type courseView struct {
	domain.Course
	// CompletedCount is the number of members who have finished the course.
	CompletedCount int `json:"completedCount"`
}

type courseDetail struct {
	courseView
	Reviews []domain.Review `json:"reviews"`
}

type badgesResponse struct {
	Badges        []domain.Badge `json:"badges"`
	RankingBadges []domain.Badge `json:"rankingBadges"`
}

type favoriteResponse struct {
	CourseID  domain.CourseID `json:"courseId"`
	Favorited bool            `json:"favorited"`
}

type completeRequest struct {
	// Elapsed is the run time as HH:MM:SS. Empty records an untimed run.
	Elapsed string `json:"elapsed"`
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func courseID(r *http.Request) (domain.CourseID, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parsing course id %q", chi.URLParam(r, "id"))
	}
	return domain.CourseID(id), nil
}

func (s *Server) view(c domain.Course) courseView {
	n, err := s.Store.CourseCompleters(c.ID)
	if err != nil {
		n = c.SeedCompletedCount
	}
	return courseView{Course: c, CompletedCount: n}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in session.SignupInput
	if err := decode(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBody)
		return
	}
	tok, u, err := s.Store.Signup(in)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	setSessionCookie(w, tok)
	s.journalUser(r, u)
	respondJSON(w, http.StatusCreated, authResponse{User: u})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in session.LoginInput
	if err := decode(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBody)
		return
	}
	tok, u, err := s.Store.Login(in)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	setSessionCookie(w, tok)
	s.journalUser(r, u)
	respondJSON(w, http.StatusOK, authResponse{User: u})
}

func (s *Server) handleSocialLogin(w http.ResponseWriter, r *http.Request) {
	tok, u, err := s.Store.SocialLogin(chi.URLParam(r, "provider"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	setSessionCookie(w, tok)
	s.journalUser(r, u)
	respondJSON(w, http.StatusOK, authResponse{User: u})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Logout(token(r)); err != nil {
		respondStoreError(w, r, err)
		return
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Profile(token(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, badgesResponse{
		Badges:        s.Catalog.Badges(),
		RankingBadges: s.Catalog.RankingBadges(),
	})
}

// handleCourses lists the catalog, optionally narrowed by ?region= and ?difficulty=.
func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	courses := s.Catalog.Courses()
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		courses = s.Catalog.CoursesByRegion(region)
	}
	if d := strings.TrimSpace(r.URL.Query().Get("difficulty")); d != "" {
		courses = intersect(courses, s.Catalog.CoursesByDifficulty(domain.Difficulty(d)))
	}

	out := make([]courseView, 0, len(courses))
	for _, c := range courses {
		out = append(out, s.view(c))
	}
	respondJSON(w, http.StatusOK, out)
}

// intersect keeps the courses of a that also appear in b, in a's order.
func intersect(a, b []domain.Course) []domain.Course {
	in := make(map[domain.CourseID]bool, len(b))
	for _, c := range b {
		in[c.ID] = true
	}
	out := a[:0:0]
	for _, c := range a {
		if in[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	c, ok := s.Catalog.Course(id)
	if !ok {
		respondError(w, http.StatusNotFound, ErrMsgCourseNotFound)
		return
	}
	reviews, err := s.Store.Reviews(id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, courseDetail{courseView: s.view(c), Reviews: reviews})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	favorited, err := s.Store.ToggleFavorite(token(r), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, favoriteResponse{CourseID: id, Favorited: favorited})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	var req completeRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBody)
		return
	}
	var elapsed time.Duration
	if req.Elapsed != "" {
		secs, err := ranking.ParseDuration(req.Elapsed)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidElapsed)
			return
		}
		elapsed = time.Duration(secs) * time.Second
	}

	res, err := s.Store.RecordCompletion(token(r), id, elapsed)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.journalCompletion(r, res.Record)
	s.journalBadges(r, res.Record.UserID, res.NewlyAwarded)

	logger.FromContext(r.Context()).Debug("completion handled",
		"course_id", id, "first_time", res.FirstTime)
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	reviews, err := s.Store.Reviews(id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	var in session.ReviewInput
	if err := decode(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBody)
		return
	}
	in.CourseID = id

	res, err := s.Store.SubmitReview(token(r), in)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	s.journalBadges(r, res.Review.UserID, res.NewlyAwarded)
	respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleCourseRanking(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCourseID)
		return
	}
	board, err := s.Store.CourseRanking(id, ranking.ParsePeriod(r.URL.Query().Get("period")))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleGlobalRanking(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.GlobalRanking(ranking.ParsePeriod(r.URL.Query().Get("period"))))
}

type healthResponse struct {
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	Users        int    `json:"users"`
	Sessions     int    `json:"sessions"`
	CachedBoards int    `json:"cachedBoards"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:       "ok",
		Users:        s.Store.UserCount(),
		Sessions:     s.Store.ActiveSessions(),
		CachedBoards: s.Store.CachedBoards(),
	}
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			resp.Status = "db_error"
			resp.Error = err.Error()
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
