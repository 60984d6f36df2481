package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"galmaetgil/internal/session"
)

func reviewID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parsing review id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidReviewID)
		return
	}
	res, err := s.Store.ToggleLike(token(r), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidReviewID)
		return
	}
	comments, err := s.Store.Comments(id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidReviewID)
		return
	}
	var in session.CommentInput
	if err := decode(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBody)
		return
	}
	c, err := s.Store.AddComment(token(r), id, in)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Announcements())
}
