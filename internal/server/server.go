// Package server exposes the session store over HTTP: a JSON API, a
// server-sent event stream and a WebSocket feed.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"galmaetgil/internal/broadcast"
	"galmaetgil/internal/catalog"
	"galmaetgil/internal/db"
	"galmaetgil/internal/domain"
	"galmaetgil/internal/metrics"
	"galmaetgil/internal/session"
	"galmaetgil/internal/wshub"
)

const sessionCookie = "session_token"

type Server struct {
	Store            *session.Store
	Catalog          *catalog.Catalog
	Broadcaster      *broadcast.Broadcaster
	Hub              *wshub.Hub
	DB               *db.DB                       // nil if no database configured
	CompletionBuffer chan domain.CompletionRecord // nil if no database configured

	journalMu     sync.RWMutex
	journalClosed bool
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
			r.Post("/social/{provider}", s.handleSocialLogin)
			r.With(s.requireSession).Post("/logout", s.handleLogout)
		})
		r.With(s.requireSession).Get("/me", s.handleProfile)
		r.Get("/badges", s.handleBadges)
		r.Get("/announcements", s.handleAnnouncements)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.handleCourses)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleCourse)
				r.Get("/reviews", s.handleReviews)
				r.Group(func(r chi.Router) {
					r.Use(s.requireSession)
					r.Post("/favorite", s.handleFavorite)
					r.Post("/complete", s.handleComplete)
					r.Post("/reviews", s.handleSubmitReview)
				})
			})
		})

		r.Route("/reviews/{id}", func(r chi.Router) {
			r.Get("/comments", s.handleComments)
			r.Group(func(r chi.Router) {
				r.Use(s.requireSession)
				r.Post("/like", s.handleLike)
				r.Post("/comments", s.handleAddComment)
			})
		})

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/global", s.handleGlobalRanking)
			r.Get("/courses/{id}", s.handleCourseRanking)
		})

		r.Get("/events", s.handleEvents)
	})

	r.Get("/ws", s.handleWebSocket)
	return r
}

// token is the session token carried by the request's cookie, or "".
func token(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
