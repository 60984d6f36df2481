package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"galmaetgil/internal/broadcast"
	"galmaetgil/internal/catalog"
	"galmaetgil/internal/config"
	"galmaetgil/internal/db"
	"galmaetgil/internal/domain"
	"galmaetgil/internal/events"
	"galmaetgil/internal/seed"
	"galmaetgil/internal/session"
	"galmaetgil/internal/wshub"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Run serves until ctx is cancelled, then shuts down gracefully. The
// completion journal is flushed and the database closed on every return path.
func Run(ctx context.Context, cfg config.Config) error {
	cat := catalog.Default()
	bus := events.NewBus()

	store, err := session.NewStore(session.Options{
		Catalog:          cat,
		Seed:             seed.Default(),
		Bus:              bus,
		SessionTTL:       time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		LeaderboardLimit: cfg.LeaderboardLimit,
		CacheSize:        cfg.RankingCacheSize,
		Logger:           slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}

	b := broadcast.NewBroadcaster(bus)
	hub := wshub.NewHub()
	srv := &Server{
		Store:       store,
		Catalog:     cat,
		Broadcaster: b,
		Hub:         hub,
	}

	go hub.Relay(ctx, b)
	go store.RunSweeper(ctx, sweepInterval)

	// Optional database journal
	var journalDone chan struct{}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			slog.Warn("database unavailable, running without journal", "error", err)
		} else {
			if err := database.Migrate(); err != nil {
				slog.Error("migration failed", "error", err)
			}
			srv.DB = database
			srv.CompletionBuffer = make(chan domain.CompletionRecord, 1000)
			journalDone = make(chan struct{})
			go func() {
				completionBatchWriter(database, srv.CompletionBuffer, journalFlushInterval)
				close(journalDone)
			}()
			slog.Info("database connected and migrations applied")
			defer func() {
				srv.closeJournal()
				<-journalDone
				if err := database.Close(); err != nil {
					slog.Error("closing database", "error", err)
				}
			}()
		}
	} else {
		slog.Info("DATABASE_URL not set, running without database")
	}

	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end with ctx, which stops open event streams and websockets.
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		if cerr := httpServer.Close(); cerr != nil {
			slog.Error("closing listeners", "error", cerr)
		}
		// Handlers may still be publishing; leave the bus open.
		return fmt.Errorf("shutting down: %w", err)
	}
	bus.Close()
	slog.Info("server stopped")
	return nil
}
