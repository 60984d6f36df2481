package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galmaetgil/internal/config"
	"galmaetgil/internal/domain"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func TestRun_ShutsDownWithOpenEventStream(t *testing.T) {
	cfg := config.Config{
		Port:              freePort(t),
		LogLevel:          "info",
		LogFormat:         "text",
		Environment:       "test",
		LeaderboardLimit:  10,
		RankingCacheSize:  128,
		SessionTTLMinutes: 60,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	client := &http.Client{}
	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := client.Get("http://127.0.0.1:" + cfg.Port + "/api/events")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 3*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestCloseJournal_StopsQueueing(t *testing.T) {
	srv := &Server{CompletionBuffer: make(chan domain.CompletionRecord, 4)}
	r := httptest.NewRequest(http.MethodPost, "/api/courses/1/complete", nil)

	srv.journalCompletion(r, domain.CompletionRecord{UserID: 1, CourseID: 1})
	srv.closeJournal()
	srv.closeJournal()

	assert.NotPanics(t, func() {
		srv.journalCompletion(r, domain.CompletionRecord{UserID: 1, CourseID: 2})
	})

	var got []domain.CompletionRecord
	for rec := range srv.CompletionBuffer {
		got = append(got, rec)
	}
	require.Len(t, got, 1)
	assert.Equal(t, domain.CourseID(1), got[0].CourseID)
}
