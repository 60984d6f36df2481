package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galmaetgil/internal/domain"
	"galmaetgil/internal/session"
)

func TestHandleLike_Toggles(t *testing.T) {
	_, ts := newTestServer(t)
	client := signupClient(t, ts, "fan@example.com")

	status, body := do(t, client, http.MethodPost, ts.URL+"/api/reviews/1/like", "")
	require.Equal(t, http.StatusOK, status, string(body))
	var res session.LikeResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, session.LikeResult{ReviewID: 1, Liked: true, Likes: 13}, res)

	status, body = do(t, http.DefaultClient, http.MethodGet, ts.URL+"/api/courses/1/reviews", "")
	require.Equal(t, http.StatusOK, status)
	var reviews []domain.Review
	require.NoError(t, json.Unmarshal(body, &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, 13, reviews[0].Likes)

	_, body = do(t, client, http.MethodPost, ts.URL+"/api/reviews/1/like", "")
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, session.LikeResult{ReviewID: 1, Liked: false, Likes: 12}, res)
}

func TestHandleLike_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := do(t, newClientWithJar(t), http.MethodPost, ts.URL+"/api/reviews/1/like", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	client := signupClient(t, ts, "lost@example.com")
	status, body := do(t, client, http.MethodPost, ts.URL+"/api/reviews/99/like", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), ErrMsgReviewNotFound)

	status, body = do(t, client, http.MethodPost, ts.URL+"/api/reviews/abc/like", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), ErrMsgInvalidReviewID)
}

func TestHandleComments(t *testing.T) {
	_, ts := newTestServer(t)
	client := signupClient(t, ts, "chatty@example.com")

	status, _ := do(t, newClientWithJar(t), http.MethodPost, ts.URL+"/api/reviews/2/comments", `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, client, http.MethodPost, ts.URL+"/api/reviews/2/comments", `{"content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, status)

	for _, text := range []string{"first", "second"} {
		status, body := do(t, client, http.MethodPost, ts.URL+"/api/reviews/2/comments", `{"content":"`+text+`"}`)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body := do(t, http.DefaultClient, http.MethodGet, ts.URL+"/api/reviews/2/comments", "")
	require.Equal(t, http.StatusOK, status)
	var comments []domain.Comment
	require.NoError(t, json.Unmarshal(body, &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, int64(2), comments[0].ReviewID)

	status, _ = do(t, http.DefaultClient, http.MethodGet, ts.URL+"/api/reviews/99/comments", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandleAnnouncements(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := do(t, http.DefaultClient, http.MethodGet, ts.URL+"/api/announcements", "")
	require.Equal(t, http.StatusOK, status)
	var got []domain.Announcement
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, domain.CategoryEvent, got[0].Category)
}
