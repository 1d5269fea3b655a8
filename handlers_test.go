package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aihub/models"
	"aihub/pkg/twitterapi"
)

func newTestRouter() *gin.Engine {
	r := gin.New()
	setupRoutes(r)
	return r
}

func performRequest(r http.Handler, method, path string, body []byte, cookie string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := issueSessionToken(jwtSecret, time.Now())
	require.NoError(t, err)
	return token
}

func TestLoginHandler(t *testing.T) {
	store = newFakeStore()
	cfg.AdminPassword = "letmein"
	r := newTestRouter()

	t.Run("missing password", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/api/auth/login", []byte(`{}`), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/api/auth/login", []byte(`{"password":"nope"}`), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "invalid credentials", body["error"])
	})

	t.Run("success sets session cookie", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/api/auth/login", []byte(`{"password":"letmein"}`), "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])

		res := rec.Result()
		defer res.Body.Close()
		var found *http.Cookie
		for _, ck := range res.Cookies() {
			if ck.Name == sessionCookie {
				found = ck
			}
		}
		require.NotNil(t, found, "login must set the session cookie")
		assert.True(t, found.HttpOnly)
		assert.Equal(t, "/", found.Path)
		assert.Equal(t, int(sessionTTL.Seconds()), found.MaxAge)
		assert.NoError(t, verifySessionToken(jwtSecret, found.Value))
	})
}

func TestVerifyHandler(t *testing.T) {
	store = newFakeStore()
	r := newTestRouter()

	rec := performRequest(r, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["isAuthenticated"])

	rec = performRequest(r, http.MethodGet, "/api/auth/verify", nil, validToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["isAuthenticated"])
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	store = newFakeStore()
	r := newTestRouter()

	rec := performRequest(r, http.MethodPost, "/api/auth/logout", nil, validToken(t))
	require.Equal(t, http.StatusOK, rec.Code)

	res := rec.Result()
	defer res.Body.Close()
	var found *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == sessionCookie {
			found = ck
		}
	}
	require.NotNil(t, found)
	assert.Empty(t, found.Value)
	assert.Less(t, found.MaxAge, 0, "cookie must be expired")
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	store = newFakeStore()
	r := newTestRouter()

	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/twitter/scrape"},
		{http.MethodPut, "/api/twitter/thresholds"},
		{http.MethodDelete, "/api/twitter?id=x"},
	}
	for _, p := range paths {
		rec := performRequest(r, p.method, p.path, []byte(`{}`), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, false, decodeBody(t, rec)["success"])
	}
}

func TestAdminPageMiddlewareRedirects(t *testing.T) {
	store = newFakeStore()
	r := newTestRouter()

	t.Run("unauthenticated admin page redirects to login with return target", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/admin/practices", nil, "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login?redirect=%2Fadmin%2Fpractices", rec.Header().Get("Location"))
	})

	t.Run("authenticated login page redirects to dashboard", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/admin/login", nil, validToken(t))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("unauthenticated login page passes through", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/admin/login", nil, "")
		assert.NotEqual(t, http.StatusFound, rec.Code)
	})

	t.Run("non-admin paths are untouched", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/twitter", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetThresholdsFallsBackToDefaults(t *testing.T) {
	store = newFakeStore()
	r := newTestRouter()

	rec := performRequest(r, http.MethodGet, "/api/twitter/thresholds", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(100), data["min_likes"])
	assert.Equal(t, float64(50), data["min_retweets"])
	assert.Equal(t, float64(20), data["min_replies"])
	assert.Equal(t, float64(0), data["min_bookmarks"])
	assert.Equal(t, true, data["is_active"])
}

func TestUpdateThresholdsCoercion(t *testing.T) {
	st := newFakeStore()
	store = st
	r := newTestRouter()
	token := validToken(t)

	// string and negative minimums coerce, missing ones default to 0,
	// missing is_active defaults to true
	payload := []byte(`{"min_likes":"250","min_replies":-5}`)
	rec := performRequest(r, http.MethodPut, "/api/twitter/thresholds", payload, token)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, st.thresholds)
	assert.Equal(t, 250, st.thresholds.MinLikes)
	assert.Equal(t, 0, st.thresholds.MinRetweets)
	assert.Equal(t, 0, st.thresholds.MinReplies)
	assert.Equal(t, 0, st.thresholds.MinBookmarks)
	assert.True(t, st.thresholds.IsActive)

	payload = []byte(`{"min_likes":10,"min_retweets":5,"min_replies":2,"min_bookmarks":1,"is_active":false}`)
	rec = performRequest(r, http.MethodPut, "/api/twitter/thresholds", payload, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, st.thresholds.MinLikes)
	assert.False(t, st.thresholds.IsActive)
}

func TestScrapeHandler(t *testing.T) {
	st := newFakeStore()
	st.thresholds = &models.TwitterThreshold{ID: models.ThresholdID, IsActive: true}
	store = st
	r := newTestRouter()
	token := validToken(t)

	t.Run("missing username", func(t *testing.T) {
		rec := performRequest(r, http.MethodPost, "/api/twitter/scrape", []byte(`{}`), token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		twClient = &fakeSource{err: twitterapi.ErrUserNotFound}
		rec := performRequest(r, http.MethodPost, "/api/twitter/scrape", []byte(`{"username":"ghost"}`), token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["success"])
	})

	t.Run("success envelope", func(t *testing.T) {
		twClient = &fakeSource{tweets: []twitterapi.Tweet{
			tweet("1", 10, 10, 10),
			tweet("2", 20, 20, 20),
		}}
		rec := performRequest(r, http.MethodPost, "/api/twitter/scrape", []byte(`{"username":"someone"}`), token)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(2), data["total"])
		assert.Equal(t, float64(2), data["filtered"])
		assert.Equal(t, float64(2), data["saved"])
		assert.Equal(t, float64(0), data["skipped"])
		assert.Contains(t, body["message"], "2 tweets")
	})
}

func TestDeleteTwitterPostHandler(t *testing.T) {
	st := newFakeStore()
	st.posts["42"] = &models.TwitterPost{ID: "row-42", TweetID: "42", IsPublished: true}
	store = st
	r := newTestRouter()
	token := validToken(t)

	rec := performRequest(r, http.MethodDelete, "/api/twitter", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/api/twitter?id=row-42", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.posts)
}

func TestListTwitterPostsHandler(t *testing.T) {
	st := newFakeStore()
	st.posts["1"] = &models.TwitterPost{ID: "row-1", TweetID: "1", IsPublished: true}
	st.posts["2"] = &models.TwitterPost{ID: "row-2", TweetID: "2", IsPublished: false}
	store = st
	r := newTestRouter()

	rec := performRequest(r, http.MethodGet, "/api/twitter", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 1, "only published posts are listed")
	post := data[0].(map[string]any)
	assert.Equal(t, "1", post["tweet_id"])
}
