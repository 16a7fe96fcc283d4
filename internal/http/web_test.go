package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anishrjn/pressroom/internal/service"
	"github.com/anishrjn/pressroom/internal/store"
)

func seedAdmin(t *testing.T, db *gorm.DB) {
	t.Helper()
	auth := service.NewAuth(store.NewAdminStore(db))
	_, err := auth.CreateAdmin("admin@example.com", "s3cret", "Admin")
	require.NoError(t, err)
}

// login runs the form login and returns the session cookies.
func login(t *testing.T, router *gin.Engine) []string {
	t.Helper()
	form := url.Values{"username": {"admin@example.com"}, "password": {"s3cret"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/v1/posts/web", w.Header().Get("Location"))
	cookies := w.Header().Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	return cookies
}

func doWeb(router *gin.Engine, method, path string, cookies []string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebRequiresLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/v1/posts/web", "/v1/posts/web/create", "/v1/auth/profile"} {
		w := doWeb(router, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/v1/auth/login", w.Header().Get("Location"), path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)

	form := url.Values{"username": {"admin@example.com"}, "password": {"wrong"}}
	w := doWeb(router, http.MethodPost, "/v1/auth/login", nil, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLoginAndListPosts(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	createPost(t, router, "Visible Post", "Body")

	cookies := login(t, router)

	w := doWeb(router, http.MethodGet, "/v1/posts/web", cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All Posts")
	assert.Contains(t, w.Body.String(), "Visible Post")
}

func TestWebCreateAndLifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	cookies := login(t, router)

	// Create through the form.
	form := url.Values{"title": {"From Form"}, "detail": {"Body"}, "isActive": {"on"}}
	w := doWeb(router, http.MethodPost, "/v1/posts/web", cookies, form)
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/v1/posts/web/"), location)

	// Detail page renders.
	w = doWeb(router, http.MethodGet, location, cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "From Form")

	// Soft delete, then the detail page still shows it with a restore action.
	w = doWeb(router, http.MethodPost, location+"/delete", cookies, url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	w = doWeb(router, http.MethodGet, location, cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Restore")

	// Restore brings it back.
	w = doWeb(router, http.MethodPost, location+"/restore", cookies, url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	// Force delete removes it for good.
	w = doWeb(router, http.MethodPost, location+"/force", cookies, url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	w = doWeb(router, http.MethodGet, location, cookies, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebEditReplacesAllFields(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	cookies := login(t, router)

	form := url.Values{
		"title":    {"Covered"},
		"detail":   {"Body"},
		"cover":    {"https://example.com/a.jpg"},
		"isActive": {"on"},
	}
	w := doWeb(router, http.MethodPost, "/v1/posts/web", cookies, form)
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	id := strings.TrimPrefix(location, "/v1/posts/web/")

	// Submitting the form with an empty cover and the checkbox cleared is
	// a full replacement: both fields change.
	form = url.Values{"title": {"Covered"}, "detail": {"Body"}, "cover": {""}}
	w = doWeb(router, http.MethodPost, location, cookies, form)
	require.Equal(t, http.StatusFound, w.Code)

	w = doJSON(router, http.MethodGet, "/v1/posts/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var post map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Nil(t, post["cover"])
	assert.Equal(t, false, post["isActive"])
}

func TestWebCreateValidation(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	cookies := login(t, router)

	form := url.Values{"title": {""}, "detail": {"Body"}}
	w := doWeb(router, http.MethodPost, "/v1/posts/web", cookies, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title and detail are required")
}

func TestLogout(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	cookies := login(t, router)

	w := doWeb(router, http.MethodPost, "/v1/auth/logout", cookies, url.Values{})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/v1/auth/login", w.Header().Get("Location"))
}

func TestProfilePage(t *testing.T) {
	router, db := newTestRouter(t)
	seedAdmin(t, db)
	cookies := login(t, router)

	w := doWeb(router, http.MethodGet, "/v1/auth/profile", cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
}
