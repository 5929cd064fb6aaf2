package auth_api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szto/foxy-reminder/internal/api/auth_api"
	"github.com/szto/foxy-reminder/internal/database"
	"github.com/szto/foxy-reminder/internal/repository/auth_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
)

const cookieName = "reminders_session"

func getFixture(t *testing.T) (*mux.Router, *auth_services.AuthService) {
	t.Helper()

	db, err := database.NewConnection("sqlite3", filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authSvc := auth_services.NewAuthService(auth_repository.NewUserRepo(db), "test-secret")

	router := mux.NewRouter()
	auth_api.NewAuthHandler(authSvc, cookieName).AuthRoutes(router)

	return router, authSvc
}

func postForm(t *testing.T, router *mux.Router, path string, form url.Values, accept string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginSetsSessionCookie(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	router, authSvc := getFixture(t)

	_, err := authSvc.Register(context.Background(), "alice", "hunter2")
	assert.NoError(err)

	rec := postForm(t, router, "/auth/login", url.Values{"username": {"alice"}, "password": {"hunter2"}}, "")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Logged in as alice")

	cookies := rec.Result().Cookies()
	assert.Len(cookies, 1)
	assert.Equal(cookieName, cookies[0].Name)

	owner, err := authSvc.ParseToken(cookies[0].Value)
	assert.NoError(err)
	assert.Equal("alice", owner)
}

func TestLoginFromBrowserRedirects(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	router, authSvc := getFixture(t)

	_, err := authSvc.Register(context.Background(), "alice", "hunter2")
	assert.NoError(err)

	rec := postForm(t, router, "/auth/login", url.Values{"username": {"alice"}, "password": {"hunter2"}}, "text/html")
	assert.Equal(http.StatusFound, rec.Code)
	assert.Equal("/reminders", rec.Header().Get("Location"))

	rec = postForm(t, router, "/auth/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, "text/html")
	assert.Equal(http.StatusFound, rec.Code)
	assert.Equal("/login?failed=True", rec.Header().Get("Location"))
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	router, authSvc := getFixture(t)

	_, err := authSvc.Register(context.Background(), "alice", "hunter2")
	assert.NoError(err)

	rec := postForm(t, router, "/auth/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, "")
	assert.Equal(http.StatusUnauthorized, rec.Code)

	rec = postForm(t, router, "/auth/login", url.Values{"username": {"nobody"}, "password": {"hunter2"}}, "")
	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	router, authSvc := getFixture(t)

	token, err := authSvc.IssueToken("alice")
	assert.NoError(err)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Logged out as alice")

	cookies := rec.Result().Cookies()
	assert.Len(cookies, 1)
	assert.Equal(cookieName, cookies[0].Name)
	assert.Empty(cookies[0].Value)
	assert.Negative(cookies[0].MaxAge)
}

func TestLogoutWithoutSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	router, _ := getFixture(t)

	rec := postForm(t, router, "/auth/logout", url.Values{}, "")
	assert.Equal(http.StatusUnauthorized, rec.Code)
}
