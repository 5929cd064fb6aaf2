package reminder_pages_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szto/foxy-reminder/internal/api/reminder_pages"
	"github.com/szto/foxy-reminder/internal/database"
	"github.com/szto/foxy-reminder/internal/repository/auth_repository"
	"github.com/szto/foxy-reminder/internal/repository/reminder_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
	"github.com/szto/foxy-reminder/internal/services/reminder_services"
)

const cookieName = "reminders_session"

type pagesFixture struct {
	router  *mux.Router
	auth    *auth_services.AuthService
	service *reminder_services.ReminderService
}

func getPages(t *testing.T) *pagesFixture {
	t.Helper()

	db, err := database.NewConnection("sqlite3", filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authSvc := auth_services.NewAuthService(auth_repository.NewUserRepo(db), "test-secret")
	reminderSvc := reminder_services.NewReminderService(reminder_repository.NewReminderRepo(db))

	renderer, err := reminder_pages.NewRenderer()
	require.NoError(t, err)

	router := mux.NewRouter()
	reminder_pages.NewPagesHandler(reminderSvc, authSvc, cookieName, renderer).PagesRoutes(router)

	return &pagesFixture{router: router, auth: authSvc, service: reminderSvc}
}

func (f *pagesFixture) do(t *testing.T, owner, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if owner != "" {
		token, err := f.auth.IssueToken(owner)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRemindersPageRedirectsWhenUnauthenticated(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)

	rec := f.do(t, "", "GET", "/reminders", nil)
	assert.Equal(http.StatusFound, rec.Code)
	assert.Equal("/login?unauthorized=True", rec.Header().Get("Location"))
}

func TestRootRedirects(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)

	rec := f.do(t, "", "GET", "/", nil)
	assert.Equal(http.StatusFound, rec.Code)
	assert.Equal("/login", rec.Header().Get("Location"))

	rec = f.do(t, "alice", "GET", "/", nil)
	assert.Equal(http.StatusFound, rec.Code)
	assert.Equal("/reminders", rec.Header().Get("Location"))
}

func TestLoginPageShowsUnauthorizedWarning(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)

	rec := f.do(t, "", "GET", "/login?unauthorized=True", nil)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Please log in")
}

func TestRemindersPageRendersListsAndCounts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)
	ctx := context.Background()

	list, err := f.service.CreateList(ctx, "alice", "Groceries", nil)
	assert.NoError(err)
	_, err = f.service.AddItem(ctx, list.ID, "alice", "Milk")
	assert.NoError(err)
	assert.NoError(f.service.SetSelectedList(ctx, list.ID, "alice"))

	rec := f.do(t, "alice", "GET", "/reminders", nil)
	assert.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(body, "Groceries")
	assert.Contains(body, "Milk")
	assert.Contains(body, "alice")
}

func TestNewListRowFlow(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)

	rec := f.do(t, "alice", "POST", "/reminders/new-list-row", url.Values{"reminder_list_name": {"Errands"}})
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Errands")

	// Creating a list selects it.
	selected, err := f.service.GetSelectedList(context.Background(), "alice")
	assert.NoError(err)
	assert.NotNil(selected)
	assert.Equal("Errands", selected.Name)
}

func TestDeleteListRowResetsSelection(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)
	ctx := context.Background()

	list, err := f.service.CreateList(ctx, "alice", "Groceries", nil)
	assert.NoError(err)
	assert.NoError(f.service.SetSelectedList(ctx, list.ID, "alice"))

	rec := f.do(t, "alice", "DELETE", "/reminders/list-row/"+strconv.FormatInt(list.ID, 10), nil)
	assert.Equal(http.StatusOK, rec.Code)

	selected, err := f.service.GetSelectedList(ctx, "alice")
	assert.NoError(err)
	assert.Nil(selected)
}

func TestStrikeItemRowTogglesAndRendersGrid(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)
	ctx := context.Background()

	list, err := f.service.CreateList(ctx, "alice", "Groceries", nil)
	assert.NoError(err)
	item, err := f.service.AddItem(ctx, list.ID, "alice", "Milk")
	assert.NoError(err)
	assert.NoError(f.service.SetSelectedList(ctx, list.ID, "alice"))

	rec := f.do(t, "alice", "PATCH", "/reminders/item-row-strike/"+strconv.FormatInt(item.ID, 10), nil)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "<s>Milk</s>")

	struck, err := f.service.GetItem(ctx, item.ID, "alice")
	assert.NoError(err)
	assert.True(struck.Completed)
}

func TestItemRowOfAnotherOwnerIs404(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)
	ctx := context.Background()

	list, err := f.service.CreateList(ctx, "alice", "Groceries", nil)
	assert.NoError(err)
	item, err := f.service.AddItem(ctx, list.ID, "alice", "Milk")
	assert.NoError(err)

	rec := f.do(t, "bob", "GET", "/reminders/item-row/"+strconv.FormatInt(item.ID, 10), nil)
	assert.Equal(http.StatusNotFound, rec.Code)
}

func TestNewItemRowRequiresSelection(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := getPages(t)

	rec := f.do(t, "alice", "POST", "/reminders/new-item-row", url.Values{"reminder_item_name": {"Milk"}})
	assert.Equal(http.StatusBadRequest, rec.Code)
}
