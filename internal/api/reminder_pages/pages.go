package reminder_pages

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/szto/foxy-reminder/internal/api/middlewares"
	"github.com/szto/foxy-reminder/internal/repository/reminder_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
	"github.com/szto/foxy-reminder/internal/services/reminder_services"
)

type PagesHandler struct {
	Service     *reminder_services.ReminderService
	AuthService *auth_services.AuthService
	CookieName  string
	Renderer    *Renderer
}

func NewPagesHandler(s *reminder_services.ReminderService, a *auth_services.AuthService, cookieName string, rn *Renderer) *PagesHandler {
	return &PagesHandler{Service: s, AuthService: a, CookieName: cookieName, Renderer: rn}
}

func (h *PagesHandler) PagesRoutes(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods("GET")
	r.HandleFunc("/login", h.loginPage).Methods("GET")
	r.HandleFunc("/not-found", h.notFoundPage).Methods("GET")
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS)))

	page := func(next http.HandlerFunc) http.Handler {
		return middlewares.PageAuth(h.AuthService, h.CookieName, next)
	}

	r.Handle("/reminders", page(h.remindersPage)).Methods("GET")
	r.Handle("/reminders/grid", page(h.remindersGrid)).Methods("GET")

	h.listRowRoutes(r, page)
	h.itemRowRoutes(r, page)
}

func handlePageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reminder_repository.ErrListNotFound),
		errors.Is(err, reminder_repository.ErrItemNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, reminder_repository.ErrEmptyName),
		errors.Is(err, reminder_repository.ErrEmptyDescription):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func pageOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middlewares.GetOwnerFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return "", false
	}
	return owner, true
}

// root sends authenticated visitors to the reminders page and everyone else
// to login.
func (h *PagesHandler) root(w http.ResponseWriter, r *http.Request) {
	if owner := middlewares.ResolveOwner(r, h.AuthService, h.CookieName); owner != "" {
		http.Redirect(w, r, "/reminders", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *PagesHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.Renderer.Render(w, "page/login", &LoginContext{
		Unauthorized: query.Get("unauthorized") != "",
		Failed:       query.Get("failed") != "",
	})
}

func (h *PagesHandler) notFoundPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "page/not-found", nil)
}

func (h *PagesHandler) remindersPage(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}

	page, err := BuildPageContext(r.Context(), h.Service, owner)
	if err != nil {
		handlePageError(w, err)
		return
	}
	h.Renderer.Render(w, "page/reminders", page)
}

func (h *PagesHandler) remindersGrid(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	h.renderGrid(w, r, owner)
}

// renderGrid re-renders the content fragment, the shared response of every
// mutating row route.
func (h *PagesHandler) renderGrid(w http.ResponseWriter, r *http.Request, owner string) {
	page, err := BuildPageContext(r.Context(), h.Service, owner)
	if err != nil {
		handlePageError(w, err)
		return
	}
	h.Renderer.Render(w, "reminders-content", page)
}
