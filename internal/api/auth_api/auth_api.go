package auth_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/szto/foxy-reminder/internal/api/middlewares"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
)

type AuthHandler struct {
	Service    *auth_services.AuthService
	CookieName string
}

func NewAuthHandler(s *auth_services.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{Service: s, CookieName: cookieName}
}

func (h *AuthHandler) AuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/login", h.login).Methods("POST")
	r.HandleFunc("/auth/logout", h.logout).Methods("POST")
}

// wantsHTML reports whether the client is a browser form submit rather than
// an API caller.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// login takes form credentials and sets the session cookie. Browser form
// submits get redirects; API callers get JSON and a uniform 401 on bad
// credentials.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.Service.Login(r.Context(), username, password)
	if err != nil {
		if wantsHTML(r) {
			http.Redirect(w, r, "/login?failed=True", http.StatusFound)
			return
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	if wantsHTML(r) {
		http.Redirect(w, r, "/reminders", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": fmt.Sprintf("Logged in as %s", username)})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	owner := middlewares.ResolveOwner(r, h.Service, h.CookieName)
	if owner == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": fmt.Sprintf("Logged out as %s", owner)})
}
