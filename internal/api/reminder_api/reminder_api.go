package reminder_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/szto/foxy-reminder/internal/api/middlewares"
	"github.com/szto/foxy-reminder/internal/model/reminder_model"
	"github.com/szto/foxy-reminder/internal/repository/reminder_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
	"github.com/szto/foxy-reminder/internal/services/reminder_services"
)

func handleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if errors.Is(err, reminder_repository.ErrListNotFound) || errors.Is(err, reminder_repository.ErrItemNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
		return
	}

	if errors.Is(err, reminder_repository.ErrEmptyName) || errors.Is(err, reminder_repository.ErrEmptyDescription) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
		return
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid request payload"})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

type ReminderHandler struct {
	Service     *reminder_services.ReminderService
	AuthService *auth_services.AuthService
	CookieName  string
}

func NewReminderHandler(s *reminder_services.ReminderService, a *auth_services.AuthService, cookieName string) *ReminderHandler {
	return &ReminderHandler{Service: s, AuthService: a, CookieName: cookieName}
}

func (h *ReminderHandler) ReminderRoutes(r *mux.Router) {
	r.Handle("/api/reminders",
		middlewares.APIAuth(h.AuthService, h.CookieName, http.HandlerFunc(h.getReminders)),
	).Methods("GET")
	r.Handle("/api/reminders",
		middlewares.APIAuth(h.AuthService, h.CookieName, http.HandlerFunc(h.postReminders)),
	).Methods("POST")

	listRouter := r.PathPrefix("/api/reminders/{listID}").Subrouter()
	listRouter.Handle("",
		middlewares.APIAuth(h.AuthService, h.CookieName, http.HandlerFunc(h.getRemindersID)),
	).Methods("GET")
	listRouter.Handle("",
		middlewares.APIAuth(h.AuthService, h.CookieName, http.HandlerFunc(h.putRemindersID)),
	).Methods("PUT")
	listRouter.Handle("",
		middlewares.APIAuth(h.AuthService, h.CookieName, http.HandlerFunc(h.deleteRemindersID)),
	).Methods("DELETE")
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middlewares.GetOwnerFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return "", false
	}
	return owner, true
}

func listIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	listID, err := strconv.ParseInt(vars["listID"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return listID, true
}

func (h *ReminderHandler) getReminders(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	lists, err := h.Service.GetLists(r.Context(), owner)
	if err != nil {
		handleError(w, err)
		return
	}
	if lists == nil {
		lists = []*reminder_model.ReminderList{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lists)
}

func (h *ReminderHandler) postReminders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string                    `json:"name"`
		Items []reminder_model.ItemData `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.Service.CreateList(r.Context(), owner, req.Name, req.Items)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *ReminderHandler) getRemindersID(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.Service.GetList(r.Context(), listID, owner)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *ReminderHandler) putRemindersID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string                    `json:"name"`
		Items []reminder_model.ItemData `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.Service.UpdateList(r.Context(), listID, owner, req.Name, req.Items)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *ReminderHandler) deleteRemindersID(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteList(r.Context(), listID, owner); err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{})
}
