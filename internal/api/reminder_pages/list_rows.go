package reminder_pages

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *PagesHandler) listRowRoutes(r *mux.Router, page func(http.HandlerFunc) http.Handler) {
	r.Handle("/reminders/new-list-row", page(h.getNewListRow)).Methods("GET")
	r.Handle("/reminders/new-list-row", page(h.postNewListRow)).Methods("POST")
	r.Handle("/reminders/new-list-row-edit", page(h.getNewListRowEdit)).Methods("GET")

	r.Handle("/reminders/list-row/{listID}", page(h.getListRow)).Methods("GET")
	r.Handle("/reminders/list-row/{listID}", page(h.deleteListRow)).Methods("DELETE")
	r.Handle("/reminders/list-row-edit/{listID}", page(h.getListRowEdit)).Methods("GET")
	r.Handle("/reminders/list-row-name/{listID}", page(h.patchListRowName)).Methods("PATCH")

	r.Handle("/reminders/select/{listID}", page(h.postSelect)).Methods("POST")
}

func listIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	listID, err := strconv.ParseInt(vars["listID"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return listID, true
}

func (h *PagesHandler) getListRow(w http.ResponseWriter, r *http.Request) {
	h.renderListRow(w, r, "list-row")
}

func (h *PagesHandler) getListRowEdit(w http.ResponseWriter, r *http.Request) {
	h.renderListRow(w, r, "list-row-edit")
}

func (h *PagesHandler) renderListRow(w http.ResponseWriter, r *http.Request, tmpl string) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromPath(w, r)
	if !ok {
		return
	}

	list, err := h.Service.GetList(r.Context(), listID, owner)
	if err != nil {
		handlePageError(w, err)
		return
	}
	selected, err := h.Service.GetSelectedList(r.Context(), owner)
	if err != nil {
		handlePageError(w, err)
		return
	}

	h.Renderer.Render(w, tmpl, &ListRowContext{ReminderList: list, SelectedList: selected})
}

// deleteListRow drops the list, resets a selection pointing at it, and
// re-renders the grid.
func (h *PagesHandler) deleteListRow(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteList(r.Context(), listID, owner); err != nil {
		handlePageError(w, err)
		return
	}
	if err := h.Service.ResetSelectedAfterDelete(r.Context(), listID, owner); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}

// patchListRowName renames the list, re-selects it, and re-renders the grid.
func (h *PagesHandler) patchListRowName(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromPath(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	newName := r.PostFormValue("new_name")

	if err := h.Service.UpdateListName(r.Context(), listID, owner, newName); err != nil {
		handlePageError(w, err)
		return
	}
	if err := h.Service.SetSelectedList(r.Context(), listID, owner); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}

func (h *PagesHandler) getNewListRow(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "new-list-row", nil)
}

func (h *PagesHandler) getNewListRowEdit(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "new-list-row-edit", nil)
}

// postNewListRow creates the list, selects it, and re-renders the grid.
func (h *PagesHandler) postNewListRow(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("reminder_list_name")

	list, err := h.Service.CreateList(r.Context(), owner, name, nil)
	if err != nil {
		handlePageError(w, err)
		return
	}
	if err := h.Service.SetSelectedList(r.Context(), list.ID, owner); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}

func (h *PagesHandler) postSelect(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	listID, ok := listIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Service.SetSelectedList(r.Context(), listID, owner); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}
