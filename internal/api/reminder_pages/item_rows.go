package reminder_pages

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *PagesHandler) itemRowRoutes(r *mux.Router, page func(http.HandlerFunc) http.Handler) {
	r.Handle("/reminders/new-item-row", page(h.getNewItemRow)).Methods("GET")
	r.Handle("/reminders/new-item-row", page(h.postNewItemRow)).Methods("POST")
	r.Handle("/reminders/new-item-row-edit", page(h.getNewItemRowEdit)).Methods("GET")

	r.Handle("/reminders/item-row/{itemID}", page(h.getItemRow)).Methods("GET")
	r.Handle("/reminders/item-row/{itemID}", page(h.deleteItemRow)).Methods("DELETE")
	r.Handle("/reminders/item-row-edit/{itemID}", page(h.getItemRowEdit)).Methods("GET")
	r.Handle("/reminders/item-row-description/{itemID}", page(h.patchItemRowDescription)).Methods("PATCH")
	r.Handle("/reminders/item-row-strike/{itemID}", page(h.patchItemRowStrike)).Methods("PATCH")
}

func itemIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseInt(vars["itemID"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return itemID, true
}

func (h *PagesHandler) getItemRow(w http.ResponseWriter, r *http.Request) {
	h.renderItemRow(w, r, "item-row")
}

func (h *PagesHandler) getItemRowEdit(w http.ResponseWriter, r *http.Request) {
	h.renderItemRow(w, r, "item-row-edit")
}

func (h *PagesHandler) renderItemRow(w http.ResponseWriter, r *http.Request, tmpl string) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.Service.GetItem(r.Context(), itemID, owner)
	if err != nil {
		handlePageError(w, err)
		return
	}

	h.Renderer.Render(w, tmpl, &ItemRowContext{ReminderItem: item})
}

func (h *PagesHandler) getNewItemRow(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "new-item-row", nil)
}

func (h *PagesHandler) getNewItemRowEdit(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, "new-item-row-edit", nil)
}

// postNewItemRow appends an item to the currently selected list and
// re-renders the grid.
func (h *PagesHandler) postNewItemRow(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	description := r.PostFormValue("reminder_item_name")

	selected, err := h.Service.GetSelectedList(r.Context(), owner)
	if err != nil {
		handlePageError(w, err)
		return
	}
	if selected == nil {
		http.Error(w, "no list selected", http.StatusBadRequest)
		return
	}

	if _, err := h.Service.AddItem(r.Context(), selected.ID, owner, description); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}

func (h *PagesHandler) deleteItemRow(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteItem(r.Context(), itemID, owner); err != nil {
		handlePageError(w, err)
		return
	}
	// The row is removed client-side; nothing to render.
	w.WriteHeader(http.StatusOK)
}

func (h *PagesHandler) patchItemRowDescription(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	newDescription := r.PostFormValue("new_description")

	if err := h.Service.UpdateItemDescription(r.Context(), itemID, owner, newDescription); err != nil {
		handlePageError(w, err)
		return
	}

	item, err := h.Service.GetItem(r.Context(), itemID, owner)
	if err != nil {
		handlePageError(w, err)
		return
	}

	h.Renderer.Render(w, "item-row", &ItemRowContext{ReminderItem: item})
}

// patchItemRowStrike toggles the item and re-renders the grid so the counts
// update along with the row.
func (h *PagesHandler) patchItemRowStrike(w http.ResponseWriter, r *http.Request) {
	owner, ok := pageOwner(w, r)
	if !ok {
		return
	}
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if _, err := h.Service.StrikeItem(r.Context(), itemID, owner); err != nil {
		handlePageError(w, err)
		return
	}

	h.renderGrid(w, r, owner)
}
