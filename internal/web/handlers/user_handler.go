package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/avolkov/userboard/internal/directory"
	"github.com/avolkov/userboard/internal/models"
	"github.com/avolkov/userboard/internal/web/render"
	"github.com/avolkov/userboard/internal/web/viewmodel"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler serves the list and edit pages over the remote directory.
type UserHandler struct {
	directory directory.Client
	renderer  *render.Renderer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(dir directory.Client, renderer *render.Renderer) *UserHandler {
	return &UserHandler{directory: dir, renderer: renderer}
}

// List renders one page of users with optional client-side filtering. The
// filter applies only to the fetched page; while a query is active the
// pagination controls are suppressed rather than combined with it.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	confirmDelete, _ := strconv.Atoi(r.URL.Query().Get("confirm_delete"))
	justDeleted, _ := strconv.Atoi(r.URL.Query().Get("deleted"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page = clampPage(page, 0)

	vm := viewmodel.Users{
		Layout:        viewmodel.Layout{Title: "User Management", IsAuthenticated: true, Flash: render.PopFlash(w, r)},
		Page:          page,
		Query:         query,
		ConfirmDelete: confirmDelete,
	}

	pageData, err := h.directory.ListUsers(r.Context(), page)
	if err == nil && pageData.TotalPages > 0 && page > pageData.TotalPages {
		// The request was over-range; the response just told us the real
		// upper bound, so clamp and fetch that page instead.
		page = pageData.TotalPages
		vm.Page = page
		pageData, err = h.directory.ListUsers(r.Context(), page)
	}
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to load users")
		vm.Flash = &viewmodel.Flash{Level: render.FlashError, Message: "Failed to load users. Please try again."}
		h.renderer.Render(w, http.StatusOK, "users", vm)
		return
	}

	vm.TotalPages = pageData.TotalPages
	// The demo directory does not persist deletes, so a just-deleted user can
	// still appear in the refetch; patch the displayed set by ID.
	vm.Users = filterUsers(removeUser(pageData.Users, justDeleted), query)

	h.renderer.Render(w, http.StatusOK, "users", vm)
}

// Edit loads a user and renders the edit form. A failed load never strands
// the visitor on a broken page: it flashes an error and goes back to the
// list.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Int("user_id", id).Msg("Failed to load user")
		render.SetFlash(w, render.FlashError, "Failed to load user details. Please try again.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "edit", viewmodel.Edit{
		Layout: viewmodel.Layout{Title: "Edit User", IsAuthenticated: true, Flash: render.PopFlash(w, r)},
		UserID: id,
		Draft: models.FormDraft{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
	})
}

// Update validates the submitted draft and, only when it passes, sends the
// update to the directory. On any failure the form re-renders with the
// visitor's edits intact.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	draft := models.FormDraft{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}

	vm := viewmodel.Edit{
		Layout: viewmodel.Layout{Title: "Edit User", IsAuthenticated: true},
		UserID: id,
		Draft:  draft,
	}

	errs, valid := draft.Validate()
	if !valid {
		vm.Errors = errs
		h.renderer.Render(w, http.StatusUnprocessableEntity, "edit", vm)
		return
	}

	if _, err := h.directory.UpdateUser(r.Context(), id, draft); err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("Failed to update user")
		vm.Flash = &viewmodel.Flash{Level: render.FlashError, Message: "Failed to update user. Please try again."}
		h.renderer.Render(w, http.StatusOK, "edit", vm)
		return
	}

	render.SetFlash(w, render.FlashSuccess, "User has been successfully updated.")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Delete removes a user and returns to the list page the action came from.
// A failed delete leaves the displayed set unchanged; nothing is retried.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.PostFormValue("page"))
	page = clampPage(page, 0)
	back := fmt.Sprintf("/users?page=%d", page)

	if err := h.directory.DeleteUser(r.Context(), id); err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("Failed to delete user")
		render.SetFlash(w, render.FlashError, "Failed to delete user. Please try again.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	render.SetFlash(w, render.FlashSuccess, "User has been successfully deleted.")
	http.Redirect(w, r, fmt.Sprintf("%s&deleted=%d", back, id), http.StatusSeeOther)
}

// userID parses the {id} route parameter. Anything that is not a positive
// integer flashes an error and routes back to the list.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		render.SetFlash(w, render.FlashError, "Failed to load user details. Please try again.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return 0, false
	}
	return id, true
}
