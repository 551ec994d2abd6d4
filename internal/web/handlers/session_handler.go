package handlers

import (
	"net/http"

	"github.com/avolkov/userboard/internal/auth"
	"github.com/avolkov/userboard/internal/directory"
	"github.com/avolkov/userboard/internal/session"
	"github.com/avolkov/userboard/internal/web/render"
	"github.com/avolkov/userboard/internal/web/viewmodel"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles the entry redirect, login, and logout.
type SessionHandler struct {
	directory directory.Client
	sessions  session.StoreProvider
	cookies   *auth.Manager
	renderer  *render.Renderer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(dir directory.Client, sessions session.StoreProvider, cookies *auth.Manager, renderer *render.Renderer) *SessionHandler {
	return &SessionHandler{directory: dir, sessions: sessions, cookies: cookies, renderer: renderer}
}

// Entry routes the root URL to the list for authenticated visitors and to
// the login page for everyone else.
func (h *SessionHandler) Entry(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.cookies.CurrentSession(r); err == nil && sess.Authenticated() {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form. An already-authenticated visitor is sent
// straight to the list.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.cookies.CurrentSession(r); err == nil && sess.Authenticated() {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "login", viewmodel.Login{
		Layout: viewmodel.Layout{Title: "Sign in", Flash: render.PopFlash(w, r)},
	})
}

// Login exchanges the submitted credentials for a directory token and opens
// a session. Any failure collapses into one generic message with the email
// retained.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := h.directory.Login(r.Context(), email, password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed authentication attempt")
		h.renderer.Render(w, http.StatusUnauthorized, "login", viewmodel.Login{
			Layout: viewmodel.Layout{
				Title: "Sign in",
				Flash: &viewmodel.Flash{Level: render.FlashError, Message: "Login failed. Please check your credentials."},
			},
			Email: email,
		})
		return
	}

	sess, err := h.sessions.Create(r.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.cookies.IssueCookie(w, sess.ID); err != nil {
		log.Error().Err(err).Msg("Failed to issue session cookie")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Logout clears the session and always lands on the login page, whatever the
// prior state was.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.cookies.CurrentSession(r); err == nil {
		if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID).Msg("Failed to delete session")
		}
	}
	h.cookies.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
