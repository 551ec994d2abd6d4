package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avolkov/userboard/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// CookieName is the browser cookie carrying the signed session reference.
const CookieName = "userboard_session"

const cookieTTL = 24 * time.Hour

// Claims defines the JWT claims structure. The cookie holds only a session
// ID; the directory token itself stays server-side.
type Claims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

type contextKey string

// SessionKey is the context key for the authenticated session.
const SessionKey = contextKey("session")

// Manager issues and validates session cookies and gates authenticated pages.
type Manager struct {
	key    []byte
	store  session.StoreProvider
	secure bool
}

// NewManager creates a Manager signing with the given key. secure controls
// the Secure cookie flag.
func NewManager(key string, store session.StoreProvider, secure bool) *Manager {
	return &Manager{key: []byte(key), store: store, secure: secure}
}

// generate creates a signed JWT referencing a session.
func (m *Manager) generate(sessionID string) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// validate parses and validates a JWT string.
func (m *Manager) validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// IssueCookie sets the signed session cookie on the response.
func (m *Manager) IssueCookie(w http.ResponseWriter, sessionID string) error {
	token, err := m.generate(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(cookieTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return nil
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// CurrentSession resolves the request's cookie to a stored session. It
// returns session.ErrNotFound for a missing or invalid cookie as well as for
// an unknown session ID.
func (m *Manager) CurrentSession(r *http.Request) (session.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}, session.ErrNotFound
	}

	claims, err := m.validate(cookie.Value)
	if err != nil {
		return session.Session{}, session.ErrNotFound
	}

	return m.store.Get(r.Context(), claims.SessionID)
}

// RequireSession creates a middleware protecting authenticated pages. An
// unauthenticated visitor is redirected to the login page before any
// directory call is made.
func (m *Manager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.CurrentSession(r)
		if err != nil || !sess.Authenticated() {
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("Failed to load session")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session stored by RequireSession.
func FromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(session.Session)
	return sess, ok
}
