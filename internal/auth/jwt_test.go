package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avolkov/userboard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sessions map[string]session.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]session.Session)}
}

func (f *fakeStore) Create(_ context.Context, token string) (session.Session, error) {
	sess := session.Session{ID: "sess-1", Token: token}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (session.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func loginRecorder(t *testing.T, m *Manager, sessionID string) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, m.IssueCookie(rr, sessionID))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestRequireSessionPassesAuthenticatedRequests(t *testing.T) {
	store := newFakeStore()
	sess, err := store.Create(context.Background(), "QpwL5tke4Pnpja7X4")
	require.NoError(t, err)

	m := NewManager("test-key", store, false)
	cookie := loginRecorder(t, m, sess.ID)

	var seen session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := FromContext(r.Context())
		require.True(t, ok)
		seen = got
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	m.RequireSession(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, sess.ID, seen.ID)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", seen.Token)
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	m := NewManager("test-key", newFakeStore(), false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for unauthenticated requests")
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()
	m.RequireSession(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRequireSessionRejectsTamperedCookie(t *testing.T) {
	store := newFakeStore()
	sess, err := store.Create(context.Background(), "QpwL5tke4Pnpja7X4")
	require.NoError(t, err)

	issuer := NewManager("test-key", store, false)
	cookie := loginRecorder(t, issuer, sess.ID)

	// Same store, different signing key: the cookie no longer verifies.
	verifier := NewManager("other-key", store, false)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	verifier.RequireSession(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRequireSessionRedirectsWhenSessionDeleted(t *testing.T) {
	store := newFakeStore()
	sess, err := store.Create(context.Background(), "QpwL5tke4Pnpja7X4")
	require.NoError(t, err)

	m := NewManager("test-key", store, false)
	cookie := loginRecorder(t, m, sess.ID)

	// Logout happened elsewhere; the cookie still looks fine but the
	// session row is gone.
	require.NoError(t, store.Delete(context.Background(), sess.ID))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	m.RequireSession(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
}
