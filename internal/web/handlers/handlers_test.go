package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avolkov/userboard/internal/models"
	"github.com/avolkov/userboard/internal/session"
	"github.com/avolkov/userboard/internal/web/render"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeDirectory implements directory.Client with canned data, recording the
// operations performed on it.
type fakeDirectory struct {
	loginToken string
	loginErr   error
	pages      map[int]models.UserPage
	totalPages int
	listErr    error
	users      map[int]models.User
	getErr     error
	updateErr  error
	deleteErr  error

	calls []string
}

func (f *fakeDirectory) Login(_ context.Context, email, password string) (string, error) {
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeDirectory) ListUsers(_ context.Context, page int) (models.UserPage, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return models.UserPage{}, f.listErr
	}
	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	// Out-of-range pages still report the real bound, like the directory.
	return models.UserPage{Page: page, TotalPages: f.totalPages}, nil
}

func (f *fakeDirectory) GetUser(_ context.Context, id int) (models.User, error) {
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	return f.users[id], nil
}

func (f *fakeDirectory) UpdateUser(_ context.Context, id int, draft models.FormDraft) (models.User, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	return models.User{ID: id, FirstName: draft.FirstName, LastName: draft.LastName, Email: draft.Email}, nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id int) error {
	f.calls = append(f.calls, "delete")
	return f.deleteErr
}

// fakeSessions is an in-memory session.StoreProvider.
type fakeSessions struct {
	next     int
	sessions map[string]session.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]session.Session)}
}

func (f *fakeSessions) Create(_ context.Context, token string) (session.Session, error) {
	f.next++
	sess := session.Session{ID: "sess-" + string(rune('0'+f.next)), Token: token}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (session.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	renderer, err := render.New()
	require.NoError(t, err)
	return renderer
}

// userRouter mounts the user handler on the same routes the real router
// uses, minus the session guard, which has its own tests.
func userRouter(t *testing.T, dir *fakeDirectory) *chi.Mux {
	t.Helper()
	h := NewUserHandler(dir, newRenderer(t))

	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/edit", h.Edit)
		r.Post("/", h.Update)
		r.Post("/delete", h.Delete)
	})
	return r
}

func doRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func newForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "userboard_flash" && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}
