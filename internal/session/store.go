// Package session persists login sessions. A session is nothing more than an
// opaque token handed out by the remote directory: presence of a non-empty
// token is what makes a session authenticated. The token is deliberately
// never re-verified against the directory and never expires locally, which
// mirrors the trust-on-presence policy of the original client; the signed
// cookie wrapping the session ID is what keeps browsers from minting one.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Session is one logged-in client.
type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
}

// Authenticated reports whether the session counts as logged in.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// StoreProvider defines the interface for session storage.
type StoreProvider interface {
	Create(ctx context.Context, token string) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// Store provides session persistence over SQLite, so sessions survive a
// process restart.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create persists a new session holding the given directory token.
func (s *Store) Create(ctx context.Context, token string) (Session, error) {
	sess := Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO sessions(id, token, created_at) VALUES(?, ?, ?)")
	if err != nil {
		return Session{}, err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, sess.ID, sess.Token, sess.CreatedAt); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get retrieves a session by ID.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	row := s.db.QueryRowContext(ctx, "SELECT id, token, created_at FROM sessions WHERE id = ?", id)
	err := row.Scan(&sess.ID, &sess.Token, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return sess, nil
}

// Delete removes a session. Deleting a session that does not exist is not an
// error; logout always succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	return err
}
