// Package postgres provides a credkit.Store backed by PostgreSQL via pgx.
// Email uniqueness is enforced by a unique index, closing the sign-up race
// the engine's advisory pre-check leaves open.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credkit/credkit"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    credential_hash TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_user_id_idx ON sessions (user_id);
`

// Pool is the subset of pgxpool.Pool the store uses. pgxmock's PgxPoolIface
// satisfies it, so the store is testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL storage backend.
type Store struct {
	pool Pool
}

var _ credkit.Store = (*Store)(nil)

// New wraps an existing pool (or mock).
func New(pool Pool) *Store {
	return &Store{pool: pool}
}

// Open connects a new pgx pool for dsn. The caller owns the pool's lifetime
// through [Store.Close].
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool when the store owns one.
func (s *Store) Close() {
	if pool, ok := s.pool.(*pgxpool.Pool); ok {
		pool.Close()
	}
}

// Prepare creates the schema. Every statement is IF NOT EXISTS, so repeated
// calls have no further effect.
func (s *Store) Prepare(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaDDL)
	return err
}

func (s *Store) CreateUser(ctx context.Context, email, credentialHash string) (credkit.UserRecord, error) {
	rec := credkit.UserRecord{
		ID:             uuid.NewString(),
		Email:          email,
		CredentialHash: credentialHash,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, credential_hash, created_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Email, rec.CredentialHash, rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return credkit.UserRecord{}, credkit.ErrAccountExists
		}
		return credkit.UserRecord{}, err
	}

	return rec, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (credkit.UserRecord, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, credential_hash, created_at FROM users WHERE email = $1`,
		email,
	))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (credkit.UserRecord, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, credential_hash, created_at FROM users WHERE id = $1`,
		id,
	))
}

func (s *Store) scanUser(row pgx.Row) (credkit.UserRecord, error) {
	var rec credkit.UserRecord
	err := row.Scan(&rec.ID, &rec.Email, &rec.CredentialHash, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return credkit.UserRecord{}, credkit.ErrNotFound
	}
	if err != nil {
		return credkit.UserRecord{}, err
	}
	return rec, nil
}

func (s *Store) CreateSession(ctx context.Context, id, userID string, expiresAt time.Time) (credkit.Session, error) {
	sess := credkit.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.UserID, sess.ExpiresAt, sess.CreatedAt,
	)
	if err != nil {
		return credkit.Session{}, err
	}

	return sess, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (credkit.Session, error) {
	var sess credkit.Session
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`,
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return credkit.Session{}, credkit.ErrNotFound
	}
	if err != nil {
		return credkit.Session{}, err
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteSessionsByUser(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
