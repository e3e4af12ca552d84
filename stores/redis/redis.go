// Package redis provides a credkit.Store backed by Redis. Users and sessions
// are hashes, the canonical-email index is a plain string key claimed with
// SETNX, and each user's live session ids sit in a set for bulk revocation.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/credkit/credkit"
)

const defaultPrefix = "ck"

// Store is a Redis storage backend. Safe for concurrent use; all
// synchronization is Redis's own.
type Store struct {
	client *goredis.Client
	prefix string
}

var _ credkit.Store = (*Store)(nil)

// New wraps an existing client. An empty prefix defaults to "ck".
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) userKey(id string) string         { return s.prefix + ":user:" + id }
func (s *Store) emailKey(email string) string     { return s.prefix + ":email:" + email }
func (s *Store) sessionKey(id string) string      { return s.prefix + ":session:" + id }
func (s *Store) userSessionsKey(id string) string { return s.prefix + ":usersessions:" + id }

// Prepare verifies connectivity. Redis needs no schema, so a ping is the
// whole readiness step; calling it repeatedly has no side effects.
func (s *Store) Prepare(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// CreateUser claims the email index key with SETNX before writing the user
// hash, so two concurrent sign-ups for the same canonical email cannot both
// succeed.
func (s *Store) CreateUser(ctx context.Context, email, credentialHash string) (credkit.UserRecord, error) {
	rec := credkit.UserRecord{
		ID:             uuid.NewString(),
		Email:          email,
		CredentialHash: credentialHash,
		CreatedAt:      time.Now().UTC(),
	}

	claimed, err := s.client.SetNX(ctx, s.emailKey(email), rec.ID, 0).Result()
	if err != nil {
		return credkit.UserRecord{}, err
	}
	if !claimed {
		return credkit.UserRecord{}, credkit.ErrAccountExists
	}

	err = s.client.HSet(ctx, s.userKey(rec.ID), map[string]any{
		"id":              rec.ID,
		"email":           rec.Email,
		"credential_hash": rec.CredentialHash,
		"created_at":      rec.CreatedAt.UnixMilli(),
	}).Err()
	if err != nil {
		return credkit.UserRecord{}, err
	}

	return rec, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (credkit.UserRecord, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if err == goredis.Nil {
		return credkit.UserRecord{}, credkit.ErrNotFound
	}
	if err != nil {
		return credkit.UserRecord{}, err
	}

	return s.GetUserByID(ctx, id)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (credkit.UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.userKey(id)).Result()
	if err != nil {
		return credkit.UserRecord{}, err
	}
	if len(fields) == 0 {
		return credkit.UserRecord{}, credkit.ErrNotFound
	}

	createdAt, err := parseUnixMilli(fields["created_at"])
	if err != nil {
		return credkit.UserRecord{}, err
	}

	return credkit.UserRecord{
		ID:             fields["id"],
		Email:          fields["email"],
		CredentialHash: fields["credential_hash"],
		CreatedAt:      createdAt,
	}, nil
}

func (s *Store) CreateSession(ctx context.Context, id, userID string, expiresAt time.Time) (credkit.Session, error) {
	sess := credkit.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.sessionKey(id), map[string]any{
		"id":         sess.ID,
		"user_id":    sess.UserID,
		"expires_at": sess.ExpiresAt.UnixMilli(),
		"created_at": sess.CreatedAt.UnixMilli(),
	})
	pipe.SAdd(ctx, s.userSessionsKey(userID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return credkit.Session{}, err
	}

	return sess, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (credkit.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.sessionKey(id)).Result()
	if err != nil {
		return credkit.Session{}, err
	}
	if len(fields) == 0 {
		return credkit.Session{}, credkit.ErrNotFound
	}

	expiresAt, err := parseUnixMilli(fields["expires_at"])
	if err != nil {
		return credkit.Session{}, err
	}
	createdAt, err := parseUnixMilli(fields["created_at"])
	if err != nil {
		return credkit.Session{}, err
	}

	return credkit.Session{
		ID:        fields["id"],
		UserID:    fields["user_id"],
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	userID, err := s.client.HGet(ctx, s.sessionKey(id), "user_id").Result()
	if err == goredis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.sessionKey(id))
	pipe.SRem(ctx, s.userSessionsKey(userID), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) DeleteSessionsByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, s.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.sessionKey(id))
	}
	pipe.Del(ctx, s.userSessionsKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

func parseUnixMilli(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
