package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/credkit/credkit"
)

func TestCreateUserAndLookups(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Prepare(ctx); err != nil {
		t.Fatalf("Prepare error: %v", err)
	}

	rec, err := s.CreateUser(ctx, "alice@example.com", "salt:key")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated user id")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if byEmail.ID != rec.ID || byEmail.CredentialHash != "salt:key" {
		t.Fatalf("unexpected record: %+v", byEmail)
	}

	byID, err := s.GetUserByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", byID.Email)
	}
}

func TestLookupsMissReturnNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, credkit.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByID(ctx, "missing"); !errors.Is(err, credkit.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetSession(ctx, "missing"); !errors.Is(err, credkit.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "dup@example.com", "h1"); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if _, err := s.CreateUser(ctx, "dup@example.com", "h2"); !errors.Is(err, credkit.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestCreateUserConcurrentDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateUser(ctx, "race@example.com", "h")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, credkit.ErrAccountExists) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).UTC()
	sess, err := s.CreateSession(ctx, "sid-1", "user-1", expires)
	if err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}
	if sess.ID != "sid-1" || sess.UserID != "user-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !sess.ExpiresAt.Equal(expires) {
		t.Fatalf("expiry mismatch: %v != %v", sess.ExpiresAt, expires)
	}

	got, err := s.GetSession(ctx, "sid-1")
	if err != nil {
		t.Fatalf("GetSession error: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("unexpected session owner: %s", got.UserID)
	}

	if err := s.DeleteSession(ctx, "sid-1"); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}
	if _, err := s.GetSession(ctx, "sid-1"); !errors.Is(err, credkit.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := s.DeleteSession(ctx, "sid-1"); err != nil {
		t.Fatalf("repeat DeleteSession error: %v", err)
	}
}

func TestDeleteSessionsByUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	expires := time.Now().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := s.CreateSession(ctx, fmt.Sprintf("a-%d", i), "user-a", expires); err != nil {
			t.Fatalf("CreateSession error: %v", err)
		}
	}
	if _, err := s.CreateSession(ctx, "b-0", "user-b", expires); err != nil {
		t.Fatalf("CreateSession error: %v", err)
	}

	if err := s.DeleteSessionsByUser(ctx, "user-a"); err != nil {
		t.Fatalf("DeleteSessionsByUser error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.GetSession(ctx, fmt.Sprintf("a-%d", i)); !errors.Is(err, credkit.ErrNotFound) {
			t.Fatalf("expected user-a session %d gone, got %v", i, err)
		}
	}
	if _, err := s.GetSession(ctx, "b-0"); err != nil {
		t.Fatalf("user-b session must survive: %v", err)
	}

	// No sessions left for the user is not an error.
	if err := s.DeleteSessionsByUser(ctx, "user-a"); err != nil {
		t.Fatalf("repeat DeleteSessionsByUser error: %v", err)
	}
}
