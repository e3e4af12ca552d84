package credkit

import (
	"context"
	"time"
)

// User is the public identity record returned by Engine operations. It never
// carries the credential hash.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// UserRecord is the stored form of a user, including the encoded credential
// hash. It crosses the [Store] boundary but is never returned by the Engine.
type UserRecord struct {
	ID             string
	Email          string
	CredentialHash string
	CreatedAt      time.Time
}

// User strips the credential hash from the record.
func (r UserRecord) User() User {
	return User{
		ID:        r.ID,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

// Session is an authorization record. Possession of a valid signed token for
// it grants the bearer the authenticated identity of UserID until expiry or
// revocation. One user may own many concurrent sessions.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult is returned by [Engine.SignUp] and [Engine.SignIn].
type AuthResult struct {
	User    User
	Session Session
	Token   string
}

// Validation is returned by [Engine.ValidateSession] for a valid session.
type Validation struct {
	User    User
	Session Session
}

// Store is the persistence contract every backend must implement. The Engine
// is the only caller; it always canonicalizes emails before handing them to
// the store.
//
// Absence is reported with [ErrNotFound]. Deletes are idempotent: removing a
// record that does not exist is not an error. Implementations must be safe
// for concurrent use.
//
// The Engine performs a read-then-insert duplicate check during sign-up that
// is advisory only. Backends that can enforce email uniqueness themselves
// (e.g. a unique index) should do so and return [ErrAccountExists] from
// CreateUser on violation; the Engine surfaces it unchanged.
type Store interface {
	// Prepare performs any idempotent readiness work (schema creation,
	// connectivity check). Safe to call multiple times.
	Prepare(ctx context.Context) error

	// CreateUser persists a new user for the canonical email, generating an
	// opaque, non-sequential user id locally.
	CreateUser(ctx context.Context, email, credentialHash string) (UserRecord, error)

	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	GetUserByID(ctx context.Context, id string) (UserRecord, error)

	// CreateSession persists a session under the Engine-minted id.
	CreateSession(ctx context.Context, id, userID string, expiresAt time.Time) (Session, error)

	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUser(ctx context.Context, userID string) error
}
