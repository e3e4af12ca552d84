package credkit

import "errors"

var (
	// ErrAccountExists is returned by SignUp when a user with the same
	// canonical email already exists.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidCredentials is returned by SignIn for both an unknown email
	// and a wrong password; callers cannot distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidEmail is returned when an email canonicalizes to the empty
	// string.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrPasswordPolicy is returned by SignUp when the password is shorter
	// than the configured minimum length.
	ErrPasswordPolicy = errors.New("password policy violation")

	// ErrAuthMethodDisabled is returned when an operation belongs to an
	// authentication method that is not enabled in the configuration.
	ErrAuthMethodDisabled = errors.New("authentication method disabled")

	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or incompletely constructed Engine.
	ErrEngineNotReady = errors.New("engine not ready")

	// ErrInvalidTTL is returned at construction time when the session TTL is
	// not a bare millisecond count or an <integer><unit> literal with unit in
	// ms, s, m, h, d.
	ErrInvalidTTL = errors.New("invalid session ttl")

	// ErrNotFound is the absence sentinel of the [Store] contract. Backends
	// return it (or an error wrapping it) whenever a requested record does
	// not exist.
	ErrNotFound = errors.New("record not found")
)
