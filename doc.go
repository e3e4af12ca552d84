// Package credkit provides an email/password credential and session core with
// signed session tokens, a pluggable storage contract, and no web-framework or
// transport assumptions.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// credkit is the public surface. It exposes [Engine], [Builder], [Config], the
// [Store] contract, and value types (User, Session, AuthResult,
// MetricsSnapshot). Password derivation lives in the password sub-package, the
// token codec in the token sub-package, and storage backends under stores/.
// The Engine orchestrates them and owns nothing else.
//
// # Validation model
//
// Session validation is two-phase: a stateless HMAC check on the token rejects
// forged or tampered values without touching storage, then the authoritative
// storage lookup enforces existence, expiry, and revocation. Expiry is lazy —
// an expired session row is deleted the first time a validation attempt
// touches it; there is no background sweep.
//
// # What this package must NOT do
//
//   - Implement persistence. The Engine speaks only through [Store]; backends
//     are selected by the caller and injected at build time.
//   - Expose credential hashes. Every [User] returned by an Engine operation
//     carries no hash material.
//   - Hold ambient global state. Configuration is passed explicitly into the
//     Builder; there is no process-wide singleton.
package credkit
