// Package token implements the signed session token codec.
//
// # Wire format
//
// A token is the ASCII string
//
//	<sessionID>.<signature>
//
// where signature is the base64url (no padding) encoding of
// HMAC-SHA256(secret, sessionID). The session id rides in the clear; the
// signature binds it to the secret so a client cannot forge or enumerate
// valid ids. Signing is deterministic: the same (id, secret) pair always
// yields the same token.
//
// # Verification contract
//
// [Verify] is stateless and O(1). It requires exactly one dot producing two
// non-empty segments, recomputes the expected signature, rejects immediately
// on encoded-length mismatch (length is public — the token itself carries
// it), and otherwise compares in constant time. A successful verification is
// a cheap fast-reject layer only; existence, expiry, and revocation remain
// the storage lookup's job.
//
// # What this package must NOT do
//
//   - Touch storage or the clock.
//   - Import any other credkit package.
package token
