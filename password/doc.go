// Package password implements credential hashing and verification with
// Argon2id.
//
// # Output format
//
// Hashes are encoded as two hex halves joined by a colon:
//
//	<hex(salt)>:<hex(derivedKey)>
//
// Hex never contains the delimiter, so splitting on the first colon is
// unambiguous. Derivation parameters ride on the [Hasher], not the encoded
// string; changing them invalidates previously stored hashes.
//
// # Verification contract
//
// [Hasher.Verify] returns a bare bool. Every fault — missing delimiter, empty
// halves, bad hex, absurd key sizes — degrades to false. A caller can never
// distinguish "malformed hash" from "wrong password" through control flow,
// and the derived-key comparison is constant-time.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive
//     hashes.
//   - Import any other credkit package.
//   - Enforce password policy (length, reuse); that belongs to the Engine.
package password
