// Package internal contains helper utilities that are intentionally private
// to credkit, currently secure session-id generation.
//
// # What this package must NOT do
//
//   - Export types that appear in the public credkit API.
package internal
