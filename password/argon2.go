package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16

	// maxStoredKeyLength bounds the decoded key half during verification so a
	// hostile stored hash cannot force an oversized derivation.
	maxStoredKeyLength = 1024

	delimiter = ":"
)

// Config holds the argon2id parameters. Instances are validated once by
// [NewHasher] and treated as immutable afterwards.
type Config struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Hasher derives and verifies argon2id credential hashes. Safe for concurrent
// use.
type Hasher struct {
	config Config
}

// NewHasher validates cfg against the minimum parameter floor and returns a
// ready Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &Hasher{config: cfg}, nil
}

// Hash derives a key from password with a fresh random salt and returns the
// hex(salt):hex(key) encoding. Any failure of the random source surfaces as
// an error.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.config.Time,
		h.config.Memory,
		h.config.Parallelism,
		h.config.KeyLength,
	)

	return hex.EncodeToString(salt) + delimiter + hex.EncodeToString(key), nil
}

// Verify re-derives the key from password and the stored salt and compares it
// to the stored key in constant time. Malformed input is a verification
// failure, never an error: the caller sees exactly the same control flow as a
// wrong password.
func (h *Hasher) Verify(password, encodedHash string) bool {
	saltHex, keyHex, found := strings.Cut(encodedHash, delimiter)
	if !found || saltHex == "" || keyHex == "" {
		return false
	}
	if strings.Contains(keyHex, delimiter) {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	stored, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}
	if len(stored) == 0 || len(stored) > maxStoredKeyLength {
		return false
	}

	// Derive at the stored key's width so the comparison is always
	// equal-length; subtle.ConstantTimeCompare then runs the full buffer.
	derived := argon2.IDKey(
		[]byte(password),
		salt,
		h.config.Time,
		h.config.Memory,
		h.config.Parallelism,
		uint32(len(stored)),
	)

	return subtle.ConstantTimeCompare(derived, stored) == 1
}

func validateConfig(cfg Config) error {
	if cfg.Memory < minMemoryKB {
		return errors.New("password memory must be >= 8192 KB")
	}
	if cfg.Time < minTimeCost {
		return errors.New("password time must be >= 1")
	}
	if cfg.Parallelism < minParallelism {
		return errors.New("password parallelism must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return errors.New("password salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return errors.New("password key length must be >= 16")
	}

	return nil
}
