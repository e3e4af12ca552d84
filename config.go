package credkit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// minSecretLength is the advisory lower bound for the signing secret. Shorter
// secrets are accepted (development convenience) but flagged by [Config.Lint].
const minSecretLength = 32

// Config defines the engine configuration. Instances are configured before
// [Builder.Build] and treated as immutable afterwards.
type Config struct {
	// Secret keys the session token MAC. Required.
	Secret string

	Session       SessionConfig
	EmailPassword EmailPasswordConfig
	Password      PasswordConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session lifetime.
type SessionConfig struct {
	// TTL is either a bare integer (milliseconds) or an <integer><unit>
	// literal with unit in ms, s, m, h, d. See [ParseTTL].
	TTL string
}

/*
====================================
AUTH METHOD CONFIG
====================================
*/

// EmailPasswordConfig enables the email/password authentication method.
// At least one authentication method must be enabled or Build fails.
type EmailPasswordConfig struct {
	Enabled           bool
	MinPasswordLength int
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig carries the argon2id parameters for the credential hasher.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the lock-free metrics registry.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 7-day sessions, OWASP-ish
// argon2id parameters, audit and metrics disabled, email/password disabled
// until the caller opts in.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			TTL: "7d",
		},
		EmailPassword: EmailPasswordConfig{
			Enabled:           false,
			MinPasswordLength: 8,
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

/*
====================================
TTL GRAMMAR
====================================
*/

// ParseTTL parses a session lifetime literal. The grammar is either a bare
// non-negative integer, interpreted as milliseconds, or <integer><unit> with
// unit in {ms, s, m, h, d}. Anything else is an [ErrInvalidTTL]; parsing
// happens at construction time, never per call.
func ParseTTL(literal string) (time.Duration, error) {
	if literal == "" {
		return 0, fmt.Errorf("%w: empty literal", ErrInvalidTTL)
	}

	digits := 0
	for digits < len(literal) && literal[digits] >= '0' && literal[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, literal)
	}

	n, err := strconv.ParseInt(literal[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, literal)
	}

	var unit time.Duration
	switch literal[digits:] {
	case "", "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, literal)
	}

	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidTTL, literal)
	}

	return time.Duration(n) * unit, nil
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first fatal configuration error. It is called by
// [Builder.Build]; a failing config never produces an Engine.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("signing secret required")
	}

	ttl, err := ParseTTL(c.Session.TTL)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return fmt.Errorf("%w: ttl must be > 0", ErrInvalidTTL)
	}

	if !c.EmailPassword.Enabled {
		return errors.New("at least one authentication method must be enabled")
	}
	if c.EmailPassword.MinPasswordLength < 0 {
		return errors.New("EmailPassword MinPasswordLength must be >= 0")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}

/*
====================================
LINT
====================================
*/

// Warning is a non-fatal configuration finding. Warnings never block Build.
type Warning struct {
	Code    string
	Message string
}

// Warnings is the result of [Config.Lint].
type Warnings []Warning

// Codes returns the warning codes in order.
func (ws Warnings) Codes() []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

// Lint reports advisory findings: configurations that work but are
// discouraged outside development. Weak secrets are the canonical case —
// accepted, never rejected.
func (c *Config) Lint() Warnings {
	var ws Warnings

	if c.Secret != "" && len(c.Secret) < minSecretLength {
		ws = append(ws, Warning{
			Code:    "secret_short",
			Message: fmt.Sprintf("signing secret is %d characters; use at least %d outside development", len(c.Secret), minSecretLength),
		})
	}

	if c.EmailPassword.Enabled && c.EmailPassword.MinPasswordLength < 8 {
		ws = append(ws, Warning{
			Code:    "min_password_length_low",
			Message: "minimum password length below 8 characters",
		})
	}

	if ttl, err := ParseTTL(c.Session.TTL); err == nil && ttl > 90*24*time.Hour {
		ws = append(ws, Warning{
			Code:    "session_ttl_long",
			Message: "session TTL exceeds 90 days",
		})
	}

	if !c.Audit.Enabled {
		ws = append(ws, Warning{
			Code:    "audit_disabled",
			Message: "audit events are disabled; authentication activity will not be observable",
		})
	}

	return ws
}
