package internaldefs

import (
	credkit "github.com/credkit/credkit"
)

// CounterDef binds one engine counter to its exported name and help text.
type CounterDef struct {
	ID   credkit.MetricID
	Name string
	Help string
}

// HistogramDef binds one engine histogram to its exported name and help text.
type HistogramDef struct {
	ID   credkit.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: credkit.MetricSignUpSuccess, Name: "credkit_signup_success_total", Help: "Completed sign-ups."},
	{ID: credkit.MetricSignUpDuplicate, Name: "credkit_signup_duplicate_total", Help: "Sign-ups rejected for an existing email."},
	{ID: credkit.MetricSignInSuccess, Name: "credkit_signin_success_total", Help: "Completed sign-ins."},
	{ID: credkit.MetricSignInFailure, Name: "credkit_signin_failure_total", Help: "Sign-ins rejected with invalid credentials."},
	{ID: credkit.MetricValidateSuccess, Name: "credkit_validate_success_total", Help: "Validations that returned a live session."},
	{ID: credkit.MetricValidateRejected, Name: "credkit_validate_rejected_total", Help: "Tokens rejected by the stateless signature check."},
	{ID: credkit.MetricValidateNotFound, Name: "credkit_validate_not_found_total", Help: "Validations whose session id had no stored row."},
	{ID: credkit.MetricValidateExpired, Name: "credkit_validate_expired_total", Help: "Validations that lazily deleted an expired session."},
	{ID: credkit.MetricValidateOrphaned, Name: "credkit_validate_orphaned_total", Help: "Validations that deleted a session with no owning user."},
	{ID: credkit.MetricSessionCreated, Name: "credkit_session_created_total", Help: "Persisted sessions."},
	{ID: credkit.MetricSignOut, Name: "credkit_signout_total", Help: "Single-session sign-out operations."},
	{ID: credkit.MetricSignOutAll, Name: "credkit_signout_all_total", Help: "Sign-out-all operations."},
}

// HistogramDefs lists every exported histogram in render order.
var HistogramDefs = []HistogramDef{
	{ID: credkit.MetricValidateLatency, Name: "credkit_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, matching the
// engine's fixed millisecond buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix carries instrument-name-safe forms of the bounds for
// exporters that cannot use label syntax.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exporters expose.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
