package credkit

import (
	"context"
	"strings"
	"time"

	"github.com/credkit/credkit/internal"
	"github.com/credkit/credkit/password"
	"github.com/credkit/credkit/token"
)

// Engine orchestrates credential verification and the session lifecycle
// against an injected [Store]. It holds no mutable shared state after Build
// (the audit dispatcher and metrics registry synchronize internally), so
// concurrent calls are independent except where they touch the same storage
// records.
type Engine struct {
	config   Config
	store    Store
	hasher   *password.Hasher
	secret   []byte
	ttl      time.Duration
	audit    *auditDispatcher
	metrics  *Metrics
	warnings Warnings
}

// Close shuts down the audit dispatcher after draining buffered events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Warnings returns the advisory configuration findings recorded at build
// time (see [Config.Lint]).
func (e *Engine) Warnings() Warnings {
	if e == nil {
		return nil
	}
	return e.warnings
}

// AuditDropped reports how many audit events were discarded under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// CanonicalEmail returns the canonical form of an email address: trimmed and
// lower-cased. Every lookup, comparison, and uniqueness decision in the
// engine runs on this form.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mintSession creates and persists a fresh session for userID and signs its
// token. The id comes from crypto/rand; uniqueness is not re-checked.
func (e *Engine) mintSession(ctx context.Context, userID string) (Session, string, error) {
	sid, err := internal.NewSessionID()
	if err != nil {
		return Session{}, "", err
	}

	sess, err := e.store.CreateSession(ctx, sid.String(), userID, time.Now().Add(e.ttl))
	if err != nil {
		return Session{}, "", err
	}

	e.metricInc(MetricSessionCreated)

	return sess, token.Sign(sess.ID, e.secret), nil
}
