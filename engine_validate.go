package credkit

import (
	"context"
	"errors"
	"time"

	"github.com/credkit/credkit/token"
)

// ValidateSession resolves a signed token to its user and session.
//
// Every invalid outcome — forged or malformed token, unknown session,
// expired session, orphaned session — returns (nil, nil): callers cannot
// distinguish them. Only storage faults surface as errors, unchanged.
//
// Expiry and orphan cleanup are lazy: the offending row is deleted here, on
// the validation attempt that observes it, and nowhere else.
func (e *Engine) ValidateSession(ctx context.Context, signedToken string) (*Validation, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()

	// Phase one: stateless. A bad signature never reaches storage.
	sessionID, ok := token.Verify(signedToken, e.secret)
	if !ok {
		e.metricInc(MetricValidateRejected)
		e.emitAudit(ctx, auditEventSessionRejected, false, "", "", nil, reasonMetadata(rejectReasonBadSignature))
		return nil, nil
	}

	// Phase two: authoritative.
	sess, err := e.store.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		e.metricInc(MetricValidateNotFound)
		e.emitAudit(ctx, auditEventSessionRejected, false, "", sessionID, nil, reasonMetadata(rejectReasonNotFound))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		if err := e.store.DeleteSession(ctx, sess.ID); err != nil {
			return nil, err
		}
		e.metricInc(MetricValidateExpired)
		e.emitAudit(ctx, auditEventSessionRejected, false, sess.UserID, sess.ID, nil, reasonMetadata(rejectReasonExpired))
		return nil, nil
	}

	rec, err := e.store.GetUserByID(ctx, sess.UserID)
	if errors.Is(err, ErrNotFound) {
		if err := e.store.DeleteSession(ctx, sess.ID); err != nil {
			return nil, err
		}
		e.metricInc(MetricValidateOrphaned)
		e.emitAudit(ctx, auditEventSessionRejected, false, sess.UserID, sess.ID, nil, reasonMetadata(rejectReasonOrphaned))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricValidateSuccess)
	if e.metrics != nil {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}
	e.emitAudit(ctx, auditEventSessionValid, true, rec.ID, sess.ID, nil, nil)

	return &Validation{
		User:    rec.User(),
		Session: sess,
	}, nil
}
