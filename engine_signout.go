package credkit

import (
	"context"

	"github.com/credkit/credkit/token"
)

// SignOut revokes one session. It accepts either a signed token or a raw
// session id: a value that verifies as a token yields its embedded id, any
// other value is treated as the id itself. Deletion is unconditional and
// idempotent — signing out a session that does not exist is not an error.
func (e *Engine) SignOut(ctx context.Context, tokenOrID string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	sessionID := tokenOrID
	if decoded, ok := token.Verify(tokenOrID, e.secret); ok {
		sessionID = decoded
	}

	err := e.store.DeleteSession(ctx, sessionID)
	if err == nil {
		e.metricInc(MetricSignOut)
	}
	e.emitAudit(ctx, auditEventSignOutSession, err == nil, "", sessionID, err, nil)
	return err
}

// SignOutAll revokes every session owned by userID. Zero matches is not an
// error. A sign-in racing this call may mint a session the delete never
// sees; that race is accepted and documented, not locked away.
func (e *Engine) SignOutAll(ctx context.Context, userID string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	err := e.store.DeleteSessionsByUser(ctx, userID)
	if err == nil {
		e.metricInc(MetricSignOutAll)
	}
	e.emitAudit(ctx, auditEventSignOutAll, err == nil, userID, "", err, nil)
	return err
}
