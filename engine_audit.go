package credkit

import (
	"context"
	"time"
)

const (
	auditEventSignUpSuccess   = "signup_success"
	auditEventSignUpDuplicate = "signup_duplicate"
	auditEventSignUpRejected  = "signup_rejected"
	auditEventSignInSuccess   = "signin_success"
	auditEventSignInFailure   = "signin_failure"
	auditEventSessionValid    = "session_validated"
	auditEventSessionRejected = "session_rejected"
	auditEventSignOutSession  = "signout_session"
	auditEventSignOutAll      = "signout_all"
)

// Rejection reasons recorded in session_rejected metadata. Callers of
// ValidateSession never see these distinctions; the audit trail does.
const (
	rejectReasonBadSignature = "bad_signature"
	rejectReasonNotFound     = "not_found"
	rejectReasonExpired      = "expired"
	rejectReasonOrphaned     = "orphaned"
)

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, userID, sessionID string, err error, metadataFn func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		SessionID: sessionID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if metadataFn != nil {
		event.Metadata = metadataFn()
	}

	e.audit.Emit(ctx, event)
}

func reasonMetadata(reason string) func() map[string]string {
	return func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	}
}
