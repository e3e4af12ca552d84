package credkit

import (
	"context"
	"errors"
)

// SignIn verifies the credentials and mints a fresh session. Unknown emails
// and wrong passwords both fail with [ErrInvalidCredentials] so callers
// cannot enumerate users. Existing sessions are untouched — sessions are
// additive, never exclusive.
func (e *Engine) SignIn(ctx context.Context, email, plaintext string) (*AuthResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	if !e.config.EmailPassword.Enabled {
		return nil, ErrAuthMethodDisabled
	}

	email = CanonicalEmail(email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	rec, err := e.store.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, "", "", ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !e.hasher.Verify(plaintext, rec.CredentialHash) {
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, rec.ID, "", ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}

	sess, tok, err := e.mintSession(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricSignInSuccess)
	e.emitAudit(ctx, auditEventSignInSuccess, true, rec.ID, sess.ID, nil, nil)

	return &AuthResult{
		User:    rec.User(),
		Session: sess,
		Token:   tok,
	}, nil
}
