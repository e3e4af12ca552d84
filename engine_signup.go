package credkit

import (
	"context"
	"errors"
)

// SignUp registers a new user under the canonical form of email and signs
// them in, returning the user, the fresh session, and its signed token.
//
// The duplicate check here is read-then-insert and therefore advisory under
// concurrency; backends with a uniqueness constraint close the race by
// returning [ErrAccountExists] from CreateUser, which is surfaced unchanged.
func (e *Engine) SignUp(ctx context.Context, email, plaintext string) (*AuthResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	if !e.config.EmailPassword.Enabled {
		return nil, ErrAuthMethodDisabled
	}

	email = CanonicalEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	if len(plaintext) < e.config.EmailPassword.MinPasswordLength {
		e.emitAudit(ctx, auditEventSignUpRejected, false, "", "", ErrPasswordPolicy, nil)
		return nil, ErrPasswordPolicy
	}

	existing, err := e.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		e.metricInc(MetricSignUpDuplicate)
		e.emitAudit(ctx, auditEventSignUpDuplicate, false, existing.ID, "", ErrAccountExists, nil)
		return nil, ErrAccountExists
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	hash, err := e.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	rec, err := e.store.CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			// Lost the race to a concurrent sign-up; the backend's
			// uniqueness constraint is authoritative.
			e.metricInc(MetricSignUpDuplicate)
			e.emitAudit(ctx, auditEventSignUpDuplicate, false, "", "", ErrAccountExists, nil)
			return nil, ErrAccountExists
		}
		return nil, err
	}

	sess, tok, err := e.mintSession(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricSignUpSuccess)
	e.emitAudit(ctx, auditEventSignUpSuccess, true, rec.ID, sess.ID, nil, nil)

	return &AuthResult{
		User:    rec.User(),
		Session: sess,
		Token:   tok,
	}, nil
}
