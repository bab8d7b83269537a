// Package services holds the thin orchestration layer between controllers
// and repositories: the session issuer and the payment flows.
package services

import (
	"context"
	"fmt"

	"github.com/spokeworks/gearhub/app/repositories"
	"github.com/spokeworks/gearhub/pkg/auth"
)

// UserUpserter is the slice of the user repository the issuer needs.
type UserUpserter interface {
	Upsert(ctx context.Context, email string, profile map[string]interface{}) (*repositories.UpsertResult, error)
}

// SessionService establishes or refreshes a session: it binds the asserted
// email to a user record and mints a fresh bearer token for it. There is no
// password check; identity is established out-of-band by the storefront's
// federated login.
type SessionService struct {
	users UserUpserter
}

func NewSessionService(users UserUpserter) *SessionService {
	return &SessionService{users: users}
}

// Issue upserts the user keyed by email with the submitted profile fields
// and returns the write acknowledgment plus a new token. A fresh token is
// minted whether the upsert created or updated the record.
func (s *SessionService) Issue(ctx context.Context, email string, profile map[string]interface{}) (*repositories.UpsertResult, string, error) {
	result, err := s.users.Upsert(ctx, email, profile)
	if err != nil {
		return nil, "", fmt.Errorf("session: upsert user: %w", err)
	}

	token, err := auth.GenerateToken(email)
	if err != nil {
		return nil, "", fmt.Errorf("session: mint token: %w", err)
	}

	return result, token, nil
}
