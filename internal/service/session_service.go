package service

import (
	"errors"

	"account-service/internal/token"
)

// ErrUnauthorized is returned for any token failure on refresh or access
// verification; signature and expiry problems are deliberately not distinguished.
var ErrUnauthorized = errors.New("unauthorized")

// SessionService orchestrates token issuance and refresh rotation.
type SessionService interface {
	IssueSession(userID string) (token.Pair, error)
	Refresh(refreshToken string) (string, token.Pair, error)
	VerifyAccess(accessToken string) (string, error)
}

type sessionService struct {
	tokens *token.Issuer
}

func NewSessionService(tokens *token.Issuer) SessionService {
	return &sessionService{tokens: tokens}
}

func (s *sessionService) IssueSession(userID string) (token.Pair, error) {
	return s.tokens.IssuePair(userID)
}

// Refresh validates a refresh-class token and rotates, issuing a replacement
// pair. The previous refresh token is not revoked server-side; rotation only
// replaces what the client holds.
func (s *sessionService) Refresh(refreshToken string) (string, token.Pair, error) {
	userID, err := s.tokens.Verify(refreshToken, token.UseRefresh)
	if err != nil {
		return "", token.Pair{}, ErrUnauthorized
	}

	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return "", token.Pair{}, err
	}

	return userID, pair, nil
}

func (s *sessionService) VerifyAccess(accessToken string) (string, error) {
	userID, err := s.tokens.Verify(accessToken, token.UseAccess)
	if err != nil {
		return "", ErrUnauthorized
	}
	return userID, nil
}
