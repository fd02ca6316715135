package services

import (
	"chat-gateway/auth"
	"chat-gateway/errors"
	"chat-gateway/repositories"
	"time"
)

type ISessionService interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)
}

// SessionService issues tokens on behalf of the REST login/registration/
// refresh handlers. Issuing a token overwrites the canonical record of that
// kind, which silently invalidates the token previously handed out, even one
// embedded in an open connection that has not re-authenticated yet.
type SessionService struct {
	tokens          repositories.ITokenRepository
	accessDuration  time.Duration
	refreshDuration time.Duration
}

func NewSessionService(tokens repositories.ITokenRepository,
	accessDuration, refreshDuration time.Duration) SessionService {
	return SessionService{
		tokens:          tokens,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}
}

func (s SessionService) IssueAccess(userID string) (string, error) {
	return s.issue(userID, auth.KindAccess, s.accessDuration)
}

func (s SessionService) IssueRefresh(userID string) (string, error) {
	return s.issue(userID, auth.KindRefresh, s.refreshDuration)
}

func (s SessionService) issue(userID string, kind auth.TokenKind, duration time.Duration) (string, error) {
	token, err := auth.GenerateToken(userID, kind, duration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	// The record's TTL matches the token lifetime, so it expires passively
	// together with the credential it canonicalizes.
	if err := s.tokens.SaveToken(userID, kind, token, duration); err != nil {
		return "", err
	}

	return token, nil
}
