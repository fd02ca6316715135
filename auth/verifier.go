package auth

import (
	apperrors "chat-gateway/errors"
	stderrors "errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CanonicalTokens is the read side of the canonical token records: the single
// most-recently-issued credential per (user, kind), held in the shared store.
type CanonicalTokens interface {
	GetToken(userID string, kind TokenKind) (string, error)
}

type ITokenVerifier interface {
	Verify(tokenString string, kind TokenKind) (string, error)
}

// Verifier validates a bearer credential in two steps: the cryptographic
// check on the token itself, then a byte-for-byte comparison against the
// canonical record. The second step is what enforces single-active-session
// semantics: a reissued token silently invalidates the one previously handed
// out, including one embedded in an open connection.
type Verifier struct {
	tokens CanonicalTokens
}

func NewVerifier(tokens CanonicalTokens) Verifier {
	return Verifier{tokens: tokens}
}

// Verify returns the user ID carried by the token, or one of
// ErrTokenExpired, ErrTokenMalformed, ErrTokenSuperseded.
func (v Verifier) Verify(tokenString string, kind TokenKind) (string, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
	}

	// A refresh token presented where an access token is expected (or the
	// other way around) never matches the canonical record of that kind.
	if claims.Kind != kind {
		return "", apperrors.ErrTokenMalformed
	}

	canonical, err := v.tokens.GetToken(claims.UserID, kind)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			// No canonical record left: the session lifetime elapsed or the
			// record was replaced and expired. Either way this token is no
			// longer the live one.
			return "", apperrors.ErrTokenSuperseded
		}
		return "", err
	}

	if canonical != tokenString {
		return "", apperrors.ErrTokenSuperseded
	}

	return claims.UserID, nil
}
