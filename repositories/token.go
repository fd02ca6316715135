//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=../mocks/mock_token_repository.go -package=mocks
package repositories

import (
	"chat-gateway/auth"
	apperrors "chat-gateway/errors"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type ITokenRepository interface {
	SaveToken(userID string, kind auth.TokenKind, token string, ttl time.Duration) error
	GetToken(userID string, kind auth.TokenKind) (string, error)
}

// TokenRepository holds the canonical token records in BadgerDB. Exactly one
// record exists per (user, kind); SaveToken overwrites the previous one, which
// is the whole session-invalidation mechanism. Records carry a native Badger
// TTL equal to the configured token lifetime, so they expire passively.
type TokenRepository struct {
	db *badger.DB
}

func NewTokenRepository(db *badger.DB) TokenRepository {
	return TokenRepository{db: db}
}

func tokenKey(userID string, kind auth.TokenKind) []byte {
	return []byte(fmt.Sprintf("token:%s:%s", userID, kind))
}

// SaveToken records token as the canonical credential for (userID, kind).
func (r TokenRepository) SaveToken(userID string, kind auth.TokenKind, token string, ttl time.Duration) error {
	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(tokenKey(userID, kind), []byte(token)).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// GetToken returns the canonical credential for (userID, kind), or
// ErrNotFound once the record expired or was never written.
func (r TokenRepository) GetToken(userID string, kind auth.TokenKind) (string, error) {
	var token string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey(userID, kind))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}
