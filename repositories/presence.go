package repositories

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

type IPresenceStore interface {
	Add(userID string) error
	Remove(userID string) error
	IsOnline(userID string) (bool, error)
	AllOnline() ([]string, error)
}

// PresenceStore records which user identities currently hold a live
// authenticated connection. Entries have no TTL and live in the shared store,
// so presence survives a gateway restart; a crash without a clean close
// leaves a stale entry behind.
//
// Known gap, kept on purpose: one entry per user, removed on ANY connection
// close for that user. A user connected from two devices is marked offline
// as soon as either connection drops.
type PresenceStore struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPresenceStore(db *badger.DB, log *slog.Logger) PresenceStore {
	return PresenceStore{db: db, log: log}
}

const presencePrefix = "presence:"

func (s PresenceStore) Add(userID string) error {
	s.log.Debug("Presence add", "user", userID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(presencePrefix+userID), nil)
	})
}

func (s PresenceStore) Remove(userID string) error {
	s.log.Debug("Presence remove", "user", userID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(presencePrefix + userID))
	})
}

func (s PresenceStore) IsOnline(userID string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(presencePrefix + userID))
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllOnline returns every user currently marked online, via a prefix scan.
func (s PresenceStore) AllOnline() ([]string, error) {
	var users []string
	err := s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(presencePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			users = append(users, strings.TrimPrefix(key, presencePrefix))
		}
		return nil
	})
	return users, err
}
