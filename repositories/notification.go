//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	apperrors "chat-gateway/errors"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type INotificationRepository interface {
	Create(fromID, toID, kind string, groupID *string) (DiskNotification, error)
	Get(id uuid.UUID) (DiskNotification, error)
	ListForRecipient(toID string) ([]DiskNotification, error)
}

type NotificationRepository struct {
	db *badger.DB
}

func NewNotificationRepository(db *badger.DB) NotificationRepository {
	return NotificationRepository{db: db}
}

// DiskNotification is the persisted record. It only holds ids; display
// projections are resolved at push time.
type DiskNotification struct {
	ID        uuid.UUID
	FromID    string
	ToID      string
	Kind      string
	GroupID   *string
	Read      bool
	CreatedAt time.Time
}

// Create persists a notification record and a recipient-scoped index entry.
// The index key is "idx:notif:{to}:{timestamp_padded}:{uuid}" so that a
// recipient's notifications sort chronologically under a single prefix, with
// the UUID as a collision disconnector for same-nanosecond records.
func (r NotificationRepository) Create(fromID, toID, kind string, groupID *string) (DiskNotification, error) {
	record := DiskNotification{
		ID:        uuid.New(),
		FromID:    fromID,
		ToID:      toID,
		Kind:      kind,
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return DiskNotification{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(notificationKey(record.ID), data); err != nil {
			return err
		}
		return txn.Set(notificationIndexKey(record), nil)
	})
	if err != nil {
		return DiskNotification{}, err
	}
	return record, nil
}

func (r NotificationRepository) Get(id uuid.UUID) (DiskNotification, error) {
	var record DiskNotification
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(notificationKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return DiskNotification{}, apperrors.ErrNotFound
	}
	if err != nil {
		return DiskNotification{}, err
	}
	return record, nil
}

// ListForRecipient returns the recipient's notifications in chronological
// order, the REST fetch path that makes offline notifications recoverable.
func (r NotificationRepository) ListForRecipient(toID string) ([]DiskNotification, error) {
	var ids []uuid.UUID
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("idx:notif:%s:", toID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			id, err := uuid.Parse(key[len(key)-36:])
			if err != nil {
				return fmt.Errorf("corrupt index key %q: %w", key, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var records []DiskNotification
	for _, id := range ids {
		record, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func notificationKey(id uuid.UUID) []byte {
	return []byte("notification:" + id.String())
}

func notificationIndexKey(record DiskNotification) []byte {
	return []byte(fmt.Sprintf("idx:notif:%s:%019d:%s",
		record.ToID,
		record.CreatedAt.UnixNano(),
		record.ID,
	))
}
