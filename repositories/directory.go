//go:generate go run go.uber.org/mock/mockgen -source=directory.go -destination=../mocks/mock_directory_repository.go -package=mocks
package repositories

import (
	"chat-gateway/domain"
	apperrors "chat-gateway/errors"
	"encoding/json"
	stderrors "errors"

	"github.com/dgraph-io/badger/v4"
)

type IDirectoryRepository interface {
	GetParticipants(conversationID string) ([]string, error)
	GetConversation(conversationID string) (domain.Conversation, error)
	GetUserProfile(userID string) (domain.Profile, error)
	SaveConversation(conversation domain.Conversation) error
	SaveProfile(profile domain.Profile) error
}

// DirectoryRepository is the gateway's read side of the document store it
// shares with the REST application: conversation membership and minimal user
// display projections. The Save methods are the write side the REST handlers
// (and tests) use; the gateway itself only reads.
type DirectoryRepository struct {
	db *badger.DB
}

func NewDirectoryRepository(db *badger.DB) DirectoryRepository {
	return DirectoryRepository{db: db}
}

const (
	conversationPrefix = "conversation:"
	userPrefix         = "user:"
)

func (r DirectoryRepository) GetParticipants(conversationID string) ([]string, error) {
	conversation, err := r.GetConversation(conversationID)
	if err != nil {
		return nil, err
	}
	return conversation.Participants, nil
}

func (r DirectoryRepository) GetConversation(conversationID string) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.get(conversationPrefix+conversationID, &conversation)
	return conversation, err
}

func (r DirectoryRepository) GetUserProfile(userID string) (domain.Profile, error) {
	var profile domain.Profile
	err := r.get(userPrefix+userID, &profile)
	return profile, err
}

func (r DirectoryRepository) SaveConversation(conversation domain.Conversation) error {
	return r.set(conversationPrefix+conversation.ID, conversation)
}

func (r DirectoryRepository) SaveProfile(profile domain.Profile) error {
	return r.set(userPrefix+profile.ID, profile)
}

func (r DirectoryRepository) get(key string, out any) error {
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r DirectoryRepository) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
