package repositories

import (
	"chat-gateway/domain"
	apperrors "chat-gateway/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Save_And_Get_Conversation(t *testing.T) {
	req := require.New(t)
	repository := NewDirectoryRepository(openTestDB(t))

	conversation := domain.Conversation{
		ID:           "conv-1",
		Name:         "lunch plans",
		IsGroup:      true,
		Participants: []string{"alice", "bob", "dana"},
	}
	req.NoError(repository.SaveConversation(conversation))

	fetched, err := repository.GetConversation("conv-1")
	req.NoError(err)
	req.Equal(conversation, fetched)

	participants, err := repository.GetParticipants("conv-1")
	req.NoError(err)
	req.Equal([]string{"alice", "bob", "dana"}, participants)
}

func Test_Save_And_Get_Profile(t *testing.T) {
	req := require.New(t)
	repository := NewDirectoryRepository(openTestDB(t))

	profile := domain.Profile{
		ID:          "alice",
		Username:    "alice_w",
		DisplayName: "Alice",
		Avatar:      "https://cdn.example.com/alice.png",
	}
	req.NoError(repository.SaveProfile(profile))

	fetched, err := repository.GetUserProfile("alice")
	req.NoError(err)
	req.Equal(profile, fetched)
}

func Test_Get_Unknown_Entries(t *testing.T) {
	req := require.New(t)
	repository := NewDirectoryRepository(openTestDB(t))

	_, err := repository.GetParticipants("missing")
	req.ErrorIs(err, apperrors.ErrNotFound)

	_, err = repository.GetUserProfile("missing")
	req.ErrorIs(err, apperrors.ErrNotFound)
}
