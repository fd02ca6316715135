package services

import (
	"chat-gateway/domain"
	"chat-gateway/gateway"
	"chat-gateway/repositories"
	"log/slog"
)

type IEventService interface {
	NotifyTyping(conversationID, userID string, typing bool) error
	NotifyMessage(conversationID, senderID string, message any) error
	NotifyGroupJoined(groupID string, message any) error
}

// EventService drives the broadcaster for conversation-scoped events. It is
// the handle REST handlers receive by injection after they commit a write;
// there is no ambient "current socket server" accessor.
type EventService struct {
	broadcaster gateway.IBroadcaster
	directory   repositories.IDirectoryRepository
	log         *slog.Logger
}

func NewEventService(broadcaster gateway.IBroadcaster,
	directory repositories.IDirectoryRepository, log *slog.Logger) *EventService {
	return &EventService{broadcaster: broadcaster, directory: directory, log: log}
}

// NotifyTyping fans a typing or no-typing signal out to the conversation's
// participants, minus the typing user. There is no server-side typing
// timeout; going back to idle is the client's job.
func (s *EventService) NotifyTyping(conversationID, userID string, typing bool) error {
	profile, err := s.directory.GetUserProfile(userID)
	if err != nil {
		return err
	}
	participants, err := s.directory.GetParticipants(conversationID)
	if err != nil {
		return err
	}

	eventType := domain.EventTyping
	if !typing {
		eventType = domain.EventNoTyping
	}

	s.broadcaster.Broadcast(
		gateway.ToParticipantsExcept(participants, userID),
		domain.Event{
			Type: eventType,
			Data: domain.TypingData{ConversationID: conversationID, TypingUser: profile},
		},
	)
	return nil
}

// NotifyMessage pushes a committed message to every participant except its
// sender. The message record is forwarded as the REST layer committed it.
func (s *EventService) NotifyMessage(conversationID, senderID string, message any) error {
	participants, err := s.directory.GetParticipants(conversationID)
	if err != nil {
		return err
	}

	s.broadcaster.Broadcast(
		gateway.ToParticipantsExcept(participants, senderID),
		domain.Event{
			Type: domain.EventMessage,
			Data: domain.MessageData{Message: message, ConversationID: conversationID},
		},
	)
	return nil
}

// NotifyGroupJoined pushes a group's system message to every participant,
// joiner included.
func (s *EventService) NotifyGroupJoined(groupID string, message any) error {
	participants, err := s.directory.GetParticipants(groupID)
	if err != nil {
		return err
	}

	s.broadcaster.Broadcast(
		gateway.ToParticipants(participants),
		domain.Event{
			Type: domain.EventMessage,
			Data: domain.MessageData{Message: message, ConversationID: groupID},
		},
	)
	return nil
}
