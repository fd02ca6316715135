package services

import (
	"chat-gateway/domain"
	"chat-gateway/gateway"
	"chat-gateway/repositories"
	"log/slog"

	"github.com/samber/lo"
)

type INotificationService interface {
	Push(fromID, toID, kind string, groupID *string) (domain.Notification, error)
}

// NotificationService persists a notification record, then nudges the
// recipient's live connections. Persistence is unconditional: an offline
// recipient still gets the record, recoverable through the REST fetch path;
// the broadcast is only a best-effort real-time signal.
type NotificationService struct {
	notifications repositories.INotificationRepository
	directory     repositories.IDirectoryRepository
	broadcaster   gateway.IBroadcaster
	log           *slog.Logger
}

func NewNotificationService(
	notifications repositories.INotificationRepository,
	directory repositories.IDirectoryRepository,
	broadcaster gateway.IBroadcaster,
	log *slog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		directory:     directory,
		broadcaster:   broadcaster,
		log:           log,
	}
}

func (s *NotificationService) Push(fromID, toID, kind string, groupID *string) (domain.Notification, error) {
	record, err := s.notifications.Create(fromID, toID, kind, groupID)
	if err != nil {
		return domain.Notification{}, err
	}

	// Re-read the committed record so the broadcast carries exactly what the
	// REST fetch path would return.
	record, err = s.notifications.Get(record.ID)
	if err != nil {
		return domain.Notification{}, err
	}

	enriched, err := s.enrich(record)
	if err != nil {
		return domain.Notification{}, err
	}

	s.broadcaster.Broadcast(
		gateway.ToUser(toID),
		domain.Event{
			Type: domain.EventNotification,
			Data: domain.NotificationData{Notification: enriched},
		},
	)
	return enriched, nil
}

// enrich attaches the sender/recipient/group display projections.
func (s *NotificationService) enrich(record repositories.DiskNotification) (domain.Notification, error) {
	from, err := s.directory.GetUserProfile(record.FromID)
	if err != nil {
		return domain.Notification{}, err
	}
	to, err := s.directory.GetUserProfile(record.ToID)
	if err != nil {
		return domain.Notification{}, err
	}

	var group *domain.Conversation
	if record.GroupID != nil {
		conversation, err := s.directory.GetConversation(*record.GroupID)
		if err != nil {
			return domain.Notification{}, err
		}
		group = lo.ToPtr(conversation)
	}

	return domain.Notification{
		ID:        record.ID.String(),
		Kind:      record.Kind,
		From:      from,
		To:        to,
		Group:     group,
		Read:      record.Read,
		CreatedAt: record.CreatedAt,
	}, nil
}
