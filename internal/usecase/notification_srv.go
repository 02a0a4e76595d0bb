package usecase

import (
	"context"

	"glam-booking/internal/data/repository"
	"glam-booking/internal/dto/request"
	"glam-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService exposes a recipient's inbox. Writes happen inside
// the booking lifecycle; this side only reads and bulk-marks.
type NotificationService interface {
	GetForRecipient(ctx context.Context, recipientID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) GetForRecipient(ctx context.Context, recipientID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	notifications, err := s.repo.Notification.FindByRecipient(ctx, recipientID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Notification.CountByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	items := make([]response.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		items[i] = response.NotificationToResponse(notification)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.repo.Notification.MarkAllRead(ctx, recipientID); err != nil {
		s.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return err
	}

	s.log.Info("Notifications marked read", zap.String("recipient_id", recipientID.String()))
	return nil
}
