package usecase

import (
	"glam-booking/internal/data/repository"
	"glam-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Listing      ListingService
	Booking      BookingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Listing:      NewListingService(repo, log),
		Booking:      NewBookingService(repo, log),
		Notification: NewNotificationService(repo, log),
	}
}
