package wire

import (
	"glam-booking/internal/adaptor"
	"glam-booking/internal/data/repository"
	"glam-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/notifications - My notifications, newest first
		r.Get("/api/notifications", notificationHandler.GetNotifications)

		// POST /api/notifications/read-all - Mark my inbox read
		r.Post("/api/notifications/read-all", notificationHandler.MarkAllRead)
	})
}
