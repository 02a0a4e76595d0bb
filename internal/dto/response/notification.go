package response

import (
	"time"

	"glam-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Kind      entity.NotificationKind `json:"kind"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	BookingID string                  `json:"booking_id"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationToResponse(notification *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID.String(),
		Kind:      notification.Kind,
		Title:     notification.Title,
		Body:      notification.Body,
		BookingID: notification.BookingID.String(),
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}
