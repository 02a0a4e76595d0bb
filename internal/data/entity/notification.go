package entity

import (
	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotifNewBooking       NotificationKind = "new_booking"
	NotifBookingConfirmed NotificationKind = "booking_confirmed"
	NotifBookingRejected  NotificationKind = "booking_rejected"
	NotifBookingCompleted NotificationKind = "booking_completed"
	NotifBookingCancelled NotificationKind = "booking_cancelled"
)

// Notification is append-only: created by the booking lifecycle, mutated
// only by the bulk mark-all-read update, never deleted.
type Notification struct {
	BaseSimple
	RecipientID uuid.UUID        `db:"recipient_id"`
	Kind        NotificationKind `db:"kind"`
	Title       string           `db:"title"`
	Body        string           `db:"body"`
	BookingID   uuid.UUID        `db:"booking_id"`
	IsRead      bool             `db:"is_read"`
}
