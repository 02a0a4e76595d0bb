package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// statusTransitions is the full status graph. rejected, cancelled and
// completed are terminal and have no outgoing edges.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusRejected:  {},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status graph has an edge s -> target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Booking links a customer, a listing owner and a listing on a single date.
// ServiceName, Price, Location and ProductImage are snapshots taken at
// creation time; later catalog edits do not touch existing bookings.
// Date (YYYY-MM-DD) and Time (HH:MM) are stored as-is; combining them into
// a timestamp is the caller's concern.
type Booking struct {
	Base
	BookingCode        string        `db:"booking_code"`
	CustomerID         uuid.UUID     `db:"customer_id"`
	OwnerID            uuid.UUID     `db:"owner_id"`
	ListingID          uuid.UUID     `db:"listing_id"`
	CustomerName       string        `db:"customer_name"`
	ServiceName        string        `db:"service_name"`
	Price              float64       `db:"price"`
	Date               string        `db:"date"`
	Time               string        `db:"time"`
	Status             BookingStatus `db:"status"`
	IncludeMakeupAddon bool          `db:"include_makeup_addon"`
	AddonPrice         float64       `db:"addon_price"`
	Location           *string       `db:"location"`
	ProductImage       *string       `db:"product_image"`
	Notes              *string       `db:"notes"`
	RejectionMessage   *string       `db:"rejection_message"`
}
