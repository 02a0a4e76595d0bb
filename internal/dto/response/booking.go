package response

import (
	"time"

	"glam-booking/internal/data/entity"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	BookingCode        string               `json:"booking_code"`
	CustomerID         string               `json:"customer_id"`
	OwnerID            string               `json:"owner_id"`
	ListingID          string               `json:"listing_id"`
	CustomerName       string               `json:"customer_name"`
	ServiceName        string               `json:"service_name"`
	Price              float64              `json:"price"`
	Date               string               `json:"date"`
	Time               string               `json:"time"`
	Status             entity.BookingStatus `json:"status"`
	IncludeMakeupAddon bool                 `json:"include_makeup_addon"`
	AddonPrice         float64              `json:"addon_price,omitempty"`
	Location           *string              `json:"location,omitempty"`
	ProductImage       *string              `json:"product_image,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	RejectionMessage   *string              `json:"rejection_message,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 booking.ID.String(),
		BookingCode:        booking.BookingCode,
		CustomerID:         booking.CustomerID.String(),
		OwnerID:            booking.OwnerID.String(),
		ListingID:          booking.ListingID.String(),
		CustomerName:       booking.CustomerName,
		ServiceName:        booking.ServiceName,
		Price:              booking.Price,
		Date:               booking.Date,
		Time:               booking.Time,
		Status:             booking.Status,
		IncludeMakeupAddon: booking.IncludeMakeupAddon,
		AddonPrice:         booking.AddonPrice,
		Location:           booking.Location,
		ProductImage:       booking.ProductImage,
		Notes:              booking.Notes,
		RejectionMessage:   booking.RejectionMessage,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}
