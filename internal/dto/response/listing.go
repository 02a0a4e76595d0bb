package response

import (
	"time"

	"glam-booking/internal/data/entity"
)

type ListingResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:          listing.ID.String(),
		OwnerID:     listing.OwnerID.String(),
		Name:        listing.Name,
		Description: listing.Description,
		Location:    listing.Location,
		Price:       listing.Price,
		ImageURL:    listing.ImageURL,
		Available:   listing.Available,
		CreatedAt:   listing.CreatedAt,
	}
}
