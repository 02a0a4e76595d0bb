package entity

import (
	"github.com/google/uuid"
)

// Listing is a rentable gown/service published by a freelancer.
// The booking flow reads it to resolve the true owner and to snapshot
// display fields; it never writes back to it.
type Listing struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Location    *string   `db:"location"`
	Price       float64   `db:"price"`
	ImageURL    *string   `db:"image_url"`
	Available   bool      `db:"available"`
}
