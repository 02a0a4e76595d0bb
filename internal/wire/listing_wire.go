package wire

import (
	"glam-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireListing(r chi.Router, listingHandler *adaptor.ListingHandler) {
	// Catalog browse is public
	r.Get("/api/listings", listingHandler.GetListings)
	r.Get("/api/listings/{id}", listingHandler.GetListingByID)
}
