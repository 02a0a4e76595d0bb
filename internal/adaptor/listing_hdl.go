package adaptor

import (
	"net/http"

	"glam-booking/internal/dto/request"
	"glam-booking/internal/usecase"
	"glam-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// GetListings handles GET /api/listings (public)
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	listings, err := h.service.GetListings(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// GetListingByID handles GET /api/listings/{id} (public)
func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	listingID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing ID", nil)
		return
	}

	listing, err := h.service.GetListingByID(r.Context(), listingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}
