package usecase

import (
	"context"

	"glam-booking/internal/apperrors"
	"glam-booking/internal/data/repository"
	"glam-booking/internal/dto/request"
	"glam-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	GetListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	GetListingByID(ctx context.Context, listingID uuid.UUID) (*response.ListingResponse, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) GetListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	listings, err := s.repo.Listing.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Listing.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.ListingResponse, len(listings))
	for i, listing := range listings {
		items[i] = response.ListingToResponse(listing)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *listingService) GetListingByID(ctx context.Context, listingID uuid.UUID) (*response.ListingResponse, error) {
	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperrors.ErrListingNotFound
	}

	resp := response.ListingToResponse(listing)
	return &resp, nil
}
