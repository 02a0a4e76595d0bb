package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glam-booking/internal/apperrors"
	"glam-booking/internal/data/entity"
	"glam-booking/internal/data/repository"
	"glam-booking/internal/dto/request"
	"glam-booking/internal/dto/response"
	"glam-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the booking lifecycle engine: it validates creation
// payloads, gates every status transition on the requesting principal,
// and fans out notifications after each committed change. The requester
// is always an explicit parameter so authorization stays a pure function
// of (booking, requester, target status).
type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, requesterID uuid.UUID, bookingRef string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, requesterID uuid.UUID, bookingRef string) (*response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &apperrors.ValidationError{Fields: errs}
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, &apperrors.ValidationError{Fields: map[string]string{"ListingID": "Must be a valid UUID"}}
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperrors.ErrListingNotFound
	}

	// The payload owner id is never trusted: a stale or malicious client
	// could redirect the booking to the wrong freelancer. The catalog's
	// current owner always wins.
	ownerID := listing.OwnerID

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:        utils.GenerateBookingCode(),
		CustomerID:         customerID,
		OwnerID:            ownerID,
		ListingID:          listingID,
		CustomerName:       req.CustomerName,
		ServiceName:        req.ServiceName,
		Price:              req.Price,
		Date:               req.Date,
		Time:               req.Time,
		Status:             entity.BookingStatusPending,
		IncludeMakeupAddon: req.IncludeMakeupAddon,
		AddonPrice:         req.AddonPrice,
		Location:           req.Location,
		ProductImage:       req.ProductImage,
		Notes:              req.Notes,
	}

	// The insert is the conflict guard: the partial unique index over
	// (listing_id, customer_id, date) rejects a second pending booking
	// atomically, so concurrent double-submits cannot both land.
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePendingBooking) {
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("listing_id", req.ListingID),
		)
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("customer_id", customerID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("date", booking.Date),
	)

	s.emit(ctx, ownerID, entity.NotifNewBooking,
		"New Booking Request",
		fmt.Sprintf("%s requested to book %s on %s at %s.", booking.CustomerName, booking.ServiceName, booking.Date, booking.Time),
		booking.ID,
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, requesterID uuid.UUID, bookingRef string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update status validation failed", zap.Any("errors", errs))
		return nil, &apperrors.ValidationError{Fields: errs}
	}

	booking, err := s.repo.Booking.FindByIDOrCode(ctx, bookingRef)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	target := entity.BookingStatus(req.Status)

	// Who may request a transition depends on the target status, not on
	// a single role: confirm/reject/complete are the owner's call, cancel
	// belongs to either party.
	switch target {
	case entity.BookingStatusConfirmed, entity.BookingStatusRejected, entity.BookingStatusCompleted:
		if requesterID != booking.OwnerID {
			s.log.Warn("Forbidden status change",
				zap.String("booking_id", booking.ID.String()),
				zap.String("requester_id", requesterID.String()),
				zap.String("target", string(target)),
			)
			return nil, apperrors.ErrForbidden
		}
	case entity.BookingStatusCancelled:
		if requesterID != booking.CustomerID && requesterID != booking.OwnerID {
			s.log.Warn("Forbidden cancellation by third party",
				zap.String("booking_id", booking.ID.String()),
				zap.String("requester_id", requesterID.String()),
			)
			return nil, apperrors.ErrForbidden
		}
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, &apperrors.InvalidTransitionError{From: string(booking.Status), To: string(target)}
	}

	var message *string
	if target == entity.BookingStatusRejected && req.Message != nil && *req.Message != "" {
		message = req.Message
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, target, message); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("target", string(target)),
		)
		return nil, err
	}

	from := booking.Status
	booking.Status = target
	if message != nil {
		booking.RejectionMessage = message
	}
	booking.UpdatedAt = time.Now()

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
		zap.String("requester_id", requesterID.String()),
	)

	s.fanOut(ctx, booking, target)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, requesterID uuid.UUID, bookingRef string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByIDOrCode(ctx, bookingRef)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	// Bookings are visible only to their two parties
	if requesterID != booking.CustomerID && requesterID != booking.OwnerID {
		return nil, apperrors.ErrForbidden
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter := listFilter(req)

	bookings, err := s.repo.Booking.FindByCustomer(ctx, customerID, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, req, total), nil
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter := listFilter(req)

	bookings, err := s.repo.Booking.FindByOwner(ctx, ownerID, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	return paginateBookings(bookings, req, total), nil
}

// ==================== HELPERS ====================

// fanOut writes the notification(s) a committed transition owes per the
// recipient table: confirm/reject/complete notify the customer, cancel
// notifies both parties.
func (s *bookingService) fanOut(ctx context.Context, booking *entity.Booking, target entity.BookingStatus) {
	switch target {
	case entity.BookingStatusConfirmed:
		s.emit(ctx, booking.CustomerID, entity.NotifBookingConfirmed,
			"Booking Confirmed",
			fmt.Sprintf("Your booking for %s on %s has been confirmed.", booking.ServiceName, booking.Date),
			booking.ID,
		)
	case entity.BookingStatusRejected:
		body := fmt.Sprintf("Your booking for %s on %s was rejected.", booking.ServiceName, booking.Date)
		if booking.RejectionMessage != nil && *booking.RejectionMessage != "" {
			body = fmt.Sprintf("%s Reason: %s", body, *booking.RejectionMessage)
		}
		s.emit(ctx, booking.CustomerID, entity.NotifBookingRejected, "Booking Rejected", body, booking.ID)
	case entity.BookingStatusCompleted:
		s.emit(ctx, booking.CustomerID, entity.NotifBookingCompleted,
			"Booking Completed",
			fmt.Sprintf("Your booking for %s has been marked as completed.", booking.ServiceName),
			booking.ID,
		)
	case entity.BookingStatusCancelled:
		body := fmt.Sprintf("The booking for %s on %s has been cancelled.", booking.ServiceName, booking.Date)
		s.emit(ctx, booking.CustomerID, entity.NotifBookingCancelled, "Booking Cancelled", body, booking.ID)
		s.emit(ctx, booking.OwnerID, entity.NotifBookingCancelled, "Booking Cancelled", body, booking.ID)
	}
}

// emit is fire-and-forget: the booking state change already committed and
// stays the source of truth, so a degraded notification store is logged
// and swallowed, never surfaced as a booking error.
func (s *bookingService) emit(ctx context.Context, recipientID uuid.UUID, kind entity.NotificationKind, title, body string, bookingID uuid.UUID) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		BookingID:   bookingID,
		IsRead:      false,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Error("Failed to write notification",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
			zap.String("kind", string(kind)),
			zap.String("booking_id", bookingID.String()),
		)
	}
}

func listFilter(req *request.BookingListRequest) repository.BookingFilter {
	filter := repository.BookingFilter{Search: req.Search}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	return filter
}

func paginateBookings(bookings []*entity.Booking, req *request.BookingListRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total)
}
