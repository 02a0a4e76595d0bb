package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"glam-booking/internal/apperrors"
	"glam-booking/internal/data/entity"
	"glam-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory booking store. Create enforces the same
// pending-uniqueness guarantee as the partial unique index in Postgres,
// under a mutex, so the concurrency tests exercise the real contract.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if booking.Status == entity.BookingStatusPending {
		for _, existing := range f.bookings {
			if existing.Status == entity.BookingStatusPending &&
				existing.ListingID == booking.ListingID &&
				existing.CustomerID == booking.CustomerID &&
				existing.Date == booking.Date {
				return apperrors.ErrDuplicatePendingBooking
			}
		}
	}

	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindByCode(_ context.Context, code string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, booking := range f.bookings {
		if booking.BookingCode == code {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByIDOrCode(ctx context.Context, ref string) (*entity.Booking, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return f.FindByID(ctx, id)
	}
	return f.FindByCode(ctx, ref)
}

func (f *fakeBookingRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	return f.findByParty(func(b *entity.Booking) bool { return b.CustomerID == customerID }, filter, limit, offset), nil
}

func (f *fakeBookingRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID, filter repository.BookingFilter) (int64, error) {
	return int64(len(f.findByParty(func(b *entity.Booking) bool { return b.CustomerID == customerID }, filter, len(f.bookings), 0))), nil
}

func (f *fakeBookingRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	return f.findByParty(func(b *entity.Booking) bool { return b.OwnerID == ownerID }, filter, limit, offset), nil
}

func (f *fakeBookingRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID, filter repository.BookingFilter) (int64, error) {
	return int64(len(f.findByParty(func(b *entity.Booking) bool { return b.OwnerID == ownerID }, filter, len(f.bookings), 0))), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus, message *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return apperrors.ErrBookingNotFound
	}

	booking.Status = status
	if message != nil {
		booking.RejectionMessage = message
	}
	return nil
}

func (f *fakeBookingRepo) findByParty(match func(*entity.Booking) bool, filter repository.BookingFilter, limit, offset int) []*entity.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.Booking
	for _, booking := range f.bookings {
		if !match(booking) {
			continue
		}
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		// Case-insensitive substring over service name, like ILIKE
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(booking.ServiceName), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *booking
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if offset >= len(result) {
		return nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result
}

// fakeListingRepo serves catalog lookups from a map.
type fakeListingRepo struct {
	listings map[uuid.UUID]*entity.Listing
}

func newFakeListingRepo(listings ...*entity.Listing) *fakeListingRepo {
	repo := &fakeListingRepo{listings: make(map[uuid.UUID]*entity.Listing)}
	for _, listing := range listings {
		repo.listings[listing.ID] = listing
	}
	return repo
}

func (f *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return nil, nil
	}
	copied := *listing
	return &copied, nil
}

func (f *fakeListingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Listing, error) {
	var result []*entity.Listing
	for _, listing := range f.listings {
		if !listing.Available {
			continue
		}
		copied := *listing
		result = append(result, &copied)
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeListingRepo) CountAll(_ context.Context) (int64, error) {
	var count int64
	for _, listing := range f.listings {
		if listing.Available {
			count++
		}
	}
	return count, nil
}

// fakeNotificationRepo records emitted notifications. failCreate simulates
// a degraded notification store for the fire-and-forget tests.
type fakeNotificationRepo struct {
	mu         sync.Mutex
	items      []*entity.Notification
	failCreate error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return f.failCreate
	}
	copied := *notification
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeNotificationRepo) FindByRecipient(_ context.Context, recipientID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	result := f.forRecipient(recipientID)

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeNotificationRepo) CountByRecipient(_ context.Context, recipientID uuid.UUID) (int64, error) {
	return int64(len(f.forRecipient(recipientID))), nil
}

func (f *fakeNotificationRepo) CountUnreadByRecipient(_ context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	for _, item := range f.forRecipient(recipientID) {
		if !item.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range f.items {
		if item.RecipientID == recipientID {
			item.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) forRecipient(recipientID uuid.UUID) []*entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.Notification
	for _, item := range f.items {
		if item.RecipientID == recipientID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result
}

type testEnv struct {
	repo          *repository.Repository
	bookings      *fakeBookingRepo
	listings      *fakeListingRepo
	notifications *fakeNotificationRepo
}

func newTestEnv(listings ...*entity.Listing) *testEnv {
	bookings := newFakeBookingRepo()
	listingRepo := newFakeListingRepo(listings...)
	notifications := newFakeNotificationRepo()

	return &testEnv{
		repo: &repository.Repository{
			Listing:      listingRepo,
			Booking:      bookings,
			Notification: notifications,
		},
		bookings:      bookings,
		listings:      listingRepo,
		notifications: notifications,
	}
}

func (e *testEnv) bookingService() BookingService {
	return NewBookingService(e.repo, zap.NewNop())
}

func (e *testEnv) notificationService() NotificationService {
	return NewNotificationService(e.repo, zap.NewNop())
}
