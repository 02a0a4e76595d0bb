package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"glam-booking/internal/apperrors"
	"glam-booking/internal/data/entity"
	"glam-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testListing(ownerID uuid.UUID) *entity.Listing {
	return &entity.Listing{
		Base:      entity.Base{ID: uuid.New()},
		OwnerID:   ownerID,
		Name:      "Crimson Evening Gown",
		Price:     1500,
		Available: true,
	}
}

func validCreateRequest(listing *entity.Listing) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		CustomerName: "Maria Santos",
		ServiceName:  listing.Name,
		ListingID:    listing.ID.String(),
		Date:         "2026-09-12",
		Time:         "14:00",
		Price:        listing.Price,
		OwnerID:      listing.OwnerID.String(),
	}
}

func TestCreateBooking(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	t.Run("creates pending booking and notifies owner", func(t *testing.T) {
		env := newTestEnv(listing)
		svc := env.bookingService()

		resp, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, entity.BookingStatusPending, resp.Status)
		assert.Equal(t, customerID.String(), resp.CustomerID)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
		assert.Regexp(t, `^GLAM-\d{8}-\d{6}-\d{4}$`, resp.BookingCode)

		ownerInbox, err := env.notifications.FindByRecipient(context.Background(), ownerID, 10, 0)
		require.NoError(t, err)
		require.Len(t, ownerInbox, 1)
		assert.Equal(t, entity.NotifNewBooking, ownerInbox[0].Kind)
		assert.Equal(t, resp.ID, ownerInbox[0].BookingID.String())
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		env := newTestEnv(listing)
		svc := env.bookingService()

		req := validCreateRequest(listing)
		req.CustomerName = ""
		req.Price = 0

		_, err := svc.CreateBooking(context.Background(), customerID, req)

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "CustomerName")
		assert.Contains(t, validationErr.Fields, "Price")
	})

	t.Run("unknown listing", func(t *testing.T) {
		env := newTestEnv()
		svc := env.bookingService()

		_, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
	})

	t.Run("forged owner id is overwritten with the catalog owner", func(t *testing.T) {
		env := newTestEnv(listing)
		svc := env.bookingService()

		req := validCreateRequest(listing)
		req.OwnerID = uuid.New().String()

		resp, err := svc.CreateBooking(context.Background(), customerID, req)
		require.NoError(t, err)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
	})

	t.Run("second pending booking for same listing and date conflicts", func(t *testing.T) {
		env := newTestEnv(listing)
		svc := env.bookingService()

		_, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)

		_, err = svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePendingBooking)

		// A different date does not conflict
		req := validCreateRequest(listing)
		req.Date = "2026-09-13"
		_, err = svc.CreateBooking(context.Background(), customerID, req)
		assert.NoError(t, err)

		// Neither does another customer on the same date
		_, err = svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest(listing))
		assert.NoError(t, err)
	})

	t.Run("rebooking allowed once the pending booking is resolved", func(t *testing.T) {
		env := newTestEnv(listing)
		svc := env.bookingService()

		first, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), ownerID, first.ID, &request.UpdateBookingStatusRequest{Status: "rejected"})
		require.NoError(t, err)

		_, err = svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		assert.NoError(t, err)
	})
}

func TestCreateBookingConcurrentDuplicates(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	env := newTestEnv(listing)
	svc := env.bookingService()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrDuplicatePendingBooking):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent create must win")
	assert.Equal(t, attempts-1, conflicts)
}

func TestUpdateStatusTransitions(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	// seed inserts a booking directly in the given state
	seed := func(env *testEnv, status entity.BookingStatus) *entity.Booking {
		booking := &entity.Booking{
			Base:         entity.Base{ID: uuid.New()},
			BookingCode:  "GLAM-20260912-100000-0001",
			CustomerID:   customerID,
			OwnerID:      ownerID,
			ListingID:    listing.ID,
			CustomerName: "Maria Santos",
			ServiceName:  listing.Name,
			Price:        listing.Price,
			Date:         "2026-09-12",
			Time:         "14:00",
			Status:       status,
		}
		require.NoError(t, env.bookings.Create(context.Background(), booking))
		return booking
	}

	cases := []struct {
		from    entity.BookingStatus
		to      string
		allowed bool
	}{
		{entity.BookingStatusPending, "confirmed", true},
		{entity.BookingStatusPending, "rejected", true},
		{entity.BookingStatusPending, "cancelled", true},
		{entity.BookingStatusPending, "completed", false},
		{entity.BookingStatusConfirmed, "completed", true},
		{entity.BookingStatusConfirmed, "cancelled", true},
		{entity.BookingStatusConfirmed, "confirmed", false},
		{entity.BookingStatusConfirmed, "rejected", false},
		{entity.BookingStatusRejected, "confirmed", false},
		{entity.BookingStatusRejected, "cancelled", false},
		{entity.BookingStatusCancelled, "confirmed", false},
		{entity.BookingStatusCancelled, "completed", false},
		{entity.BookingStatusCompleted, "cancelled", false},
		{entity.BookingStatusCompleted, "confirmed", false},
	}

	for _, tc := range cases {
		name := string(tc.from) + " to " + tc.to
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(listing)
			svc := env.bookingService()
			booking := seed(env, tc.from)

			resp, err := svc.UpdateStatus(context.Background(), ownerID, booking.ID.String(),
				&request.UpdateBookingStatusRequest{Status: tc.to})

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, entity.BookingStatus(tc.to), resp.Status)

				stored, err := env.bookings.FindByID(context.Background(), booking.ID)
				require.NoError(t, err)
				assert.Equal(t, entity.BookingStatus(tc.to), stored.Status)
			} else {
				var transitionErr *apperrors.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, string(tc.from), transitionErr.From)
				assert.Equal(t, tc.to, transitionErr.To)

				// State must not move on a rejected transition
				stored, err := env.bookings.FindByID(context.Background(), booking.ID)
				require.NoError(t, err)
				assert.Equal(t, tc.from, stored.Status)
			}
		})
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	thirdParty := uuid.New()
	listing := testListing(ownerID)

	create := func(env *testEnv) string {
		svc := env.bookingService()
		resp, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("customer cannot confirm", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)

		_, err := env.bookingService().UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		stored, err := env.bookings.FindByIDOrCode(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPending, stored.Status,
			"a forbidden attempt must not move the status")
	})

	t.Run("customer cannot reject", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)

		_, err := env.bookingService().UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "rejected"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("customer cannot complete", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)
		svc := env.bookingService()

		_, err := svc.UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "confirmed"})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		stored, err := env.bookings.FindByIDOrCode(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, stored.Status,
			"a forbidden attempt must not move the status")
	})

	t.Run("customer can cancel", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)

		resp, err := env.bookingService().UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	})

	t.Run("owner can cancel", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)

		resp, err := env.bookingService().UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	})

	t.Run("third party cannot cancel", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)

		_, err := env.bookingService().UpdateStatus(context.Background(), thirdParty, id,
			&request.UpdateBookingStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		stored, err := env.bookings.FindByIDOrCode(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPending, stored.Status,
			"a forbidden attempt must not move the status")
	})

	t.Run("authorization is checked before transition legality", func(t *testing.T) {
		env := newTestEnv(listing)
		id := create(env)
		svc := env.bookingService()

		_, err := svc.UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "rejected"})
		require.NoError(t, err)

		// completed from rejected is illegal, but a non-owner must still
		// see forbidden, not the transition error
		_, err = svc.UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestUpdateStatusFanOut(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	setup := func(t *testing.T) (*testEnv, BookingService, string) {
		env := newTestEnv(listing)
		svc := env.bookingService()
		resp, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)
		return env, svc, resp.ID
	}

	t.Run("confirmation notifies the customer", func(t *testing.T) {
		env, svc, id := setup(t)

		_, err := svc.UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "confirmed"})
		require.NoError(t, err)

		inbox, err := env.notifications.FindByRecipient(context.Background(), customerID, 10, 0)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, entity.NotifBookingConfirmed, inbox[0].Kind)
	})

	t.Run("rejection carries the owner's message", func(t *testing.T) {
		env, svc, id := setup(t)

		reason := "Gown is out for dry cleaning that week"
		resp, err := svc.UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "rejected", Message: &reason})
		require.NoError(t, err)
		require.NotNil(t, resp.RejectionMessage)
		assert.Equal(t, reason, *resp.RejectionMessage)

		inbox, err := env.notifications.FindByRecipient(context.Background(), customerID, 10, 0)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, entity.NotifBookingRejected, inbox[0].Kind)
		assert.Contains(t, inbox[0].Body, reason)
	})

	t.Run("cancellation notifies both parties", func(t *testing.T) {
		env, svc, id := setup(t)

		_, err := svc.UpdateStatus(context.Background(), customerID, id,
			&request.UpdateBookingStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		customerInbox, err := env.notifications.FindByRecipient(context.Background(), customerID, 10, 0)
		require.NoError(t, err)
		require.Len(t, customerInbox, 1)
		assert.Equal(t, entity.NotifBookingCancelled, customerInbox[0].Kind)

		// Owner has the initial new_booking plus the cancellation
		ownerInbox, err := env.notifications.FindByRecipient(context.Background(), ownerID, 10, 0)
		require.NoError(t, err)
		require.Len(t, ownerInbox, 2)

		kinds := []entity.NotificationKind{ownerInbox[0].Kind, ownerInbox[1].Kind}
		assert.Contains(t, kinds, entity.NotifBookingCancelled)
		assert.Contains(t, kinds, entity.NotifNewBooking)
	})

	t.Run("notification store failure does not fail the transition", func(t *testing.T) {
		env, svc, id := setup(t)
		env.notifications.failCreate = errors.New("notification store down")

		resp, err := svc.UpdateStatus(context.Background(), ownerID, id,
			&request.UpdateBookingStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

		stored, err := env.bookings.FindByIDOrCode(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, svc, _ := setup(t)

		_, err := svc.UpdateStatus(context.Background(), ownerID, uuid.New().String(),
			&request.UpdateBookingStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}

func TestGetBooking(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	env := newTestEnv(listing)
	svc := env.bookingService()

	created, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
	require.NoError(t, err)

	t.Run("by id as customer", func(t *testing.T) {
		resp, err := svc.GetBooking(context.Background(), customerID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("by booking code as owner", func(t *testing.T) {
		resp, err := svc.GetBooking(context.Background(), ownerID, created.BookingCode)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("hidden from third parties", func(t *testing.T) {
		_, err := svc.GetBooking(context.Background(), uuid.New(), created.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := svc.GetBooking(context.Background(), customerID, "GLAM-00000000-000000-0000")
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}

func TestBookingLists(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	env := newTestEnv(listing)
	svc := env.bookingService()

	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	var ids []string
	for _, date := range dates {
		req := validCreateRequest(listing)
		req.Date = date
		resp, err := svc.CreateBooking(context.Background(), customerID, req)
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	_, err := svc.UpdateStatus(context.Background(), ownerID, ids[0],
		&request.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	listReq := func(status string) *request.BookingListRequest {
		return &request.BookingListRequest{
			PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
			Status:           status,
		}
	}

	t.Run("customer sees all own bookings", func(t *testing.T) {
		page, err := svc.GetCustomerBookings(context.Background(), customerID, listReq(""))
		require.NoError(t, err)
		assert.Len(t, page.Data, 3)
		assert.Equal(t, int64(3), page.Pagination.Total)
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		page, err := svc.GetCustomerBookings(context.Background(), customerID, listReq("pending"))
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
		for _, booking := range page.Data {
			assert.Equal(t, entity.BookingStatusPending, booking.Status)
		}
	})

	t.Run("owner sees bookings against own listings", func(t *testing.T) {
		page, err := svc.GetOwnerBookings(context.Background(), ownerID, listReq(""))
		require.NoError(t, err)
		assert.Len(t, page.Data, 3)
	})

	t.Run("stranger sees nothing", func(t *testing.T) {
		page, err := svc.GetOwnerBookings(context.Background(), uuid.New(), listReq(""))
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(0), page.Pagination.Total)
	})
}

func TestBookingListSearch(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()

	gown := testListing(ownerID)
	tux := &entity.Listing{
		Base:      entity.Base{ID: uuid.New()},
		OwnerID:   ownerID,
		Name:      "Midnight Tuxedo",
		Price:     900,
		Available: true,
	}

	env := newTestEnv(gown, tux)
	svc := env.bookingService()

	for _, listing := range []*entity.Listing{gown, tux} {
		_, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
		require.NoError(t, err)
	}

	search := func(term string) *request.BookingListRequest {
		return &request.BookingListRequest{
			PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
			Search:           term,
		}
	}

	t.Run("search narrows by service name", func(t *testing.T) {
		page, err := svc.GetCustomerBookings(context.Background(), customerID, search("Crimson"))
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, gown.Name, page.Data[0].ServiceName)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		page, err := svc.GetOwnerBookings(context.Background(), ownerID, search("tuxedo"))
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, tux.Name, page.Data[0].ServiceName)
	})

	t.Run("no term returns everything", func(t *testing.T) {
		page, err := svc.GetCustomerBookings(context.Background(), customerID, search(""))
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
	})

	t.Run("unmatched term returns nothing", func(t *testing.T) {
		page, err := svc.GetCustomerBookings(context.Background(), customerID, search("ballgown"))
		require.NoError(t, err)
		assert.Empty(t, page.Data)
	})
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	listing := testListing(ownerID)

	env := newTestEnv(listing)
	svc := env.bookingService()

	created, err := svc.CreateBooking(context.Background(), customerID, validCreateRequest(listing))
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, created.Status)

	confirmed, err := svc.UpdateStatus(context.Background(), ownerID, created.BookingCode,
		&request.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusConfirmed, confirmed.Status)

	completed, err := svc.UpdateStatus(context.Background(), ownerID, created.BookingCode,
		&request.UpdateBookingStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusCompleted, completed.Status)

	// Terminal: nothing moves a completed booking
	_, err = svc.UpdateStatus(context.Background(), ownerID, created.BookingCode,
		&request.UpdateBookingStatusRequest{Status: "cancelled"})
	var transitionErr *apperrors.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)

	// Customer received confirmation and completion
	inbox, err := env.notifications.FindByRecipient(context.Background(), customerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
}
