package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"glam-booking/internal/apperrors"
	"glam-booking/internal/data/entity"
	"glam-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pendingUniqueConstraint is the partial unique index over
// (listing_id, customer_id, date) WHERE status = 'pending'. It is the
// authoritative guard against duplicate pending bookings; the insert
// relies on it instead of a racy check-then-insert.
const pendingUniqueConstraint = "bookings_pending_unique_idx"

// BookingFilter narrows customer/owner booking lists.
type BookingFilter struct {
	Status *entity.BookingStatus
	Search string // free-text match over service_name
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindByIDOrCode(ctx context.Context, ref string) (*entity.Booking, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID, filter BookingFilter) (int64, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, message *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, customer_id, owner_id, listing_id, customer_name,
	service_name, price, date, time, status, include_makeup_addon, addon_price,
	location, product_image, notes, rejection_message, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_code, customer_id, owner_id, listing_id, customer_name,
		                      service_name, price, date, time, status, include_makeup_addon,
		                      addon_price, location, product_image, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.CustomerID,
		booking.OwnerID,
		booking.ListingID,
		booking.CustomerName,
		booking.ServiceName,
		booking.Price,
		booking.Date,
		booking.Time,
		booking.Status,
		booking.IncludeMakeupAddon,
		booking.AddonPrice,
		booking.Location,
		booking.ProductImage,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == pendingUniqueConstraint {
			r.log.Warn("Duplicate pending booking rejected",
				zap.String("listing_id", booking.ListingID.String()),
				zap.String("customer_id", booking.CustomerID.String()),
				zap.String("date", booking.Date),
			)
			return apperrors.ErrDuplicatePendingBooking
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := r.scanOne(r.db.QueryRow(ctx, query, code))
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

// FindByIDOrCode resolves a booking reference that may be either the
// durable uuid or the human-readable booking code.
func (r *bookingRepository) FindByIDOrCode(ctx context.Context, ref string) (*entity.Booking, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.FindByID(ctx, id)
	}
	return r.FindByCode(ctx, ref)
}

func (r *bookingRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "customer_id", customerID, filter, limit, offset)
}

func (r *bookingRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID, filter BookingFilter) (int64, error) {
	return r.countByParty(ctx, "customer_id", customerID, filter)
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "owner_id", ownerID, filter, limit, offset)
}

func (r *bookingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, filter BookingFilter) (int64, error) {
	return r.countByParty(ctx, "owner_id", ownerID, filter)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, message *string) error {
	query := `
		UPDATE bookings
		SET status = $2,
		    rejection_message = COALESCE($3, rejection_message),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status, message)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrBookingNotFound
	}

	return nil
}

// ==================== HELPERS ====================

func (r *bookingRepository) findByParty(ctx context.Context, column string, partyID uuid.UUID, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	conditions, args := partyConditions(column, partyID, filter)

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, strings.Join(conditions, " AND "), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String(column, partyID.String()),
		)
		return nil, fmt.Errorf("find bookings by %s %s: %w", column, partyID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) countByParty(ctx context.Context, column string, partyID uuid.UUID, filter BookingFilter) (int64, error) {
	conditions, args := partyConditions(column, partyID, filter)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s`, strings.Join(conditions, " AND "))

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String(column, partyID.String()),
		)
		return 0, fmt.Errorf("count bookings by %s %s: %w", column, partyID.String(), err)
	}

	return count, nil
}

func partyConditions(column string, partyID uuid.UUID, filter BookingFilter) ([]string, []any) {
	conditions := []string{fmt.Sprintf("%s = $1", column)}
	args := []any{partyID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("service_name ILIKE $%d", len(args)))
	}

	return conditions, args
}

func (r *bookingRepository) scanOne(row pgx.Row) (*entity.Booking, error) {
	booking, err := scanBookingRow(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func scanBookingRow(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.CustomerID,
		&booking.OwnerID,
		&booking.ListingID,
		&booking.CustomerName,
		&booking.ServiceName,
		&booking.Price,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&booking.IncludeMakeupAddon,
		&booking.AddonPrice,
		&booking.Location,
		&booking.ProductImage,
		&booking.Notes,
		&booking.RejectionMessage,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
