package repository

import (
	"context"
	"fmt"

	"glam-booking/internal/data/entity"
	"glam-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ListingRepository is the catalog lookup. The booking flow reads it to
// resolve a listing's current owner; it never writes through it.
type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Listing, error)
	CountAll(ctx context.Context) (int64, error)
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

const listingColumns = `id, owner_id, name, description, location, price, image_url, available, created_at, updated_at`

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	var listing entity.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Name,
		&listing.Description,
		&listing.Location,
		&listing.Price,
		&listing.ImageURL,
		&listing.Available,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return &listing, nil
}

func (r *listingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE available = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find listings", zap.Error(err))
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		var listing entity.Listing
		err := rows.Scan(
			&listing.ID,
			&listing.OwnerID,
			&listing.Name,
			&listing.Description,
			&listing.Location,
			&listing.Price,
			&listing.ImageURL,
			&listing.Available,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, &listing)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return listings, nil
}

func (r *listingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE available = TRUE`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count listings", zap.Error(err))
		return 0, fmt.Errorf("count listings: %w", err)
	}

	return count, nil
}
