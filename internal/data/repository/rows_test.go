package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenRows ends the stream immediately with a deferred error, the way
// pgx reports a connection that died mid-result. Only Err distinguishes
// this from a clean empty result.
type brokenRows struct {
	err error
}

func (r *brokenRows) Close()                                       {}
func (r *brokenRows) Err() error                                   { return r.err }
func (r *brokenRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *brokenRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *brokenRows) Next() bool                                   { return false }
func (r *brokenRows) Scan(dest ...any) error                       { return r.err }
func (r *brokenRows) Values() ([]any, error)                       { return nil, r.err }
func (r *brokenRows) RawValues() [][]byte                          { return nil }
func (r *brokenRows) Conn() *pgx.Conn                              { return nil }

// brokenStreamDB hands every Query a broken stream.
type brokenStreamDB struct {
	err error
}

func (d *brokenStreamDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return &brokenRows{err: d.err}, nil
}

func (d *brokenStreamDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return &brokenRows{err: d.err}
}

func (d *brokenStreamDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, d.err
}

func (d *brokenStreamDB) Begin(_ context.Context) (pgx.Tx, error) { return nil, d.err }
func (d *brokenStreamDB) Ping(_ context.Context) error            { return d.err }
func (d *brokenStreamDB) Close()                                  {}

func TestListQueriesSurfaceStreamErrors(t *testing.T) {
	streamErr := errors.New("unexpected EOF")
	db := &brokenStreamDB{err: streamErr}
	log := zap.NewNop()

	t.Run("booking lists", func(t *testing.T) {
		repo := NewBookingRepository(db, log)

		bookings, err := repo.FindByCustomer(context.Background(), uuid.New(), BookingFilter{}, 10, 0)
		require.ErrorIs(t, err, streamErr)
		assert.Nil(t, bookings, "a broken stream must not yield a truncated list")

		bookings, err = repo.FindByOwner(context.Background(), uuid.New(), BookingFilter{}, 10, 0)
		require.ErrorIs(t, err, streamErr)
		assert.Nil(t, bookings)
	})

	t.Run("notification list", func(t *testing.T) {
		repo := NewNotificationRepository(db, log)

		notifications, err := repo.FindByRecipient(context.Background(), uuid.New(), 10, 0)
		require.ErrorIs(t, err, streamErr)
		assert.Nil(t, notifications)
	})

	t.Run("listing list", func(t *testing.T) {
		repo := NewListingRepository(db, log)

		listings, err := repo.FindAll(context.Background(), 10, 0)
		require.ErrorIs(t, err, streamErr)
		assert.Nil(t, listings)
	})
}
