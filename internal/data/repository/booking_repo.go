package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/pkg/database"
	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows the admin listing. Zero values are ignored.
type BookingFilter struct {
	Status        entity.BookingStatus
	PaymentStatus entity.PaymentStatus
	Search        string
}

// BookingTotals are all-time counters over the bookings table.
type BookingTotals struct {
	Total     int64
	Pending   int64
	Confirmed int64
	Completed int64
	Cancelled int64
	Revenue   int64
}

type BookingRepository interface {
	// Create inserts a booking. A duplicate reference yields ErrConflict.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, ref string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	FindCreatedSince(ctx context.Context, since time.Time) ([]*entity.Booking, error)
	Totals(ctx context.Context) (*BookingTotals, error)

	// Mutate locks the row, applies fn and persists status, payment status
	// and notes in one transaction. If fn fails nothing is written.
	Mutate(ctx context.Context, id uuid.UUID, fn func(b *entity.Booking) error) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
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

const bookingColumns = `id, ref_number, customer_name, phone, email, pickup_location, dropoff_location,
	start_date, end_date, rental_days, vehicles, security_personnel, total_amount,
	status, payment_status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		b            entity.Booking
		vehiclesJSON []byte
		securityJSON []byte
	)
	err := row.Scan(
		&b.ID,
		&b.RefNumber,
		&b.CustomerName,
		&b.Phone,
		&b.Email,
		&b.PickupLocation,
		&b.DropoffLocation,
		&b.StartDate,
		&b.EndDate,
		&b.RentalDays,
		&vehiclesJSON,
		&securityJSON,
		&b.TotalAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(vehiclesJSON, &b.Vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles of booking %s: %w", b.RefNumber, err)
	}
	if len(securityJSON) > 0 && string(securityJSON) != "null" {
		b.SecurityPersonnel = &entity.SecurityPersonnelLine{}
		if err := json.Unmarshal(securityJSON, b.SecurityPersonnel); err != nil {
			return nil, fmt.Errorf("decode security personnel of booking %s: %w", b.RefNumber, err)
		}
	}

	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	vehiclesJSON, err := json.Marshal(booking.Vehicles)
	if err != nil {
		return fmt.Errorf("encode vehicles: %w", err)
	}

	var securityJSON any
	if booking.SecurityPersonnel != nil {
		raw, err := json.Marshal(booking.SecurityPersonnel)
		if err != nil {
			return fmt.Errorf("encode security personnel: %w", err)
		}
		securityJSON = raw
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.RefNumber,
		booking.CustomerName,
		booking.Phone,
		booking.Email,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.StartDate,
		booking.EndDate,
		booking.RentalDays,
		vehiclesJSON,
		securityJSON,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if xerrors.UniqueViolation(err) {
			r.log.Warn("Booking reference collision", zap.String("ref_number", booking.RefNumber))
			return fmt.Errorf("create booking %s: %w", booking.RefNumber, xerrors.ErrConflict)
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("ref_number", booking.RefNumber),
		)
		return xerrors.Store(err, fmt.Sprintf("create booking %s", booking.RefNumber))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, xerrors.Store(err, fmt.Sprintf("find booking by ID %s", id))
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, ref string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ref_number = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("ref_number", ref),
		)
		return nil, xerrors.Store(err, fmt.Sprintf("find booking by reference %s", ref))
	}

	return booking, nil
}

func buildBookingWhere(filter BookingFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	argCount := 1

	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.PaymentStatus != "" {
		sb.WriteString(fmt.Sprintf(" AND payment_status = $%d", argCount))
		args = append(args, filter.PaymentStatus)
		argCount++
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		sb.WriteString(fmt.Sprintf(
			" AND (ref_number ILIKE $%d OR customer_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			argCount, argCount, argCount, argCount))
		args = append(args, "%"+search+"%")
	}

	return sb.String(), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := buildBookingWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	return r.queryBookings(ctx, "list bookings", query, args...)
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := buildBookingWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, xerrors.Store(err, "count bookings")
	}
	return count, nil
}

// FindCreatedSince returns bookings created at or after since, oldest first.
func (r *bookingRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE created_at >= $1 ORDER BY created_at ASC, id ASC`
	return r.queryBookings(ctx, "find bookings created since", query, since)
}

func (r *bookingRepository) queryBookings(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, xerrors.Store(err, op)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Store(err, op)
	}

	return bookings, nil
}

func (r *bookingRepository) Totals(ctx context.Context) (*BookingTotals, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'PENDING'),
		       COUNT(*) FILTER (WHERE status = 'CONFIRMED'),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED'),
		       COUNT(*) FILTER (WHERE status = 'CANCELLED'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status IN ('CONFIRMED', 'COMPLETED')), 0)
		FROM bookings
	`

	var t BookingTotals
	err := r.db.QueryRow(ctx, query).Scan(
		&t.Total,
		&t.Pending,
		&t.Confirmed,
		&t.Completed,
		&t.Cancelled,
		&t.Revenue,
	)
	if err != nil {
		r.log.Error("Failed to aggregate booking totals", zap.Error(err))
		return nil, xerrors.Store(err, "booking totals")
	}

	return &t, nil
}

func (r *bookingRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(b *entity.Booking) error) (*entity.Booking, error) {
	var updated *entity.Booking

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

		booking, err := scanBooking(tx.QueryRow(ctx, query, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return xerrors.NotFound("booking %s", id)
		}
		if err != nil {
			return xerrors.Store(err, fmt.Sprintf("lock booking %s", id))
		}

		if err := fn(booking); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE bookings
			SET status = $2, payment_status = $3, notes = $4, updated_at = $5
			WHERE id = $1
		`,
			booking.ID,
			booking.Status,
			booking.PaymentStatus,
			booking.Notes,
			booking.UpdatedAt,
		)
		if err != nil {
			return xerrors.Store(err, fmt.Sprintf("update booking %s", id))
		}

		updated = booking
		return nil
	})
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) && !errors.Is(err, xerrors.ErrInvalidTransition) &&
			!errors.Is(err, xerrors.ErrValidation) {
			r.log.Error("Failed to mutate booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
		}
		return nil, err
	}

	return updated, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return xerrors.Store(err, fmt.Sprintf("delete booking %s", id))
	}

	if result.RowsAffected() == 0 {
		return xerrors.NotFound("booking %s", id)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
