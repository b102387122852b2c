package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	id, vehicle_id, renter_id, owner_id, start_at, end_at, expected_km, actual_km,
	COALESCE(pickup_location, ''), COALESCE(destination, ''),
	driver_required, driver_assigned, COALESCE(driver_name, ''),
	COALESCE(driver_phone, ''), COALESCE(driver_license, ''),
	vehicle_price, driver_price, total_price,
	status, owner_accepted, owner_accepted_at, trip_started_at, trip_completed_at,
	payment_method, payment_status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.VehicleID, &b.RenterID, &b.OwnerID, &b.StartAt, &b.EndAt, &b.ExpectedKm, &b.ActualKm,
		&b.PickupLocation, &b.Destination,
		&b.DriverRequired, &b.DriverAssigned, &b.DriverName,
		&b.DriverPhone, &b.DriverLicense,
		&b.VehiclePrice, &b.DriverPrice, &b.TotalPrice,
		&b.Status, &b.OwnerAccepted, &b.OwnerAcceptedAt, &b.TripStartedAt, &b.TripCompletedAt,
		&b.PaymentMethod, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			vehicle_id, renter_id, owner_id, start_at, end_at, expected_km,
			pickup_location, destination, driver_required,
			vehicle_price, driver_price, total_price,
			status, payment_method, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		b.VehicleID, b.RenterID, b.OwnerID, b.StartAt, b.EndAt, b.ExpectedKm,
		b.PickupLocation, b.Destination, b.DriverRequired,
		b.VehiclePrice, b.DriverPrice, b.TotalPrice,
		b.Status, b.PaymentMethod, b.PaymentStatus, time.Now(),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

// HasConflict applies the half-open overlap test: two windows collide when
// each starts before the other ends. Only statuses that occupy the vehicle
// participate.
func (r *bookingRepository) HasConflict(ctx context.Context, vehicleID int32, startAt, endAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vehicle_id = $1
			  AND status IN ('pending', 'confirmed', 'in_progress')
			  AND start_at < $3
			  AND $2 < end_at
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, vehicleID, startAt, endAt).Scan(&exists)
	return exists, err
}

// transition runs a conditional update guarded on the current status and
// reports whether a row matched. Zero rows means the booking was missing or
// held a different status; the caller disambiguates.
func (r *bookingRepository) transition(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) Accept(ctx context.Context, id int32, assignment *domain.DriverAssignment, at time.Time) (bool, error) {
	if assignment != nil {
		query := `
			UPDATE bookings SET
				status = 'confirmed', owner_accepted = true, owner_accepted_at = $2,
				driver_assigned = true, driver_name = $3, driver_phone = $4, driver_license = $5,
				updated_at = $2
			WHERE id = $1 AND status = 'pending'
		`
		return r.transition(ctx, query, id, at, assignment.Name, assignment.Phone, assignment.License)
	}
	query := `
		UPDATE bookings SET
			status = 'confirmed', owner_accepted = true, owner_accepted_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'pending'
	`
	return r.transition(ctx, query, id, at)
}

func (r *bookingRepository) Decline(ctx context.Context, id int32, at time.Time) (bool, error) {
	query := `
		UPDATE bookings SET status = 'cancelled', updated_at = $2
		WHERE id = $1 AND status = 'pending'
	`
	return r.transition(ctx, query, id, at)
}

func (r *bookingRepository) StartTrip(ctx context.Context, id int32, at time.Time) (bool, error) {
	query := `
		UPDATE bookings SET status = 'in_progress', trip_started_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'confirmed'
	`
	return r.transition(ctx, query, id, at)
}

func (r *bookingRepository) CompleteTrip(ctx context.Context, id int32, actualKm float64, at time.Time) (bool, error) {
	query := `
		UPDATE bookings SET status = 'completed', actual_km = $3, trip_completed_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'in_progress'
	`
	return r.transition(ctx, query, id, at, actualKm)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column string, userID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := fmt.Sprintf(`WHERE %s = $1`, column)
	args := []any{userID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, total, rows.Err()
}

func (r *bookingRepository) CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (int32, error) {
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}
	var count int32
	query := `SELECT COUNT(*) FROM bookings WHERE status = ANY($1)`
	err := r.db.QueryRowContext(ctx, query, pq.Array(statusStrs)).Scan(&count)
	return count, err
}

func (r *bookingRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM bookings WHERE status = 'pending' AND created_at < $1`
	err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&count)
	return count, err
}

func (r *bookingRepository) SumCompletedRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(total_price), 0) FROM bookings
		WHERE status = 'completed' AND created_at >= $1
	`
	err := r.db.QueryRowContext(ctx, query, since).Scan(&total)
	return total, err
}
