package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type bookingFlowRepository struct {
	db *sql.DB
}

func NewBookingFlowRepository(db *sql.DB) repository.BookingFlowRepository {
	return &bookingFlowRepository{db: db}
}

const bookingFlowColumns = `
	id, user_id, vehicle_id, phone, email, COALESCE(description, ''),
	start_date, end_date, driver_included, document_images, price,
	payment_method, booking_status, payment_status, COALESCE(admin_notes, ''),
	created_at, updated_at, approved_at, rejected_at, started_at, completed_at, paid_at`

func scanBookingFlow(row interface{ Scan(...any) error }) (*domain.BookingFlow, error) {
	b := &domain.BookingFlow{}
	var priceRaw []byte
	err := row.Scan(
		&b.ID, &b.UserID, &b.VehicleID, &b.Phone, &b.Email, &b.Description,
		&b.StartDate, &b.EndDate, &b.DriverIncluded, pq.Array(&b.DocumentImages), &priceRaw,
		&b.PaymentMethod, &b.BookingStatus, &b.PaymentStatus, &b.AdminNotes,
		&b.CreatedAt, &b.UpdatedAt, &b.ApprovedAt, &b.RejectedAt, &b.StartedAt, &b.CompletedAt, &b.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	if b.Price, err = domain.ParsePriceBreakdown(priceRaw); err != nil {
		return nil, fmt.Errorf("flow booking %d: parse price: %w", b.ID, err)
	}
	return b, nil
}

func (r *bookingFlowRepository) Create(ctx context.Context, b *domain.BookingFlow) error {
	var priceRaw []byte
	if b.Price != nil {
		var err error
		if priceRaw, err = json.Marshal(b.Price); err != nil {
			return err
		}
	}
	query := `
		INSERT INTO booking_flows (
			user_id, vehicle_id, phone, email, description,
			start_date, end_date, driver_included, document_images, price,
			payment_method, booking_status, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		b.UserID, b.VehicleID, b.Phone, b.Email, b.Description,
		b.StartDate, b.EndDate, b.DriverIncluded, pq.Array(b.DocumentImages), priceRaw,
		b.PaymentMethod, b.BookingStatus, b.PaymentStatus, time.Now(),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *bookingFlowRepository) GetByID(ctx context.Context, id int32) (*domain.BookingFlow, error) {
	query := `SELECT` + bookingFlowColumns + ` FROM booking_flows WHERE id = $1`
	return scanBookingFlow(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingFlowRepository) transition(ctx context.Context, query string, args ...any) (bool, error) {
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

// Transitions only assign admin_notes when notes were supplied; an empty
// string keeps whatever notes an earlier transition stored.
func (r *bookingFlowRepository) Approve(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	query := `
		UPDATE booking_flows SET
			booking_status = 'approved', admin_notes = COALESCE(NULLIF($3, ''), admin_notes),
			approved_at = $2, updated_at = $2
		WHERE id = $1 AND booking_status = 'pending'
	`
	return r.transition(ctx, query, id, at, notes)
}

func (r *bookingFlowRepository) Reject(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	query := `
		UPDATE booking_flows SET
			booking_status = 'rejected', admin_notes = COALESCE(NULLIF($3, ''), admin_notes),
			rejected_at = $2, updated_at = $2
		WHERE id = $1 AND booking_status = 'pending'
	`
	return r.transition(ctx, query, id, at, notes)
}

func (r *bookingFlowRepository) Start(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	query := `
		UPDATE booking_flows SET
			booking_status = 'ongoing', admin_notes = COALESCE(NULLIF($3, ''), admin_notes),
			started_at = $2, updated_at = $2
		WHERE id = $1 AND booking_status = 'approved'
	`
	return r.transition(ctx, query, id, at, notes)
}

func (r *bookingFlowRepository) Complete(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	query := `
		UPDATE booking_flows SET
			booking_status = 'completed', payment_status = 'paid',
			admin_notes = COALESCE(NULLIF($3, ''), admin_notes),
			completed_at = $2, paid_at = $2, updated_at = $2
		WHERE id = $1 AND booking_status = 'ongoing'
	`
	return r.transition(ctx, query, id, at, notes)
}

func (r *bookingFlowRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	var total int32
	countQuery := `SELECT COUNT(*) FROM booking_flows WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + bookingFlowColumns + `
		FROM booking_flows WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryList(ctx, query, total, userID, pageSize, (page-1)*pageSize)
}

func (r *bookingFlowRepository) ListAll(ctx context.Context, status domain.FlowStatus, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	where := ``
	args := []any{}
	if status != "" {
		args = append(args, status)
		where = `WHERE booking_status = $1`
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking_flows `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM booking_flows %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingFlowColumns, where, len(args)-1, len(args))
	return r.queryList(ctx, query, total, args...)
}

func (r *bookingFlowRepository) queryList(ctx context.Context, query string, total int32, args ...any) ([]domain.BookingFlow, int32, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var flows []domain.BookingFlow
	for rows.Next() {
		b, err := scanBookingFlow(rows)
		if err != nil {
			return nil, 0, err
		}
		flows = append(flows, *b)
	}
	return flows, total, rows.Err()
}

func (r *bookingFlowRepository) CountByStatuses(ctx context.Context, statuses []domain.FlowStatus) (int32, error) {
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}
	var count int32
	query := `SELECT COUNT(*) FROM booking_flows WHERE booking_status = ANY($1)`
	err := r.db.QueryRowContext(ctx, query, pq.Array(statusStrs)).Scan(&count)
	return count, err
}

func (r *bookingFlowRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM booking_flows WHERE booking_status = 'pending' AND created_at < $1`
	err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&count)
	return count, err
}

// ListPaidBreakdowns feeds revenue reconciliation. Rows whose price document
// fails to parse are skipped rather than failing the whole report.
func (r *bookingFlowRepository) ListPaidBreakdowns(ctx context.Context, since time.Time) ([]*domain.PriceBreakdown, error) {
	query := `
		SELECT price FROM booking_flows
		WHERE booking_status = 'completed' AND payment_status = 'paid'
		  AND price IS NOT NULL AND created_at >= $1
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdowns []*domain.PriceBreakdown
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		pb, err := domain.ParsePriceBreakdown(raw)
		if err != nil || pb == nil {
			continue
		}
		breakdowns = append(breakdowns, pb)
	}
	return breakdowns, rows.Err()
}
