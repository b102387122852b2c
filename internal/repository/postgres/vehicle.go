package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `
	id, owner_id, title, COALESCE(description, ''), category, vehicle_kind,
	COALESCE(rent_type, ''), base_price, hourly_price, daily_price, per_km_price,
	currency_symbol, driver_available, driver_price, COALESCE(driver_label, ''),
	COALESCE(location, ''), is_published, is_deleted, created_at, deleted_at`

func scanVehicle(row interface{ Scan(...any) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.Category, &v.Kind,
		&v.RentType, &v.BasePrice, &v.HourlyPrice, &v.DailyPrice, &v.PerKmPrice,
		&v.CurrencySymbol, &v.DriverAvailable, &v.DriverPrice, &v.DriverLabel,
		&v.Location, &v.IsPublished, &v.IsDeleted, &v.CreatedAt, &v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			owner_id, title, description, category, vehicle_kind, rent_type,
			base_price, hourly_price, daily_price, per_km_price, currency_symbol,
			driver_available, driver_price, driver_label, location,
			is_published, is_deleted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, false, $17)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		v.OwnerID, v.Title, v.Description, v.Category, v.Kind, v.RentType,
		v.BasePrice, v.HourlyPrice, v.DailyPrice, v.PerKmPrice, v.CurrencySymbol,
		v.DriverAvailable, v.DriverPrice, v.DriverLabel, v.Location,
		v.IsPublished, time.Now(),
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `
		UPDATE vehicles SET
			title = $1, description = $2, category = $3, vehicle_kind = $4,
			rent_type = $5, base_price = $6, hourly_price = $7, daily_price = $8,
			per_km_price = $9, currency_symbol = $10, driver_available = $11,
			driver_price = $12, driver_label = $13, location = $14, is_published = $15
		WHERE id = $16 AND is_deleted = false
	`
	_, err := r.db.ExecContext(ctx, query,
		v.Title, v.Description, v.Category, v.Kind,
		v.RentType, v.BasePrice, v.HourlyPrice, v.DailyPrice,
		v.PerKmPrice, v.CurrencySymbol, v.DriverAvailable,
		v.DriverPrice, v.DriverLabel, v.Location, v.IsPublished, v.ID,
	)
	return err
}

func (r *vehicleRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE vehicles SET is_deleted = true, is_published = false, deleted_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, kind domain.VehicleKind, category domain.VehicleCategory, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	where := `WHERE is_published = true AND is_deleted = false`
	args := []any{}
	if kind != "" {
		args = append(args, kind)
		where += fmt.Sprintf(` AND vehicle_kind = $%d`, len(args))
	}
	if category != "" {
		args = append(args, category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM vehicles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		vehicleColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, total, rows.Err()
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	var total int32
	countQuery := `SELECT COUNT(*) FROM vehicles WHERE owner_id = $1 AND is_deleted = false`
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + vehicleColumns + `
		FROM vehicles
		WHERE owner_id = $1 AND is_deleted = false
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, total, rows.Err()
}

func (r *vehicleRepository) CountPublished(ctx context.Context) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM vehicles WHERE is_published = true AND is_deleted = false`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *vehicleRepository) CountPublishedByKind(ctx context.Context, kind domain.VehicleKind) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM vehicles WHERE vehicle_kind = $1 AND is_published = true AND is_deleted = false`
	err := r.db.QueryRowContext(ctx, query, kind).Scan(&count)
	return count, err
}
