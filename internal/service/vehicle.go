package service

import (
	"context"
	"database/sql"
	"errors"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/pricing"
	"rentwheels-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) Create(ctx context.Context, ownerID int32, v *domain.Vehicle) error {
	if v.Title == "" {
		return apperr.Validation("title is required")
	}
	if v.Kind == "" {
		return apperr.Validation("vehicle kind is required")
	}
	if v.Kind == domain.VehicleKindRent && v.RentType == "" {
		return apperr.Validation("rent type is required for rentable vehicles")
	}
	if v.BasePrice < 0 {
		return apperr.Validation("base price cannot be negative")
	}
	if v.CurrencySymbol == "" {
		v.CurrencySymbol = "₹"
	}
	v.OwnerID = ownerID
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *vehicleService) Get(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.getVehicle(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, callerID int32, role domain.Role, v *domain.Vehicle) error {
	existing, err := s.getVehicle(ctx, v.ID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && existing.OwnerID != callerID {
		return apperr.Forbidden("not authorized to update this vehicle")
	}
	if v.BasePrice < 0 {
		return apperr.Validation("base price cannot be negative")
	}
	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *vehicleService) Delete(ctx context.Context, callerID int32, role domain.Role, id int32) error {
	existing, err := s.getVehicle(ctx, id)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && existing.OwnerID != callerID {
		return apperr.Forbidden("not authorized to delete this vehicle")
	}
	if err := s.vehicleRepo.SoftDelete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *vehicleService) List(ctx context.Context, kind domain.VehicleKind, category domain.VehicleCategory, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, kind, category, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return vehicles, total, nil
}

func (s *vehicleService) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	vehicles, total, err := s.vehicleRepo.ListByOwner(ctx, ownerID, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return vehicles, total, nil
}

func (s *vehicleService) PricingOptions(ctx context.Context, vehicleID int32) ([]pricing.Option, *pricing.Option, error) {
	vehicle, err := s.getVehicle(ctx, vehicleID)
	if err != nil {
		return nil, nil, err
	}
	return pricing.Options(vehicle), pricing.DriverOption(vehicle), nil
}

func (s *vehicleService) getVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, apperr.Internal(err)
	}
	if vehicle.IsDeleted {
		return nil, apperr.NotFound("vehicle not found")
	}
	return vehicle, nil
}
