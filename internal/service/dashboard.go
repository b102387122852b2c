package service

import (
	"context"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

// dashboardService reconciles the two booking vocabularies into one set of
// KPIs. It is read-only: every figure is recomputed from the stores on each
// call, never cached or mutated.
type dashboardService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
	flowRepo    repository.BookingFlowRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewDashboardService(
	vehicleRepo repository.VehicleRepository,
	bookingRepo repository.BookingRepository,
	flowRepo repository.BookingFlowRepository,
	userRepo repository.UserRepository,
) DashboardService {
	return &dashboardService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		flowRepo:    flowRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	totalVehicles, err := s.vehicleRepo.CountPublished(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	totalSales, err := s.vehicleRepo.CountPublishedByKind(ctx, domain.VehicleKindSell)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Active rentals: direct bookings count confirmed/in_progress, flow
	// bookings count approved/ongoing. Pending is summed across both.
	activeBookings, err := s.bookingRepo.CountByStatuses(ctx,
		[]domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusInProgress})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	activeFlows, err := s.flowRepo.CountByStatuses(ctx,
		[]domain.FlowStatus{domain.FlowStatusApproved, domain.FlowStatusOngoing})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	pendingBookings, err := s.bookingRepo.CountByStatuses(ctx,
		[]domain.BookingStatus{domain.BookingStatusPending})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	pendingFlows, err := s.flowRepo.CountByStatuses(ctx,
		[]domain.FlowStatus{domain.FlowStatusPending})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, err := s.bookingRepo.SumCompletedRevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	breakdowns, err := s.flowRepo.ListPaidBreakdowns(ctx, startOfMonth)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, pb := range breakdowns {
		revenue += pb.Amount
	}

	return &domain.DashboardOverview{
		TotalVehicles:   totalVehicles,
		TotalSales:      totalSales,
		ActiveRentals:   activeBookings + activeFlows,
		PendingBookings: pendingBookings + pendingFlows,
		TotalUsers:      totalUsers,
		MonthlyRevenue:  revenue,
	}, nil
}
