package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()

	vehicleRepo := new(MockVehicleRepo)
	bookingRepo := new(MockBookingRepo)
	flowRepo := new(MockFlowRepo)
	userRepo := new(MockUserRepo)
	svc := service.NewDashboardService(vehicleRepo, bookingRepo, flowRepo, userRepo)

	startOfMonth := mock.MatchedBy(func(at time.Time) bool {
		return at.Day() == 1 && at.Hour() == 0 && at.Minute() == 0
	})

	vehicleRepo.On("CountPublished", ctx).Return(int32(40), nil)
	vehicleRepo.On("CountPublishedByKind", ctx, domain.VehicleKindSell).Return(int32(12), nil)

	// Active rentals span both booking vocabularies: 3 direct + 2 flow.
	bookingRepo.On("CountByStatuses", ctx,
		[]domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusInProgress}).
		Return(int32(3), nil)
	flowRepo.On("CountByStatuses", ctx,
		[]domain.FlowStatus{domain.FlowStatusApproved, domain.FlowStatusOngoing}).
		Return(int32(2), nil)

	bookingRepo.On("CountByStatuses", ctx,
		[]domain.BookingStatus{domain.BookingStatusPending}).Return(int32(4), nil)
	flowRepo.On("CountByStatuses", ctx,
		[]domain.FlowStatus{domain.FlowStatusPending}).Return(int32(1), nil)

	userRepo.On("Count", ctx).Return(int32(150), nil)

	// Revenue: completed direct bookings plus paid flow breakdowns, one of
	// which comes from a legacy row keyed "total" instead of "amount".
	legacy, err := domain.ParsePriceBreakdown([]byte(`{"total": 750}`))
	require.NoError(t, err)
	bookingRepo.On("SumCompletedRevenueSince", ctx, startOfMonth).Return(float64(2000), nil)
	flowRepo.On("ListPaidBreakdowns", ctx, startOfMonth).Return([]*domain.PriceBreakdown{
		{Amount: 1200, Currency: "₹"},
		legacy,
	}, nil)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(40), overview.TotalVehicles)
	assert.Equal(t, int32(12), overview.TotalSales)
	assert.Equal(t, int32(5), overview.ActiveRentals)
	assert.Equal(t, int32(5), overview.PendingBookings)
	assert.Equal(t, int32(150), overview.TotalUsers)
	assert.Equal(t, float64(3950), overview.MonthlyRevenue)
}
