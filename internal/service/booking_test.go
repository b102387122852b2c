package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

func newBookingService(bookingRepo *MockBookingRepo, vehicleRepo *MockVehicleRepo, userRepo *MockUserRepo, noteSvc *MockNotificationSvc) service.BookingService {
	return service.NewBookingService(bookingRepo, vehicleRepo, userRepo, noteSvc, nil)
}

func rentableVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          7,
		OwnerID:     20,
		Title:       "City Hatchback",
		Kind:        domain.VehicleKindRent,
		RentType:    domain.RentTypeHourly,
		BasePrice:   100,
		IsPublished: true,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("OverlappingWindowRejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		noteSvc := new(MockNotificationSvc)
		svc := newBookingService(bookingRepo, vehicleRepo, new(MockUserRepo), noteSvc)

		// Existing booking holds [10:00, 12:00); requested [11:00, 13:00)
		// overlaps it.
		start := day.Add(11 * time.Hour)
		end := day.Add(13 * time.Hour)
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(rentableVehicle(), nil)
		bookingRepo.On("HasConflict", ctx, int32(7), start, end).Return(true, nil)

		booking, err := svc.Create(ctx, 1, service.CreateBookingRequest{
			VehicleID: 7, StartAt: &start, EndAt: &end,
		})
		assert.Nil(t, booking)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AdjacentWindowAccepted", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		noteSvc := new(MockNotificationSvc)
		svc := newBookingService(bookingRepo, vehicleRepo, new(MockUserRepo), noteSvc)

		// [12:00, 14:00) butts against an existing [10:00, 12:00); on the
		// half-open windows that is not a collision.
		start := day.Add(12 * time.Hour)
		end := day.Add(14 * time.Hour)
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(rentableVehicle(), nil)
		bookingRepo.On("HasConflict", ctx, int32(7), start, end).Return(false, nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		noteSvc.On("Notify", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Maybe()

		booking, err := svc.Create(ctx, 1, service.CreateBookingRequest{
			VehicleID: 7, StartAt: &start, EndAt: &end,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, int32(20), booking.OwnerID)
		assert.Equal(t, float64(200), booking.TotalPrice) // 2 hours at 100
	})

	t.Run("UnpublishedVehicleRejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		svc := newBookingService(bookingRepo, vehicleRepo, new(MockUserRepo), new(MockNotificationSvc))

		v := rentableVehicle()
		v.IsPublished = false
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(v, nil)

		start := day.Add(10 * time.Hour)
		end := day.Add(12 * time.Hour)
		_, err := svc.Create(ctx, 1, service.CreateBookingRequest{VehicleID: 7, StartAt: &start, EndAt: &end})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("MissingVehicle", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		svc := newBookingService(bookingRepo, vehicleRepo, new(MockUserRepo), new(MockNotificationSvc))

		vehicleRepo.On("GetByID", ctx, int32(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.Create(ctx, 1, service.CreateBookingRequest{VehicleID: 99})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestBookingService_Accept(t *testing.T) {
	ctx := context.Background()

	pendingBooking := func() *domain.Booking {
		return &domain.Booking{ID: 3, VehicleID: 7, RenterID: 1, OwnerID: 20, Status: domain.BookingStatusPending}
	}

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		bookingRepo.On("GetByID", ctx, int32(3)).Return(pendingBooking(), nil)

		_, err := svc.Accept(ctx, 99, 3, nil)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
		bookingRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyConfirmedConflict", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		confirmed := pendingBooking()
		confirmed.Status = domain.BookingStatusConfirmed
		bookingRepo.On("GetByID", ctx, int32(3)).Return(confirmed, nil)
		bookingRepo.On("Accept", ctx, int32(3), (*domain.DriverAssignment)(nil), mock.AnythingOfType("time.Time")).Return(false, nil)

		_, err := svc.Accept(ctx, 20, 3, nil)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "confirmed")
		assert.Contains(t, err.Error(), "pending")
	})

	t.Run("DriverRequiredButMissing", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		b := pendingBooking()
		b.DriverRequired = true
		bookingRepo.On("GetByID", ctx, int32(3)).Return(b, nil)

		_, err := svc.Accept(ctx, 20, 3, nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		userRepo := new(MockUserRepo)
		noteSvc := new(MockNotificationSvc)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), userRepo, noteSvc)

		confirmed := pendingBooking()
		confirmed.Status = domain.BookingStatusConfirmed
		bookingRepo.On("GetByID", ctx, int32(3)).Return(pendingBooking(), nil).Once()
		bookingRepo.On("Accept", ctx, int32(3), (*domain.DriverAssignment)(nil), mock.AnythingOfType("time.Time")).Return(true, nil)
		bookingRepo.On("GetByID", ctx, int32(3)).Return(confirmed, nil)
		userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, Email: "renter@test.com"}, nil).Maybe()
		noteSvc.On("Notify", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Maybe()

		updated, err := svc.Accept(ctx, 20, 3, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	})
}

func TestBookingService_CompleteTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("RecordsActualKmWithoutReprice", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		noteSvc := new(MockNotificationSvc)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), noteSvc)

		inProgress := &domain.Booking{
			ID: 9, RenterID: 1, OwnerID: 20,
			Status: domain.BookingStatusInProgress, TotalPrice: 500, ExpectedKm: 30,
		}
		completed := *inProgress
		completed.Status = domain.BookingStatusCompleted
		completed.ActualKm = 52.5

		bookingRepo.On("GetByID", ctx, int32(9)).Return(inProgress, nil).Once()
		bookingRepo.On("CompleteTrip", ctx, int32(9), 52.5, mock.AnythingOfType("time.Time")).Return(true, nil)
		bookingRepo.On("GetByID", ctx, int32(9)).Return(&completed, nil)
		noteSvc.On("Notify", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Maybe()

		updated, err := svc.CompleteTrip(ctx, 1, 9, 52.5)
		assert.NoError(t, err)
		assert.Equal(t, 52.5, updated.ActualKm)
		// Price fixed at creation; exceeding the estimate changes nothing.
		assert.Equal(t, float64(500), updated.TotalPrice)
	})

	t.Run("NotInProgressConflict", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		pending := &domain.Booking{ID: 9, RenterID: 1, OwnerID: 20, Status: domain.BookingStatusPending}
		bookingRepo.On("GetByID", ctx, int32(9)).Return(pending, nil)
		bookingRepo.On("CompleteTrip", ctx, int32(9), 10.0, mock.AnythingOfType("time.Time")).Return(false, nil)

		_, err := svc.CompleteTrip(ctx, 1, 9, 10)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("NegativeKmRejected", func(t *testing.T) {
		svc := newBookingService(new(MockBookingRepo), new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))
		_, err := svc.CompleteTrip(ctx, 1, 9, -1)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		b := &domain.Booking{ID: 9, RenterID: 1, OwnerID: 20, Status: domain.BookingStatusInProgress}
		bookingRepo.On("GetByID", ctx, int32(9)).Return(b, nil)

		_, err := svc.CompleteTrip(ctx, 55, 9, 10)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("InvertedWindowRejected", func(t *testing.T) {
		svc := newBookingService(new(MockBookingRepo), new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))
		_, err := svc.CheckAvailability(ctx, 7, day.Add(2*time.Hour), day.Add(time.Hour))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Available", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newBookingService(bookingRepo, new(MockVehicleRepo), new(MockUserRepo), new(MockNotificationSvc))

		bookingRepo.On("HasConflict", ctx, int32(7), day, day.Add(time.Hour)).Return(false, nil)
		available, err := svc.CheckAvailability(ctx, 7, day, day.Add(time.Hour))
		assert.NoError(t, err)
		assert.True(t, available)
	})
}
