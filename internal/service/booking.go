package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/pricing"
	"rentwheels-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	noteSvc     NotificationService
	emailSvc    EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
	}
}

func (s *bookingService) Create(ctx context.Context, renterID int32, req CreateBookingRequest) (*domain.Booking, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, apperr.Internal(err)
	}
	if !vehicle.Rentable() {
		return nil, apperr.Validation("this vehicle is not available for rent")
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentMethodOffline
	}
	if req.PaymentMethod != domain.PaymentMethodOnline && req.PaymentMethod != domain.PaymentMethodOffline {
		return nil, apperr.Validationf("invalid payment method %q", req.PaymentMethod)
	}

	window := pricing.Window{ExpectedKm: req.ExpectedKm}
	if req.StartAt != nil {
		window.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		window.EndAt = *req.EndAt
	}
	quote, err := pricing.Compute(vehicle, window, req.DriverRequired)
	if err != nil {
		return nil, err
	}

	if req.StartAt != nil && req.EndAt != nil {
		conflict, err := s.bookingRepo.HasConflict(ctx, vehicle.ID, *req.StartAt, *req.EndAt)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if conflict {
			return nil, apperr.Conflict("vehicle not available for selected time")
		}
	}

	booking := &domain.Booking{
		VehicleID:      vehicle.ID,
		RenterID:       renterID,
		OwnerID:        vehicle.OwnerID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		ExpectedKm:     req.ExpectedKm,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		DriverRequired: req.DriverRequired,
		VehiclePrice:   quote.VehiclePrice,
		DriverPrice:    quote.DriverPrice,
		TotalPrice:     quote.TotalPrice,
		Status:         domain.BookingStatusPending,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  domain.PaymentStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, apperr.Internal(err)
	}

	s.notifyAsync(booking.OwnerID, booking.ID, "New booking request",
		fmt.Sprintf("You have a new booking request for %s.", vehicle.Title))
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, callerID int32, role domain.Role, id int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && booking.RenterID != callerID && booking.OwnerID != callerID {
		return nil, apperr.Forbidden("not authorized to view this booking")
	}
	return booking, nil
}

func (s *bookingService) Accept(ctx context.Context, callerID, id int32, assignment *domain.DriverAssignment) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != callerID {
		return nil, apperr.Forbidden("not authorized to accept this booking")
	}
	if booking.DriverRequired && !booking.DriverAssigned && assignment == nil {
		return nil, apperr.Validation("driver details are required to accept this booking")
	}

	ok, err := s.bookingRepo.Accept(ctx, id, assignment, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, "accepted", domain.BookingStatusPending)
	}

	updated, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(updated.RenterID, updated.ID, "Booking confirmed",
		"Your booking request was accepted by the owner.")
	s.emailAsync(ctx, updated.RenterID, "Booking confirmed",
		fmt.Sprintf("Your booking #%d has been confirmed.", updated.ID))
	return updated, nil
}

func (s *bookingService) Decline(ctx context.Context, callerID, id int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != callerID {
		return nil, apperr.Forbidden("not authorized to decline this booking")
	}

	ok, err := s.bookingRepo.Decline(ctx, id, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, "declined", domain.BookingStatusPending)
	}

	updated, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(updated.RenterID, updated.ID, "Booking declined",
		"Your booking request was declined by the owner.")
	return updated, nil
}

func (s *bookingService) StartTrip(ctx context.Context, callerID, id int32) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != callerID && booking.OwnerID != callerID {
		return nil, apperr.Forbidden("not authorized to start this trip")
	}

	ok, err := s.bookingRepo.StartTrip(ctx, id, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, "started", domain.BookingStatusConfirmed)
	}

	updated, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	other := updated.RenterID
	if callerID == updated.RenterID {
		other = updated.OwnerID
	}
	s.notifyAsync(other, updated.ID, "Trip started", "The trip for your booking has started.")
	return updated, nil
}

func (s *bookingService) CompleteTrip(ctx context.Context, callerID, id int32, actualKm float64) (*domain.Booking, error) {
	if actualKm < 0 {
		return nil, apperr.Validation("actual km cannot be negative")
	}
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != callerID && booking.OwnerID != callerID {
		return nil, apperr.Forbidden("not authorized to complete this trip")
	}

	// ActualKm is recorded for the trip record only; the price computed at
	// creation stands.
	ok, err := s.bookingRepo.CompleteTrip(ctx, id, actualKm, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, "completed", domain.BookingStatusInProgress)
	}

	updated, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	other := updated.RenterID
	if callerID == updated.RenterID {
		other = updated.OwnerID
	}
	s.notifyAsync(other, updated.ID, "Trip completed", "The trip for your booking has completed.")
	return updated, nil
}

func (s *bookingService) ListMine(ctx context.Context, renterID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	bookings, total, err := s.bookingRepo.ListByRenter(ctx, renterID, status, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return bookings, total, nil
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	bookings, total, err := s.bookingRepo.ListByOwner(ctx, ownerID, status, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return bookings, total, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, vehicleID int32, startAt, endAt time.Time) (bool, error) {
	if !endAt.After(startAt) {
		return false, apperr.Validation("end time must be after start time")
	}
	conflict, err := s.bookingRepo.HasConflict(ctx, vehicleID, startAt, endAt)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return !conflict, nil
}

func (s *bookingService) getBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal(err)
	}
	return booking, nil
}

// transitionConflict reports a lost conditional update, naming the status the
// booking actually holds against the one the transition required.
func (s *bookingService) transitionConflict(ctx context.Context, id int32, verb string, required domain.BookingStatus) error {
	current, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	return apperr.Conflictf("booking cannot be %s: current status is %s, required %s",
		verb, current.Status, required)
}

// notifyAsync dispatches a booking notification off the request path. The
// transition has already committed; delivery failures are logged only.
func (s *bookingService) notifyAsync(userID, bookingID int32, title, message string) {
	if s.noteSvc == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		id := bookingID
		err := s.noteSvc.Notify(ctx, &domain.Notification{
			UserID:    userID,
			Type:      domain.NotificationTypeBooking,
			Title:     title,
			Message:   message,
			BookingID: &id,
		})
		if err != nil {
			logger.Error("failed to send booking notification", "user_id", userID, "booking_id", bookingID, "error", err)
		}
	}()
}

func (s *bookingService) emailAsync(ctx context.Context, userID int32, subject, body string) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("skipping booking email, user lookup failed", "user_id", userID, "error", err)
		return
	}
	s.emailSvc.SendBookingStatus(user.Email, subject, body)
}

func normalizePage(page int32) int32 {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(size int32) int32 {
	if size < 1 || size > 100 {
		return 20
	}
	return size
}
