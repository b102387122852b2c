package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type bookingFlowService struct {
	flowRepo    repository.BookingFlowRepository
	vehicleRepo repository.VehicleRepository
	noteSvc     NotificationService
}

func NewBookingFlowService(
	flowRepo repository.BookingFlowRepository,
	vehicleRepo repository.VehicleRepository,
	noteSvc NotificationService,
) BookingFlowService {
	return &bookingFlowService{
		flowRepo:    flowRepo,
		vehicleRepo: vehicleRepo,
		noteSvc:     noteSvc,
	}
}

func (s *bookingFlowService) Create(ctx context.Context, userID int32, req CreateFlowRequest) (*domain.BookingFlow, error) {
	if req.Phone == "" || req.Email == "" || req.VehicleID == 0 || req.PaymentMethod == "" {
		return nil, apperr.Validation("missing required fields: phone, email, vehicleId, paymentMethod")
	}
	if req.PaymentMethod != domain.FlowPaymentOnline && req.PaymentMethod != domain.FlowPaymentPayToDriver {
		return nil, apperr.Validation(`paymentMethod must be either "online" or "pay_to_driver"`)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("invalid email format")
	}
	if len(req.DocumentImages) > domain.MaxDocumentImages {
		return nil, apperr.Validationf("maximum %d document images allowed", domain.MaxDocumentImages)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, apperr.Internal(err)
	}

	flow := &domain.BookingFlow{
		UserID:         userID,
		VehicleID:      req.VehicleID,
		Phone:          req.Phone,
		Email:          req.Email,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DriverIncluded: req.DriverIncluded,
		DocumentImages: req.DocumentImages,
		Price:          req.Price,
		PaymentMethod:  req.PaymentMethod,
		BookingStatus:  domain.FlowStatusPending,
		PaymentStatus:  domain.FlowPaymentUnpaid,
	}
	if err := s.flowRepo.Create(ctx, flow); err != nil {
		return nil, apperr.Internal(err)
	}

	s.notifyAsync(flow.UserID, flow.ID, "Booking created",
		fmt.Sprintf("Your booking request for %s has been received and is awaiting admin approval.", vehicle.Title))
	return flow, nil
}

func (s *bookingFlowService) Get(ctx context.Context, callerID int32, role domain.Role, id int32) (*domain.BookingFlow, error) {
	flow, err := s.getFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && flow.UserID != callerID {
		return nil, apperr.Forbidden("not authorized to view this booking")
	}
	return flow, nil
}

func (s *bookingFlowService) ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	flows, total, err := s.flowRepo.ListByUser(ctx, userID, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return flows, total, nil
}

func (s *bookingFlowService) ListAll(ctx context.Context, role domain.Role, status domain.FlowStatus, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	if role != domain.RoleAdmin {
		return nil, 0, apperr.Forbidden("admin access required")
	}
	flows, total, err := s.flowRepo.ListAll(ctx, status, normalizePage(page), normalizePageSize(pageSize))
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return flows, total, nil
}

func (s *bookingFlowService) Approve(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error) {
	return s.transition(ctx, role, id, "approved", domain.FlowStatusPending,
		func(at time.Time) (bool, error) { return s.flowRepo.Approve(ctx, id, notes, at) },
		func(flow *domain.BookingFlow) (string, string) {
			message := "Your booking has been approved by the admin."
			if v, err := s.vehicleRepo.GetByID(ctx, flow.VehicleID); err == nil {
				message = fmt.Sprintf("Your booking for %s has been approved by the admin.", v.Title)
			}
			return "Booking approved", message
		})
}

func (s *bookingFlowService) Reject(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error) {
	return s.transition(ctx, role, id, "rejected", domain.FlowStatusPending,
		func(at time.Time) (bool, error) { return s.flowRepo.Reject(ctx, id, notes, at) },
		func(flow *domain.BookingFlow) (string, string) {
			reason := strings.TrimSpace(notes)
			if reason == "" {
				reason = "Please contact support for more information."
			}
			return "Booking rejected", "Your booking has been rejected. " + reason
		})
}

func (s *bookingFlowService) Start(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error) {
	return s.transition(ctx, role, id, "started", domain.FlowStatusApproved,
		func(at time.Time) (bool, error) { return s.flowRepo.Start(ctx, id, notes, at) },
		func(flow *domain.BookingFlow) (string, string) {
			return "Trip started", "Your booking is now ongoing."
		})
}

func (s *bookingFlowService) Complete(ctx context.Context, role domain.Role, id int32, notes string, paymentConfirmed bool) (*domain.BookingFlow, error) {
	if role != domain.RoleAdmin {
		return nil, apperr.Forbidden("admin access required")
	}
	flow, err := s.getFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	// Both payment methods require an explicit attestation before the flow
	// may complete; nothing about the booking changes when it is absent.
	if !paymentConfirmed {
		if flow.PaymentMethod == domain.FlowPaymentPayToDriver {
			return nil, apperr.Validation("payment confirmation required: please confirm that payment was received from the driver")
		}
		return nil, apperr.Validation("payment confirmation required for online payment method")
	}

	ok, err := s.flowRepo.Complete(ctx, id, notes, time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, "completed", domain.FlowStatusOngoing)
	}

	updated, err := s.getFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(updated.UserID, updated.ID, "Booking completed",
		"Your booking has completed and payment is confirmed.")
	return updated, nil
}

func (s *bookingFlowService) transition(
	ctx context.Context,
	role domain.Role,
	id int32,
	verb string,
	required domain.FlowStatus,
	apply func(at time.Time) (bool, error),
	note func(flow *domain.BookingFlow) (title, message string),
) (*domain.BookingFlow, error) {
	if role != domain.RoleAdmin {
		return nil, apperr.Forbidden("admin access required")
	}
	if _, err := s.getFlow(ctx, id); err != nil {
		return nil, err
	}

	ok, err := apply(time.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, verb, required)
	}

	updated, err := s.getFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	title, message := note(updated)
	s.notifyAsync(updated.UserID, updated.ID, title, message)
	return updated, nil
}

func (s *bookingFlowService) transitionConflict(ctx context.Context, id int32, verb string, required domain.FlowStatus) error {
	current, err := s.getFlow(ctx, id)
	if err != nil {
		return err
	}
	return apperr.Conflictf("booking cannot be %s: current status is %s, required %s",
		verb, current.BookingStatus, required)
}

func (s *bookingFlowService) getFlow(ctx context.Context, id int32) (*domain.BookingFlow, error) {
	flow, err := s.flowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal(err)
	}
	return flow, nil
}

func (s *bookingFlowService) notifyAsync(userID, bookingID int32, title, message string) {
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
			// The transition already committed; a missed notification is not
			// a reason to fail it.
			logger.Error("failed to send flow booking notification", "user_id", userID, "booking_id", bookingID, "error", err)
		}
	}()
}
