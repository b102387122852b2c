package repository

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int32, error)

	// Push tokens
	ListPushTokens(ctx context.Context, userID int32) ([]string, error)
	AddPushToken(ctx context.Context, userID int32, token string) error
	RemovePushTokens(ctx context.Context, userID int32, tokens []string) error
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	SoftDelete(ctx context.Context, id int32) error
	List(ctx context.Context, kind domain.VehicleKind, category domain.VehicleCategory, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	CountPublished(ctx context.Context) (int32, error)
	CountPublishedByKind(ctx context.Context, kind domain.VehicleKind) (int32, error)
}

// BookingRepository persists direct (owner-mediated) bookings. Every
// state-changing method is an atomic conditional update keyed on the
// required source status; the bool result reports whether a row matched,
// so a lost CAS race surfaces as false rather than a silent overwrite.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)

	// HasConflict reports whether an active booking for the vehicle
	// overlaps the half-open window [startAt, endAt).
	HasConflict(ctx context.Context, vehicleID int32, startAt, endAt time.Time) (bool, error)

	Accept(ctx context.Context, id int32, assignment *domain.DriverAssignment, at time.Time) (bool, error)
	Decline(ctx context.Context, id int32, at time.Time) (bool, error)
	StartTrip(ctx context.Context, id int32, at time.Time) (bool, error)
	CompleteTrip(ctx context.Context, id int32, actualKm float64, at time.Time) (bool, error)

	ListByRenter(ctx context.Context, renterID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)

	CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (int32, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error)
	SumCompletedRevenueSince(ctx context.Context, since time.Time) (float64, error)
}

// BookingFlowRepository persists admin-mediated bookings. Transitions use
// the same conditional-update contract as BookingRepository.
type BookingFlowRepository interface {
	Create(ctx context.Context, b *domain.BookingFlow) error
	GetByID(ctx context.Context, id int32) (*domain.BookingFlow, error)

	Approve(ctx context.Context, id int32, notes string, at time.Time) (bool, error)
	Reject(ctx context.Context, id int32, notes string, at time.Time) (bool, error)
	Start(ctx context.Context, id int32, notes string, at time.Time) (bool, error)
	// Complete marks the flow completed and paid in one update.
	Complete(ctx context.Context, id int32, notes string, at time.Time) (bool, error)

	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.BookingFlow, int32, error)
	ListAll(ctx context.Context, status domain.FlowStatus, page, pageSize int32) ([]domain.BookingFlow, int32, error)

	CountByStatuses(ctx context.Context, statuses []domain.FlowStatus) (int32, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error)
	// ListPaidBreakdowns returns the price breakdowns of completed, paid
	// flow bookings created since the given instant.
	ListPaidBreakdowns(ctx context.Context, since time.Time) ([]*domain.PriceBreakdown, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int32) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int32, unreadOnly bool, limit, offset int32) ([]domain.Notification, int32, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) (int32, error)
	Delete(ctx context.Context, id, userID int32) error
	DeleteRead(ctx context.Context, userID int32) (int32, error)
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
