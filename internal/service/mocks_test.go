package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentwheels-backend/internal/domain"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, kind domain.VehicleKind, category domain.VehicleCategory, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, kind, category, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) CountPublished(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockVehicleRepo) CountPublishedByKind(ctx context.Context, kind domain.VehicleKind) (int32, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int32), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) HasConflict(ctx context.Context, vehicleID int32, startAt, endAt time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, startAt, endAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) Accept(ctx context.Context, id int32, assignment *domain.DriverAssignment, at time.Time) (bool, error) {
	args := m.Called(ctx, id, assignment, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) Decline(ctx context.Context, id int32, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) StartTrip(ctx context.Context, id int32, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) CompleteTrip(ctx context.Context, id int32, actualKm float64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, actualKm, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (int32, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) SumCompletedRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Error(1)
}

// MockFlowRepo
type MockFlowRepo struct {
	mock.Mock
}

func (m *MockFlowRepo) Create(ctx context.Context, b *domain.BookingFlow) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockFlowRepo) GetByID(ctx context.Context, id int32) (*domain.BookingFlow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingFlow), args.Error(1)
}
func (m *MockFlowRepo) Approve(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, notes, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockFlowRepo) Reject(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, notes, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockFlowRepo) Start(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, notes, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockFlowRepo) Complete(ctx context.Context, id int32, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, notes, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockFlowRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.BookingFlow), args.Get(1).(int32), args.Error(2)
}
func (m *MockFlowRepo) ListAll(ctx context.Context, status domain.FlowStatus, page, pageSize int32) ([]domain.BookingFlow, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.BookingFlow), args.Get(1).(int32), args.Error(2)
}
func (m *MockFlowRepo) CountByStatuses(ctx context.Context, statuses []domain.FlowStatus) (int32, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockFlowRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockFlowRepo) ListPaidBreakdowns(ctx context.Context, since time.Time) ([]*domain.PriceBreakdown, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PriceBreakdown), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockUserRepo) ListPushTokens(ctx context.Context, userID int32) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockUserRepo) AddPushToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}
func (m *MockUserRepo) RemovePushTokens(ctx context.Context, userID int32, tokens []string) error {
	args := m.Called(ctx, userID, tokens)
	return args.Error(0)
}

// MockNotificationSvc
type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) Notify(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationSvc) List(ctx context.Context, userID int32, unreadOnly bool, page, pageSize int32) ([]domain.Notification, int32, int32, error) {
	args := m.Called(ctx, userID, unreadOnly, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Get(2).(int32), args.Error(3)
}
func (m *MockNotificationSvc) MarkAsRead(ctx context.Context, userID, id int32) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
func (m *MockNotificationSvc) MarkAllAsRead(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationSvc) Delete(ctx context.Context, userID, id int32) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
func (m *MockNotificationSvc) ClearRead(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationSvc) RegisterPushToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}
func (m *MockNotificationSvc) RemovePushToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

// MockEmailSvc
type MockEmailSvc struct {
	mock.Mock
}

func (m *MockEmailSvc) SendBookingStatus(to, subject, body string) {
	m.Called(to, subject, body)
}
