package service

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/pricing"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type RegisterRequest struct {
	Name         string
	Email        string
	Phone        string
	Password     string
	Role         domain.Role
	BusinessName string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type VehicleService interface {
	Create(ctx context.Context, ownerID int32, v *domain.Vehicle) error
	Get(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, callerID int32, role domain.Role, v *domain.Vehicle) error
	Delete(ctx context.Context, callerID int32, role domain.Role, id int32) error
	List(ctx context.Context, kind domain.VehicleKind, category domain.VehicleCategory, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	// PricingOptions returns the display rate list plus the optional driver
	// entry (nil when the vehicle offers no driver).
	PricingOptions(ctx context.Context, vehicleID int32) ([]pricing.Option, *pricing.Option, error)
}

// CreateBookingRequest carries renter input for a direct booking. The price
// is never client-supplied; it is computed server-side at creation.
type CreateBookingRequest struct {
	VehicleID      int32
	StartAt        *time.Time
	EndAt          *time.Time
	ExpectedKm     float64
	PickupLocation string
	Destination    string
	DriverRequired bool
	PaymentMethod  domain.PaymentMethod
}

type BookingService interface {
	Create(ctx context.Context, renterID int32, req CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, callerID int32, role domain.Role, id int32) (*domain.Booking, error)
	Accept(ctx context.Context, callerID, id int32, assignment *domain.DriverAssignment) (*domain.Booking, error)
	Decline(ctx context.Context, callerID, id int32) (*domain.Booking, error)
	StartTrip(ctx context.Context, callerID, id int32) (*domain.Booking, error)
	CompleteTrip(ctx context.Context, callerID, id int32, actualKm float64) (*domain.Booking, error)
	ListMine(ctx context.Context, renterID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	CheckAvailability(ctx context.Context, vehicleID int32, startAt, endAt time.Time) (bool, error)
}

type CreateFlowRequest struct {
	VehicleID      int32
	Phone          string
	Email          string
	Description    string
	StartDate      *time.Time
	EndDate        *time.Time
	DriverIncluded bool
	DocumentImages []string
	PaymentMethod  domain.FlowPaymentMethod
	Price          *domain.PriceBreakdown
}

type BookingFlowService interface {
	Create(ctx context.Context, userID int32, req CreateFlowRequest) (*domain.BookingFlow, error)
	Get(ctx context.Context, callerID int32, role domain.Role, id int32) (*domain.BookingFlow, error)
	ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.BookingFlow, int32, error)
	ListAll(ctx context.Context, role domain.Role, status domain.FlowStatus, page, pageSize int32) ([]domain.BookingFlow, int32, error)
	Approve(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error)
	Reject(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error)
	Start(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error)
	// Complete requires the admin's explicit payment attestation for both
	// payment methods.
	Complete(ctx context.Context, role domain.Role, id int32, notes string, paymentConfirmed bool) (*domain.BookingFlow, error)
}

type NotificationService interface {
	// Notify persists the notification and pushes it to the user's devices.
	// Push delivery is best effort; persistence failures are returned.
	Notify(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, unreadOnly bool, page, pageSize int32) ([]domain.Notification, int32, int32, error)
	MarkAsRead(ctx context.Context, userID, id int32) error
	MarkAllAsRead(ctx context.Context, userID int32) (int32, error)
	Delete(ctx context.Context, userID, id int32) error
	ClearRead(ctx context.Context, userID int32) (int32, error)
	RegisterPushToken(ctx context.Context, userID int32, token string) error
	RemovePushToken(ctx context.Context, userID int32, token string) error
}

type DashboardService interface {
	Overview(ctx context.Context) (*domain.DashboardOverview, error)
}

type EmailService interface {
	// SendBookingStatus delivers a plain-text status email. Failures are
	// logged by the implementation, not returned.
	SendBookingStatus(to, subject, body string)
}

type DocumentService interface {
	// Upload stores the document images and returns their URLs in input
	// order, enforcing the per-booking cap.
	Upload(ctx context.Context, files []DocumentFile) ([]string, error)
}

type DocumentFile struct {
	Name string
	Data []byte
}
