package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "online"
	PaymentMethodOffline PaymentMethod = "offline"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is a renter-initiated reservation mediated by the vehicle owner.
// Monetary fields are computed once at creation and never change afterward;
// ActualKm recorded at trip completion does not trigger a reprice.
type Booking struct {
	ID        int32 `json:"id"`
	VehicleID int32 `json:"vehicle_id"`
	RenterID  int32 `json:"renter_id"`
	// Snapshot of the vehicle's owner at creation time.
	OwnerID int32 `json:"owner_id"`

	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	ExpectedKm     float64    `json:"expected_km,omitempty"`
	ActualKm       float64    `json:"actual_km,omitempty"`
	PickupLocation string     `json:"pickup_location,omitempty"`
	Destination    string     `json:"destination,omitempty"`

	DriverRequired bool   `json:"driver_required"`
	DriverAssigned bool   `json:"driver_assigned"`
	DriverName     string `json:"driver_name,omitempty"`
	DriverPhone    string `json:"driver_phone,omitempty"`
	DriverLicense  string `json:"driver_license,omitempty"`

	VehiclePrice float64 `json:"vehicle_price"`
	DriverPrice  float64 `json:"driver_price"`
	TotalPrice   float64 `json:"total_price"`

	Status          BookingStatus `json:"status"`
	OwnerAccepted   bool          `json:"owner_accepted"`
	OwnerAcceptedAt *time.Time    `json:"owner_accepted_at,omitempty"`
	TripStartedAt   *time.Time    `json:"trip_started_at,omitempty"`
	TripCompletedAt *time.Time    `json:"trip_completed_at,omitempty"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DriverAssignment carries the driver details an owner supplies when
// accepting a booking that requires one.
type DriverAssignment struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	License string `json:"license,omitempty"`
}

// Active reports whether the booking occupies the vehicle for availability
// purposes. Cancelled and completed bookings release the window.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress:
		return true
	}
	return false
}
