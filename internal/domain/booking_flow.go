package domain

import "time"

type FlowStatus string

const (
	FlowStatusPending   FlowStatus = "pending"
	FlowStatusApproved  FlowStatus = "approved"
	FlowStatusRejected  FlowStatus = "rejected"
	FlowStatusOngoing   FlowStatus = "ongoing"
	FlowStatusCompleted FlowStatus = "completed"
)

type FlowPaymentMethod string

const (
	FlowPaymentOnline      FlowPaymentMethod = "online"
	FlowPaymentPayToDriver FlowPaymentMethod = "pay_to_driver"
)

type FlowPaymentStatus string

const (
	FlowPaymentUnpaid FlowPaymentStatus = "unpaid"
	FlowPaymentPaid   FlowPaymentStatus = "paid"
)

// MaxDocumentImages caps the identity documents attached to a flow booking.
const MaxDocumentImages = 5

// BookingFlow is a user-initiated reservation mediated by an admin rather
// than the vehicle owner. Unlike Booking it performs no availability check
// and may target any vehicle kind.
type BookingFlow struct {
	ID        int32 `json:"id"`
	UserID    int32 `json:"user_id"`
	VehicleID int32 `json:"vehicle_id"`

	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description,omitempty"`

	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	DriverIncluded bool       `json:"driver_included"`

	// Ordered document image URLs, at most MaxDocumentImages.
	DocumentImages []string `json:"document_images"`

	Price *PriceBreakdown `json:"price,omitempty"`

	PaymentMethod FlowPaymentMethod `json:"payment_method"`
	BookingStatus FlowStatus        `json:"booking_status"`
	PaymentStatus FlowPaymentStatus `json:"payment_status"`

	AdminNotes string `json:"admin_notes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// ActiveRental reports whether the flow booking counts as an active rental
// for dashboard reconciliation with the direct-booking vocabulary.
func (s FlowStatus) ActiveRental() bool {
	return s == FlowStatusApproved || s == FlowStatusOngoing
}
