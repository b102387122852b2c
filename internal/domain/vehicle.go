package domain

import "time"

type VehicleKind string

const (
	VehicleKindRent    VehicleKind = "rent"
	VehicleKindSell    VehicleKind = "sell"
	VehicleKindService VehicleKind = "service"
)

type RentType string

const (
	RentTypeHourly RentType = "hourly"
	RentTypeDaily  RentType = "daily"
	RentTypePerKm  RentType = "per_km"
	RentTypeFixed  RentType = "fixed"
)

type VehicleCategory string

const (
	VehicleCategoryBike  VehicleCategory = "bike"
	VehicleCategoryCar   VehicleCategory = "car"
	VehicleCategoryAuto  VehicleCategory = "auto"
	VehicleCategoryOther VehicleCategory = "other"
)

// Vehicle is a rentable/sellable asset. RentType is present iff the kind is
// rent; BasePrice semantics depend on RentType.
type Vehicle struct {
	ID          int32           `json:"id"`
	OwnerID     int32           `json:"owner_id"`
	Owner       *User           `json:"owner,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    VehicleCategory `json:"category"`
	Kind        VehicleKind     `json:"vehicle_kind"`
	RentType    RentType        `json:"rent_type,omitempty"`
	BasePrice   float64         `json:"base_price"`

	// Optional rate-card fields. These feed the display pricing options and
	// may be set in any combination; the charge for a concrete booking uses
	// BasePrice under RentType only.
	HourlyPrice    float64 `json:"hourly_price,omitempty"`
	DailyPrice     float64 `json:"daily_price,omitempty"`
	PerKmPrice     float64 `json:"per_km_price,omitempty"`
	CurrencySymbol string  `json:"currency_symbol"`

	DriverAvailable bool    `json:"driver_available"`
	DriverPrice     float64 `json:"driver_price"`
	DriverLabel     string  `json:"driver_label,omitempty"`

	Location    string     `json:"location,omitempty"`
	IsPublished bool       `json:"is_published"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Rentable reports whether the vehicle can accept a direct booking.
func (v *Vehicle) Rentable() bool {
	return v.Kind == VehicleKindRent && v.IsPublished && !v.IsDeleted
}
