package pricing

import (
	"math"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
)

// Window is the requested usage of a vehicle: a time interval for hourly and
// daily rates, or a distance for per-km rates. Fixed rates ignore it.
type Window struct {
	StartAt    time.Time
	EndAt      time.Time
	ExpectedKm float64
}

// Quote is the charge derived for one concrete booking.
type Quote struct {
	VehiclePrice float64 `json:"vehicle_price"`
	DriverPrice  float64 `json:"driver_price"`
	TotalPrice   float64 `json:"total_price"`
}

// Option is a display-only rate entry ("₹400 per hour"). It does not
// participate in the charge computed for a specific booking.
type Option struct {
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	CurrencySymbol string  `json:"currency_symbol"`
}

// Compute derives the charge for renting v over w. Hourly and daily rates
// bill whole units rounded up, so a 61-minute rental bills 2 hours.
// Non-positive durations are rejected rather than rounded up from zero.
func Compute(v *domain.Vehicle, w Window, driverRequested bool) (Quote, error) {
	vehiclePrice, err := baseCharge(v, w)
	if err != nil {
		return Quote{}, err
	}

	var driverPrice float64
	if driverRequested && v.DriverAvailable {
		driverPrice = v.DriverPrice
	}

	return Quote{
		VehiclePrice: vehiclePrice,
		DriverPrice:  driverPrice,
		TotalPrice:   vehiclePrice + driverPrice,
	}, nil
}

func baseCharge(v *domain.Vehicle, w Window) (float64, error) {
	switch v.RentType {
	case domain.RentTypeHourly:
		units, err := billedUnits(w.StartAt, w.EndAt, time.Hour)
		if err != nil {
			return 0, err
		}
		return units * v.BasePrice, nil
	case domain.RentTypeDaily:
		units, err := billedUnits(w.StartAt, w.EndAt, 24*time.Hour)
		if err != nil {
			return 0, err
		}
		return units * v.BasePrice, nil
	case domain.RentTypePerKm:
		if w.ExpectedKm < 0 {
			return 0, apperr.Validation("expected_km must not be negative")
		}
		return w.ExpectedKm * v.BasePrice, nil
	default:
		// fixed rent, sell, and service listings charge the base price as-is
		return v.BasePrice, nil
	}
}

// billedUnits returns the number of whole units between start and end,
// rounded up. A window that does not strictly move forward is invalid.
func billedUnits(start, end time.Time, unit time.Duration) (float64, error) {
	if start.IsZero() || end.IsZero() {
		return 0, apperr.Validation("start_at and end_at are required for this rent type")
	}
	d := end.Sub(start)
	if d <= 0 {
		return 0, apperr.Validation("end_at must be after start_at")
	}
	return math.Ceil(d.Hours() / unit.Hours()), nil
}

// Options builds the display rate list from the vehicle's populated rate
// fields, one entry per populated field.
func Options(v *domain.Vehicle) []Option {
	symbol := v.CurrencySymbol
	if symbol == "" {
		symbol = "₹"
	}

	var opts []Option
	if v.HourlyPrice > 0 {
		opts = append(opts, Option{Label: "per hour", Price: v.HourlyPrice, CurrencySymbol: symbol})
	}
	if v.DailyPrice > 0 {
		opts = append(opts, Option{Label: "per day", Price: v.DailyPrice, CurrencySymbol: symbol})
	}
	if v.PerKmPrice > 0 {
		opts = append(opts, Option{Label: "per km", Price: v.PerKmPrice, CurrencySymbol: symbol})
	}
	return opts
}

// DriverOption returns the separate driver rate entry, or nil when the
// vehicle does not offer a driver. It is deliberately not a member of the
// Options list.
func DriverOption(v *domain.Vehicle) *Option {
	if !v.DriverAvailable || v.DriverPrice <= 0 {
		return nil
	}
	symbol := v.CurrencySymbol
	if symbol == "" {
		symbol = "₹"
	}
	label := v.DriverLabel
	if label == "" {
		label = "with driver"
	}
	return &Option{Label: label, Price: v.DriverPrice, CurrencySymbol: symbol}
}
