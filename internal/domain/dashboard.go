package domain

// DashboardOverview aggregates KPIs across both booking vocabularies.
// ActiveRentals and PendingBookings each combine direct bookings and
// admin-mediated flow bookings; MonthlyRevenue sums completed direct-booking
// totals with paid flow-booking breakdown amounts for the current month.
type DashboardOverview struct {
	TotalVehicles   int32   `json:"total_vehicles"`
	TotalSales      int32   `json:"total_sales"`
	ActiveRentals   int32   `json:"active_rentals"`
	PendingBookings int32   `json:"pending_bookings"`
	TotalUsers      int32   `json:"total_users"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
}
