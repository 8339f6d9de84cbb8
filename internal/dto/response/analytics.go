package response

import "paramount-autos/internal/data/entity"

type DashboardStats struct {
	TotalBookings     int64 `json:"totalBookings"`
	PendingBookings   int64 `json:"pendingBookings"`
	ConfirmedBookings int64 `json:"confirmedBookings"`
	CompletedBookings int64 `json:"completedBookings"`
	TotalRevenue      int64 `json:"totalRevenue"`
	AvailableVehicles int64 `json:"availableVehicles"`
}

type MonthlyPoint struct {
	Month    string `json:"month"`
	Revenue  int64  `json:"revenue"`
	Bookings int64  `json:"bookings"`
}

type StatusCount struct {
	Status entity.BookingStatus `json:"status"`
	Count  int64                `json:"count"`
}

type TopVehicle struct {
	VehicleID string `json:"vehicleId"`
	Name      string `json:"name"`
	Revenue   int64  `json:"revenue"`
	Units     int64  `json:"units"`
	Bookings  int64  `json:"bookings"`
}

type AnalyticsResponse struct {
	TotalBookings      int64          `json:"totalBookings"`
	TotalVehicles      int64          `json:"totalVehicles"`
	TotalRevenue       int64          `json:"totalRevenue"`
	PendingBookings    int64          `json:"pendingBookings"`
	ConfirmedBookings  int64          `json:"confirmedBookings"`
	UniqueCustomers    int64          `json:"uniqueCustomers"`
	MonthlyData        []MonthlyPoint `json:"monthlyData"`
	StatusDistribution []StatusCount  `json:"statusDistribution"`
	TopVehicles        []TopVehicle   `json:"topVehicles"`
}
