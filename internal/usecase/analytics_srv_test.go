package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func line(id uuid.UUID, name string, qty int, subtotal int64) entity.SelectedVehicleLine {
	return entity.SelectedVehicleLine{VehicleID: id, Name: name, Quantity: qty, Subtotal: subtotal}
}

func analyticsFixture() (ids map[string]uuid.UUID, bookings []*entity.Booking) {
	ids = map[string]uuid.UUID{}
	for _, k := range []string{"A", "B", "C", "D", "E", "F"} {
		ids[k] = uuid.New()
	}
	mk := func(created time.Time, status entity.BookingStatus, phone string, total int64, lines ...entity.SelectedVehicleLine) *entity.Booking {
		return &entity.Booking{
			Base:        entity.NewBase(created),
			Phone:       phone,
			Status:      status,
			TotalAmount: total,
			Vehicles:    lines,
		}
	}
	bookings = []*entity.Booking{
		// outside the window
		mk(time.Date(2023, 8, 15, 9, 0, 0, 0, time.UTC), entity.BookingStatusCompleted, "+2348039999999", 999999,
			line(ids["F"], "Old", 1, 999999)),
		mk(time.Date(2023, 9, 5, 9, 0, 0, 0, time.UTC), entity.BookingStatusConfirmed, "+234 803 000 0001", 100000,
			line(ids["A"], "Hilux", 1, 100000)),
		mk(time.Date(2023, 12, 10, 9, 0, 0, 0, time.UTC), entity.BookingStatusPending, "+2348030000001", 200000,
			line(ids["B"], "Prado", 2, 200000)),
		mk(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), entity.BookingStatusCompleted, "+2348030000002", 300000,
			line(ids["A"], "Hilux", 1, 150000), line(ids["C"], "Coaster", 1, 150000)),
		mk(time.Date(2024, 2, 19, 23, 59, 0, 0, time.UTC), entity.BookingStatusCancelled, "+2348030000003", 210000,
			line(ids["D"], "Corolla", 1, 50000), line(ids["E"], "Sienna", 1, 150000), line(ids["F"], "Old", 1, 10000)),
	}
	return ids, bookings
}

func TestAggregate(t *testing.T) {
	ids, bookings := analyticsFixture()
	start := windowStart(fixedNow)
	require.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), start)

	report := aggregate(bookings, start)

	assert.Equal(t, []response.MonthlyPoint{
		{Month: "2023-09", Revenue: 100000, Bookings: 1},
		{Month: "2023-10"},
		{Month: "2023-11"},
		{Month: "2023-12", Revenue: 0, Bookings: 1},
		{Month: "2024-01"},
		{Month: "2024-02", Revenue: 300000, Bookings: 2},
	}, report.MonthlyData)

	assert.Equal(t, []response.StatusCount{
		{Status: entity.BookingStatusPending, Count: 1},
		{Status: entity.BookingStatusConfirmed, Count: 1},
		{Status: entity.BookingStatusCompleted, Count: 1},
		{Status: entity.BookingStatusCancelled, Count: 1},
	}, report.StatusDistribution)

	require.Len(t, report.TopVehicles, 5)
	var order []string
	for _, v := range report.TopVehicles {
		order = append(order, v.Name)
	}
	// Coaster and Sienna tie; Coaster was seen first
	assert.Equal(t, []string{"Hilux", "Prado", "Coaster", "Sienna", "Corolla"}, order)
	assert.Equal(t, response.TopVehicle{
		VehicleID: ids["A"].String(),
		Name:      "Hilux",
		Revenue:   250000,
		Units:     2,
		Bookings:  2,
	}, report.TopVehicles[0])

	assert.Equal(t, int64(3), report.UniqueCustomers)
}

func TestAggregate_Empty(t *testing.T) {
	report := aggregate(nil, windowStart(fixedNow))

	assert.Len(t, report.MonthlyData, 6)
	assert.Len(t, report.StatusDistribution, 4)
	assert.NotNil(t, report.TopVehicles)
	assert.Empty(t, report.TopVehicles)
	assert.Zero(t, report.UniqueCustomers)
}

func newTestAnalyticsService(vehicles *MockVehicleRepo, bookings *MockBookingRepo) *analyticsService {
	svc := NewAnalyticsService(&repository.Repository{Vehicle: vehicles, Booking: bookings}, zap.NewNop()).(*analyticsService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAnalyticsService_GetAnalytics(t *testing.T) {
	ctx := context.Background()
	_, bookings := analyticsFixture()

	vehicleRepo := new(MockVehicleRepo)
	bookingRepo := new(MockBookingRepo)
	svc := newTestAnalyticsService(vehicleRepo, bookingRepo)

	totals := &repository.BookingTotals{Total: 42, Pending: 5, Confirmed: 7, Completed: 20, Cancelled: 10, Revenue: 9000000}
	bookingRepo.On("Totals", ctx).Return(totals, nil)
	vehicleRepo.On("CountAll", ctx).Return(int64(12), nil)
	bookingRepo.On("FindCreatedSince", ctx, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)).Return(bookings[1:], nil)

	report, err := svc.GetAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(42), report.TotalBookings)
	assert.Equal(t, int64(12), report.TotalVehicles)
	assert.Equal(t, int64(9000000), report.TotalRevenue)
	assert.Equal(t, int64(5), report.PendingBookings)
	assert.Equal(t, int64(7), report.ConfirmedBookings)
	assert.Equal(t, int64(3), report.UniqueCustomers)
	assert.Len(t, report.MonthlyData, 6)
	assert.Equal(t, "2024-02", report.MonthlyData[5].Month)

	bookingRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
}

func TestAnalyticsService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	vehicleRepo := new(MockVehicleRepo)
	bookingRepo := new(MockBookingRepo)
	svc := newTestAnalyticsService(vehicleRepo, bookingRepo)

	bookingRepo.On("Totals", ctx).Return(&repository.BookingTotals{Total: 3, Pending: 1, Confirmed: 1, Completed: 1, Revenue: 800000}, nil)
	vehicleRepo.On("CountAvailable", ctx).Return(int64(4), nil)

	stats, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, &response.DashboardStats{
		TotalBookings:     3,
		PendingBookings:   1,
		ConfirmedBookings: 1,
		CompletedBookings: 1,
		TotalRevenue:      800000,
		AvailableVehicles: 4,
	}, stats)

	t.Run("Store failure", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := newTestAnalyticsService(new(MockVehicleRepo), bookingRepo)
		bookingRepo.On("Totals", ctx).Return(nil, errors.New("pool closed"))

		_, err := svc.GetDashboard(ctx)
		assert.Error(t, err)
	})
}
