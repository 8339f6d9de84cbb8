package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"go.uber.org/zap"
)

const (
	analyticsMonths = 6
	topVehicleLimit = 5
	monthLabel      = "2006-01"
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context) (*response.DashboardStats, error)
	GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error)
}

type analyticsService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewAnalyticsService(repo *repository.Repository, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) GetDashboard(ctx context.Context) (*response.DashboardStats, error) {
	totals, err := s.repo.Booking.Totals(ctx)
	if err != nil {
		s.log.Error("Failed to load booking totals", zap.Error(err))
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	available, err := s.repo.Vehicle.CountAvailable(ctx)
	if err != nil {
		s.log.Error("Failed to count available vehicles", zap.Error(err))
		return nil, fmt.Errorf("dashboard vehicles: %w", err)
	}

	return &response.DashboardStats{
		TotalBookings:     totals.Total,
		PendingBookings:   totals.Pending,
		ConfirmedBookings: totals.Confirmed,
		CompletedBookings: totals.Completed,
		TotalRevenue:      totals.Revenue,
		AvailableVehicles: available,
	}, nil
}

// GetAnalytics reports all-time totals plus a breakdown of the last six
// calendar months, current month included.
func (s *analyticsService) GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error) {
	totals, err := s.repo.Booking.Totals(ctx)
	if err != nil {
		s.log.Error("Failed to load booking totals", zap.Error(err))
		return nil, fmt.Errorf("analytics totals: %w", err)
	}

	vehicles, err := s.repo.Vehicle.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count vehicles", zap.Error(err))
		return nil, fmt.Errorf("analytics vehicles: %w", err)
	}

	since := windowStart(s.now())
	bookings, err := s.repo.Booking.FindCreatedSince(ctx, since)
	if err != nil {
		s.log.Error("Failed to load bookings for analytics", zap.Error(err), zap.Time("since", since))
		return nil, fmt.Errorf("analytics window: %w", err)
	}

	report := aggregate(bookings, since)
	report.TotalBookings = totals.Total
	report.TotalVehicles = vehicles
	report.TotalRevenue = totals.Revenue
	report.PendingBookings = totals.Pending
	report.ConfirmedBookings = totals.Confirmed

	s.log.Debug("Analytics computed",
		zap.Int("window_bookings", len(bookings)),
		zap.Int64("unique_customers", report.UniqueCustomers),
	)
	return report, nil
}

// windowStart is the first instant of the month five months before t.
func windowStart(t time.Time) time.Time {
	return now.With(t).BeginningOfMonth().AddDate(0, -(analyticsMonths - 1), 0)
}

type vehicleTally struct {
	id       uuid.UUID
	name     string
	revenue  int64
	units    int64
	bookings int64
}

// aggregate folds the bookings created since start into monthly buckets,
// a status histogram, top vehicles and a distinct-customer count. Month
// buckets use start's location.
func aggregate(bookings []*entity.Booking, start time.Time) *response.AnalyticsResponse {
	loc := start.Location()

	monthly := make([]response.MonthlyPoint, analyticsMonths)
	index := make(map[string]int, analyticsMonths)
	for i := range monthly {
		label := start.AddDate(0, i, 0).Format(monthLabel)
		monthly[i] = response.MonthlyPoint{Month: label}
		index[label] = i
	}

	statusCounts := make(map[entity.BookingStatus]int64, len(entity.BookingStatuses))
	tallies := make(map[uuid.UUID]*vehicleTally)
	var order []uuid.UUID
	phones := make(map[string]struct{})

	for _, b := range bookings {
		if b.CreatedAt.Before(start) {
			continue
		}

		if i, ok := index[b.CreatedAt.In(loc).Format(monthLabel)]; ok {
			monthly[i].Bookings++
			if b.Status.IsRevenue() {
				monthly[i].Revenue += b.TotalAmount
			}
		}

		statusCounts[b.Status]++

		if phone := normalizePhone(b.Phone); phone != "" {
			phones[phone] = struct{}{}
		}

		for _, line := range b.Vehicles {
			t, ok := tallies[line.VehicleID]
			if !ok {
				t = &vehicleTally{id: line.VehicleID, name: line.Name}
				tallies[line.VehicleID] = t
				order = append(order, line.VehicleID)
			}
			t.revenue += line.Subtotal
			t.units += int64(line.Quantity)
			t.bookings++
		}
	}

	distribution := make([]response.StatusCount, 0, len(entity.BookingStatuses))
	for _, status := range entity.BookingStatuses {
		distribution = append(distribution, response.StatusCount{Status: status, Count: statusCounts[status]})
	}

	ranked := make([]*vehicleTally, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, tallies[id])
	}
	// ties keep first-seen order
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].revenue > ranked[j].revenue })
	if len(ranked) > topVehicleLimit {
		ranked = ranked[:topVehicleLimit]
	}

	top := make([]response.TopVehicle, len(ranked))
	for i, t := range ranked {
		top[i] = response.TopVehicle{
			VehicleID: t.id.String(),
			Name:      t.name,
			Revenue:   t.revenue,
			Units:     t.units,
			Bookings:  t.bookings,
		}
	}

	return &response.AnalyticsResponse{
		UniqueCustomers:    int64(len(phones)),
		MonthlyData:        monthly,
		StatusDistribution: distribution,
		TopVehicles:        top,
	}
}

func normalizePhone(p string) string {
	return strings.Join(strings.Fields(p), "")
}
