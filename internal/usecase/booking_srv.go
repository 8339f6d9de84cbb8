package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/request"
	"paramount-autos/internal/dto/response"
	"paramount-autos/internal/pricing"
	"paramount-autos/pkg/notify"
	"paramount-autos/pkg/utils"
	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public booking wizard
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)

	// Back office
	GetBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error

	// Drain blocks until in-flight admin notifications finish or ctx ends.
	Drain(ctx context.Context) error
}

type bookingService struct {
	repo              *repository.Repository
	calc              *pricing.Calculator
	notifier          notify.Notifier
	referenceAttempts int
	now               func() time.Time
	log               *zap.Logger

	notifications sync.WaitGroup
}

func NewBookingService(
	repo *repository.Repository,
	calc *pricing.Calculator,
	notifier notify.Notifier,
	cfg utils.BookingConfig,
	log *zap.Logger,
) BookingService {
	attempts := cfg.ReferenceAttempts
	if attempts < 1 {
		attempts = 3
	}
	return &bookingService{
		repo:              repo,
		calc:              calc,
		notifier:          notifier,
		referenceAttempts: attempts,
		now:               time.Now,
		log:               log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}

	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, startDate, endDate, req.Vehicles, req.SecurityPersonnel)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		RentalDays:        quote.Days,
		Vehicles:          quote.Vehicles,
		SecurityPersonnel: quote.Security,
		TotalAmount:       quote.Total,
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}

	customerName := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.Phone)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	for _, f := range []struct{ name, value string }{
		{"CustomerName", customerName},
		{"Phone", phone},
		{"PickupLocation", pickup},
		{"DropoffLocation", dropoff},
	} {
		if f.value == "" {
			return nil, xerrors.Validation("%s: This field is required", f.name)
		}
	}

	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, startDate, endDate, req.Vehicles, req.SecurityPersonnel)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base:              entity.NewBase(now),
		CustomerName:      customerName,
		Phone:             phone,
		Email:             trimmedOrNil(req.Email),
		PickupLocation:    pickup,
		DropoffLocation:   dropoff,
		StartDate:         startDate,
		EndDate:           endDate,
		RentalDays:        quote.Days,
		Vehicles:          quote.Vehicles,
		SecurityPersonnel: quote.Security,
		TotalAmount:       quote.Total,
		Status:            entity.BookingStatusPending,
		PaymentStatus:     entity.PaymentStatusPending,
		Notes:             trimmedOrNil(req.Notes),
	}

	if err := s.insertWithReference(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ref_number", booking.RefNumber),
		zap.Int("rental_days", booking.RentalDays),
		zap.Int("vehicle_lines", len(booking.Vehicles)),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		s.notifyCreated(booking)
	}()

	return &response.CreateBookingResponse{
		ReferenceCode: booking.RefNumber,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status,
	}, nil
}

// insertWithReference assigns a fresh reference and inserts, regenerating
// the reference when the store reports a collision.
func (s *bookingService) insertWithReference(ctx context.Context, booking *entity.Booking) error {
	var err error
	for attempt := 1; attempt <= s.referenceAttempts; attempt++ {
		booking.RefNumber = utils.GenerateReference(booking.CreatedAt)

		err = s.repo.Booking.Create(ctx, booking)
		if err == nil {
			return nil
		}
		if !xerrors.Is(err, xerrors.ErrConflict) {
			return xerrors.Wrap(err, "create booking")
		}

		s.log.Warn("Reference collision, regenerating",
			zap.String("ref_number", booking.RefNumber),
			zap.Int("attempt", attempt),
		)
	}

	s.log.Error("Reference attempts exhausted", zap.Int("attempts", s.referenceAttempts))
	return fmt.Errorf("allocate booking reference after %d attempts: %w", s.referenceAttempts, err)
}

// price loads catalog rates for the selection and runs the calculator.
func (s *bookingService) price(ctx context.Context, startDate, endDate time.Time, selections []request.VehicleSelection, security int) (*pricing.Quote, error) {
	draft := pricing.Draft{
		StartDate:     startDate,
		EndDate:       endDate,
		SecurityCount: security,
		Vehicles:      make([]pricing.Selection, 0, len(selections)),
	}
	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		id, err := uuid.Parse(sel.VehicleID)
		if err != nil {
			return nil, xerrors.Validation("invalid vehicle ID %q", sel.VehicleID)
		}
		draft.Vehicles = append(draft.Vehicles, pricing.Selection{VehicleID: id, Quantity: sel.Quantity})
		if sel.Quantity > 0 {
			ids = append(ids, id)
		}
	}

	vehicles, err := s.repo.Vehicle.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load vehicle rates", zap.Error(err))
		return nil, fmt.Errorf("load vehicle rates: %w", err)
	}

	rates := make(map[uuid.UUID]pricing.VehicleRate, len(vehicles))
	for id, v := range vehicles {
		rates[id] = pricing.RateFromVehicle(v)
	}

	quote, err := s.calc.Quote(draft, rates)
	if err != nil {
		s.log.Warn("Pricing rejected", zap.Error(err))
		return nil, err
	}
	return quote, nil
}

func (s *bookingService) notifyCreated(booking *entity.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	notice := notify.BookingNotice{
		RefNumber:    booking.RefNumber,
		CustomerName: booking.CustomerName,
		Phone:        booking.Phone,
		Pickup:       booking.PickupLocation,
		Dropoff:      booking.DropoffLocation,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		Days:         booking.RentalDays,
		TotalAmount:  booking.TotalAmount,
	}
	if booking.Email != nil {
		notice.Email = *booking.Email
	}
	for _, line := range booking.Vehicles {
		notice.Vehicles = append(notice.Vehicles, fmt.Sprintf("%d x %s", line.Quantity, line.Name))
	}
	if booking.SecurityPersonnel != nil {
		notice.SecurityCount = booking.SecurityPersonnel.Count
	}

	if err := s.notifier.BookingCreated(ctx, notice); err != nil {
		s.log.Error("Failed to send booking notification",
			zap.Error(err),
			zap.String("ref_number", booking.RefNumber),
		)
	}
}

func (s *bookingService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.notifications.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.log.Warn("Booking notifications still in flight at shutdown", zap.Error(ctx.Err()))
		return xerrors.Wrap(ctx.Err(), "drain booking notifications")
	}
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}

	filter := repository.BookingFilter{
		Status:        entity.BookingStatus(req.Status),
		PaymentStatus: entity.PaymentStatus(req.PaymentStatus),
		Search:        req.Search,
	}
	limit := req.PageSize()

	bookings, err := s.repo.Booking.FindAll(ctx, filter, limit, req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, limit, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, xerrors.NotFound("booking %s", bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}
	next, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, xerrors.Validation("%v", err)
	}

	return s.mutate(ctx, bookingID, "update booking status", func(b *entity.Booking) error {
		return s.transition(b, next)
	})
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}
	paymentStatus, err := entity.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, xerrors.Validation("%v", err)
	}

	return s.mutate(ctx, bookingID, "update payment status", func(b *entity.Booking) error {
		b.PaymentStatus = paymentStatus
		b.UpdatedAt = s.now()
		return nil
	})
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}
	if req.Status == nil && req.PaymentStatus == nil && req.Notes == nil {
		return nil, xerrors.Validation("nothing to update")
	}

	var (
		next          entity.BookingStatus
		paymentStatus entity.PaymentStatus
		err           error
	)
	if req.Status != nil {
		if next, err = entity.ParseBookingStatus(*req.Status); err != nil {
			return nil, xerrors.Validation("%v", err)
		}
	}
	if req.PaymentStatus != nil {
		if paymentStatus, err = entity.ParsePaymentStatus(*req.PaymentStatus); err != nil {
			return nil, xerrors.Validation("%v", err)
		}
	}

	return s.mutate(ctx, bookingID, "update booking", func(b *entity.Booking) error {
		// an unchanged status in a combined edit is not a transition
		if req.Status != nil && next != b.Status {
			if err := s.transition(b, next); err != nil {
				return err
			}
		}
		if req.PaymentStatus != nil {
			b.PaymentStatus = paymentStatus
		}
		if req.Notes != nil {
			b.Notes = trimmedOrNil(req.Notes)
		}
		b.UpdatedAt = s.now()
		return nil
	})
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID))
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) transition(b *entity.Booking, next entity.BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: booking %s cannot move from %s to %s",
			xerrors.ErrInvalidTransition, b.RefNumber, b.Status, next)
	}
	b.Status = next
	b.UpdatedAt = s.now()
	return nil
}

func (s *bookingService) mutate(ctx context.Context, bookingID, op string, fn func(b *entity.Booking) error) (*response.BookingResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.Mutate(ctx, id, fn)
	if err != nil {
		s.log.Warn(op+" failed", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, xerrors.Wrap(err, op)
	}

	s.log.Info("Booking updated",
		zap.String("operation", op),
		zap.String("booking_id", bookingID),
		zap.String("ref_number", booking.RefNumber),
		zap.String("status", string(booking.Status)),
		zap.String("payment_status", string(booking.PaymentStatus)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := pricing.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := pricing.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// reject inverted ranges before any catalog lookup
	if _, err := pricing.RentalDays(startDate, endDate); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, xerrors.Validation("invalid %s ID format %q", kind, raw)
	}
	return id, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
