package usecase

import (
	"context"
	"fmt"
	"strings"

	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/request"
	"paramount-autos/internal/dto/response"
	"paramount-autos/pkg/utils"
	"paramount-autos/pkg/xerrors"

	"go.uber.org/zap"
)

// TrackingService is the customer-facing lookup by reference code.
type TrackingService interface {
	TrackBooking(ctx context.Context, req *request.TrackBookingRequest) (*response.BookingResponse, error)
}

type trackingService struct {
	repo repository.BookingRepository
	log  *zap.Logger
}

func NewTrackingService(repo repository.BookingRepository, log *zap.Logger) TrackingService {
	return &trackingService{
		repo: repo,
		log:  log.With(zap.String("service", "tracking")),
	}
}

// TrackBooking is read-only. The reference is matched after trimming and
// upper-casing. When the caller supplies an email and the booking has one
// on file, they must match case-insensitively.
func (s *trackingService) TrackBooking(ctx context.Context, req *request.TrackBookingRequest) (*response.BookingResponse, error) {
	ref := utils.NormalizeReference(req.Reference)
	if ref == "" {
		return nil, xerrors.Validation("Reference: This field is required")
	}

	booking, err := s.repo.FindByReference(ctx, ref)
	if err != nil {
		s.log.Error("Failed to look up booking", zap.Error(err), zap.String("ref_number", ref))
		return nil, fmt.Errorf("track booking: %w", err)
	}
	if booking == nil {
		s.log.Debug("Reference not found", zap.String("ref_number", ref))
		return nil, xerrors.NotFound("booking %s", ref)
	}

	if req.Email != nil && booking.Email != nil {
		given := strings.TrimSpace(*req.Email)
		if given != "" && !strings.EqualFold(given, strings.TrimSpace(*booking.Email)) {
			s.log.Warn("Tracking email mismatch", zap.String("ref_number", ref))
			return nil, fmt.Errorf("%w: email does not match booking", xerrors.ErrUnauthorized)
		}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
