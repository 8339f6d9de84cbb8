package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/dto/request"
	"paramount-autos/internal/dto/response"
	"paramount-autos/pkg/utils"
	"paramount-autos/pkg/xerrors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type VehicleService interface {
	// Public catalog
	GetCatalog(ctx context.Context, req *request.VehicleListRequest) ([]response.VehicleResponse, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error)

	// Admin
	GetVehicles(ctx context.Context, req *request.VehicleListRequest) ([]response.VehicleResponse, error)
	CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
}

type vehicleService struct {
	repo repository.VehicleRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewVehicleService(repo repository.VehicleRepository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

// GetCatalog lists what customers can book, cheapest first. Passing
// AvailableOnly=false also shows vehicles that are currently out.
func (s *vehicleService) GetCatalog(ctx context.Context, req *request.VehicleListRequest) ([]response.VehicleResponse, error) {
	filter := s.toFilter(req)
	filter.Order = repository.VehicleOrderPriceAsc
	if req.AvailableOnly {
		available := true
		filter.Availability = &available
	}
	return s.list(ctx, filter)
}

// GetVehicles is the back-office listing, newest first with no implicit
// availability filter.
func (s *vehicleService) GetVehicles(ctx context.Context, req *request.VehicleListRequest) ([]response.VehicleResponse, error) {
	filter := s.toFilter(req)
	filter.Order = repository.VehicleOrderNewest
	return s.list(ctx, filter)
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error) {
	vehicle, err := s.find(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vehicle validation failed", zap.Any("errors", errs))
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}

	name := strings.TrimSpace(req.Name)
	vehicleType := strings.TrimSpace(req.Type)
	if name == "" || vehicleType == "" {
		return nil, xerrors.Validation("name and type are required")
	}

	vehicle := &entity.Vehicle{
		Base:         entity.NewBase(s.now()),
		Name:         name,
		Type:         vehicleType,
		PricePerDay:  req.PricePerDay,
		Availability: true,
		Image:        trimmedOrNil(req.Image),
		Description:  strings.TrimSpace(req.Description),
		Features:     cleanFeatures(req.Features),
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		s.log.Error("Failed to create vehicle", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("name", vehicle.Name),
		zap.Int64("price_per_day", vehicle.PricePerDay),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update vehicle validation failed", zap.Any("errors", errs))
		return nil, xerrors.Validation("%s", utils.FormatValidationErrors(errs))
	}

	vehicle, err := s.find(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if vehicle.Name = strings.TrimSpace(*req.Name); vehicle.Name == "" {
			return nil, xerrors.Validation("name cannot be blank")
		}
	}
	if req.Type != nil {
		if vehicle.Type = strings.TrimSpace(*req.Type); vehicle.Type == "" {
			return nil, xerrors.Validation("type cannot be blank")
		}
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay <= 0 {
			return nil, xerrors.Validation("pricePerDay must be positive")
		}
		vehicle.PricePerDay = *req.PricePerDay
	}
	if req.Availability != nil {
		vehicle.Availability = *req.Availability
	}
	if req.Image != nil {
		vehicle.Image = trimmedOrNil(req.Image)
	}
	if req.Description != nil {
		vehicle.Description = strings.TrimSpace(*req.Description)
	}
	if req.Features != nil {
		vehicle.Features = cleanFeatures(*req.Features)
	}
	vehicle.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, vehicle); err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			s.log.Error("Failed to update vehicle", zap.Error(err), zap.String("vehicle_id", vehicleID))
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	s.log.Info("Vehicle updated",
		zap.String("vehicle_id", vehicleID),
		zap.Bool("availability", vehicle.Availability),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *vehicleService) find(ctx context.Context, vehicleID string) (*entity.Vehicle, error) {
	id, err := parseID("vehicle", vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get vehicle", zap.Error(err), zap.String("vehicle_id", vehicleID))
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, xerrors.NotFound("vehicle %s", vehicleID)
	}
	return vehicle, nil
}

func (s *vehicleService) list(ctx context.Context, filter repository.VehicleFilter) ([]response.VehicleResponse, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, xerrors.Validation("minPrice cannot exceed maxPrice")
	}

	vehicles, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return response.VehiclesToResponse(vehicles), nil
}

func (s *vehicleService) toFilter(req *request.VehicleListRequest) repository.VehicleFilter {
	filter := repository.VehicleFilter{
		Availability: req.Availability,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Search:       strings.TrimSpace(req.Search),
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) != "" {
		t := strings.TrimSpace(*req.Type)
		filter.Type = &t
	}
	return filter
}

func cleanFeatures(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
