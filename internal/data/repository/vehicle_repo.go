package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paramount-autos/internal/data/entity"
	"paramount-autos/pkg/database"
	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// VehicleOrder selects the listing order.
type VehicleOrder int

const (
	VehicleOrderNewest VehicleOrder = iota
	VehicleOrderPriceAsc
)

// VehicleFilter narrows catalog listings. Nil fields are ignored.
type VehicleFilter struct {
	Type         *string
	Availability *bool
	MinPrice     *int64
	MaxPrice     *int64
	Search       string
	Order        VehicleOrder
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Vehicle, error)
	FindAll(ctx context.Context, filter VehicleFilter) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	CountAll(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, name, type, price_per_day, availability, image, description, features, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Type,
		&v.PricePerDay,
		&v.Availability,
		&v.Image,
		&v.Description,
		&v.Features,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	features := vehicle.Features
	if features == nil {
		features = pq.StringArray{}
	}

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.PricePerDay,
		vehicle.Availability,
		vehicle.Image,
		vehicle.Description,
		features,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("name", vehicle.Name),
		)
		return xerrors.Store(err, fmt.Sprintf("create vehicle %s", vehicle.Name))
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, xerrors.Store(err, fmt.Sprintf("find vehicle %s", id))
	}

	return vehicle, nil
}

// FindByIDs loads the given vehicles keyed by id. Unknown ids are absent.
func (r *vehicleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Vehicle, error) {
	result := make(map[uuid.UUID]*entity.Vehicle, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find vehicles by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, xerrors.Store(err, "find vehicles by IDs")
	}
	defer rows.Close()

	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		result[vehicle.ID] = vehicle
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Store(err, "iterate vehicle rows")
	}

	return result, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, filter VehicleFilter) ([]*entity.Vehicle, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`)

	args := []any{}
	argCount := 1

	if filter.Type != nil && *filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND type = $%d", argCount))
		args = append(args, *filter.Type)
		argCount++
	}
	if filter.Availability != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND availability = $%d", argCount))
		args = append(args, *filter.Availability)
		argCount++
	}
	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price_per_day >= $%d", argCount))
		args = append(args, *filter.MinPrice)
		argCount++
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price_per_day <= $%d", argCount))
		args = append(args, *filter.MaxPrice)
		argCount++
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+search+"%")
	}

	switch filter.Order {
	case VehicleOrderPriceAsc:
		queryBuilder.WriteString(" ORDER BY price_per_day ASC, created_at ASC")
	default:
		queryBuilder.WriteString(" ORDER BY created_at DESC")
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, xerrors.Store(err, "list vehicles")
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Store(err, "iterate vehicle rows")
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, type = $3, price_per_day = $4, availability = $5,
		    image = $6, description = $7, features = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.PricePerDay,
		vehicle.Availability,
		vehicle.Image,
		vehicle.Description,
		vehicle.Features,
		vehicle.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return xerrors.Store(err, fmt.Sprintf("update vehicle %s", vehicle.ID))
	}

	if result.RowsAffected() == 0 {
		return xerrors.NotFound("vehicle %s", vehicle.ID)
	}

	return nil
}

func (r *vehicleRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, xerrors.Store(err, "count vehicles")
	}
	return count, nil
}

func (r *vehicleRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE availability`).Scan(&count); err != nil {
		r.log.Error("Failed to count available vehicles", zap.Error(err))
		return 0, xerrors.Store(err, "count available vehicles")
	}
	return count, nil
}
