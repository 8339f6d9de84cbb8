package response

import (
	"time"

	"paramount-autos/internal/data/entity"
)

type VehicleResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	PricePerDay  int64     `json:"pricePerDay"`
	Availability bool      `json:"availability"`
	Image        *string   `json:"image,omitempty"`
	Description  string    `json:"description"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	features := []string(v.Features)
	if features == nil {
		features = []string{}
	}
	return VehicleResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		Type:         v.Type,
		PricePerDay:  v.PricePerDay,
		Availability: v.Availability,
		Image:        v.Image,
		Description:  v.Description,
		Features:     features,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func VehiclesToResponse(vehicles []*entity.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		out[i] = VehicleToResponse(v)
	}
	return out
}
