package request

type CreateVehicleRequest struct {
	Name        string   `json:"name" validate:"required,max=150"`
	Type        string   `json:"type" validate:"required,max=100"`
	PricePerDay int64    `json:"pricePerDay" validate:"required,gt=0"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,max=500"`
	Description string   `json:"description" validate:"max=2000"`
	Features    []string `json:"features" validate:"max=30,dive,required,max=60"`
}

type UpdateVehicleRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Type         *string   `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	PricePerDay  *int64    `json:"pricePerDay,omitempty" validate:"omitempty,gt=0"`
	Availability *bool     `json:"availability,omitempty"`
	Image        *string   `json:"image,omitempty" validate:"omitempty,max=500"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Features     *[]string `json:"features,omitempty" validate:"omitempty,max=30,dive,required,max=60"`
}

type VehicleListRequest struct {
	Type          *string
	Availability  *bool
	MinPrice      *int64
	MaxPrice      *int64
	Search        string
	AvailableOnly bool
}
