package request

import "strings"

// VehicleSelection is one line of the booking wizard's vehicle step.
type VehicleSelection struct {
	VehicleID string `json:"vehicleId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0,max=50"`
}

// QuoteRequest prices a selection without creating a booking.
type QuoteRequest struct {
	StartDate         string             `json:"startDate" validate:"required"`
	EndDate           string             `json:"endDate" validate:"required"`
	Vehicles          []VehicleSelection `json:"vehicles" validate:"required,min=1,dive"`
	SecurityPersonnel int                `json:"securityPersonnel" validate:"gte=0,max=50"`
}

type CreateBookingRequest struct {
	CustomerName      string             `json:"customerName" validate:"required,max=150"`
	Phone             string             `json:"phone" validate:"required,min=7,max=30"`
	Email             *string            `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PickupLocation    string             `json:"pickupLocation" validate:"required,max=500"`
	DropoffLocation   string             `json:"dropoffLocation" validate:"required,max=500"`
	StartDate         string             `json:"startDate" validate:"required"`
	EndDate           string             `json:"endDate" validate:"required"`
	Vehicles          []VehicleSelection `json:"vehicles" validate:"required,min=1,dive"`
	SecurityPersonnel int                `json:"securityPersonnel" validate:"gte=0,max=50"`
	Notes             *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=PENDING VERIFIED FAILED"`
}

// UpdateBookingRequest is the combined admin edit. Nil fields are left as is.
type UpdateBookingRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=PENDING VERIFIED FAILED"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status        string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=PENDING VERIFIED FAILED"`
	Search        string `json:"search" validate:"max=100"`
}

// TrackBookingRequest is the public lookup by reference code.
type TrackBookingRequest struct {
	Reference string  `json:"ref" validate:"required,max=20"`
	Email     *string `json:"email,omitempty"`
}

// Status values are accepted in any case. Normalize uppercases them so the
// oneof tags and the entity parsers agree.

func (r *UpdateBookingStatusRequest) Normalize() {
	r.Status = normalizeEnum(r.Status)
}

func (r *UpdatePaymentStatusRequest) Normalize() {
	r.PaymentStatus = normalizeEnum(r.PaymentStatus)
}

func (r *UpdateBookingRequest) Normalize() {
	if r.Status != nil {
		v := normalizeEnum(*r.Status)
		r.Status = &v
	}
	if r.PaymentStatus != nil {
		v := normalizeEnum(*r.PaymentStatus)
		r.PaymentStatus = &v
	}
}

func (r *BookingListRequest) Normalize() {
	r.Status = normalizeEnum(r.Status)
	r.PaymentStatus = normalizeEnum(r.PaymentStatus)
}

func normalizeEnum(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
