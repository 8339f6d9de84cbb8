package response

import (
	"time"

	"paramount-autos/internal/data/entity"
)

type BookingResponse struct {
	ID                string                        `json:"id"`
	RefNumber         string                        `json:"refNumber"`
	CustomerName      string                        `json:"customerName"`
	Phone             string                        `json:"phone"`
	Email             *string                       `json:"email,omitempty"`
	PickupLocation    string                        `json:"pickupLocation"`
	DropoffLocation   string                        `json:"dropoffLocation"`
	StartDate         time.Time                     `json:"startDate"`
	EndDate           time.Time                     `json:"endDate"`
	RentalDays        int                           `json:"rentalDays"`
	Vehicles          []entity.SelectedVehicleLine  `json:"vehicles"`
	SecurityPersonnel *entity.SecurityPersonnelLine `json:"securityPersonnel,omitempty"`
	TotalAmount       int64                         `json:"totalAmount"`
	Status            entity.BookingStatus          `json:"status"`
	PaymentStatus     entity.PaymentStatus          `json:"paymentStatus"`
	Notes             *string                       `json:"notes,omitempty"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

// CreateBookingResponse is what the public wizard needs after submit.
type CreateBookingResponse struct {
	ReferenceCode string               `json:"referenceCode"`
	TotalAmount   int64                `json:"totalAmount"`
	Status        entity.BookingStatus `json:"status"`
}

type QuoteResponse struct {
	RentalDays        int                           `json:"rentalDays"`
	Vehicles          []entity.SelectedVehicleLine  `json:"vehicles"`
	SecurityPersonnel *entity.SecurityPersonnelLine `json:"securityPersonnel,omitempty"`
	TotalAmount       int64                         `json:"totalAmount"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	vehicles := b.Vehicles
	if vehicles == nil {
		vehicles = []entity.SelectedVehicleLine{}
	}
	return BookingResponse{
		ID:                b.ID.String(),
		RefNumber:         b.RefNumber,
		CustomerName:      b.CustomerName,
		Phone:             b.Phone,
		Email:             b.Email,
		PickupLocation:    b.PickupLocation,
		DropoffLocation:   b.DropoffLocation,
		StartDate:         b.StartDate,
		EndDate:           b.EndDate,
		RentalDays:        b.RentalDays,
		Vehicles:          vehicles,
		SecurityPersonnel: b.SecurityPersonnel,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status,
		PaymentStatus:     b.PaymentStatus,
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
