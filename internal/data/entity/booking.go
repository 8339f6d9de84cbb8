package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending: {
		BookingStatusConfirmed: true,
		BookingStatusCancelled: true,
	},
	BookingStatusConfirmed: {
		BookingStatusCompleted: true,
		BookingStatusCancelled: true,
	},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether next is directly reachable from s.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return allowedTransitions[s][next]
}

// IsRevenue reports whether bookings in this status count towards revenue.
func (s BookingStatus) IsRevenue() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

func ParseBookingStatus(v string) (BookingStatus, error) {
	s := BookingStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", v)
	}
	return s, nil
}

// PaymentStatus tracks manual bank-transfer confirmation. It is set by an
// administrator independently of BookingStatus.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusVerified PaymentStatus = "VERIFIED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusFailed:
		return true
	}
	return false
}

func ParsePaymentStatus(v string) (PaymentStatus, error) {
	p := PaymentStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown payment status %q", v)
	}
	return p, nil
}

// SelectedVehicleLine is a priced vehicle selection frozen at booking time.
// Name, type and image are copied so history survives catalog edits.
type SelectedVehicleLine struct {
	VehicleID   uuid.UUID `json:"vehicleId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Image       *string   `json:"image,omitempty"`
	PricePerDay int64     `json:"pricePerDay"`
	Quantity    int       `json:"quantity"`
	Days        int       `json:"days"`
	Subtotal    int64     `json:"subtotal"`
}

// SecurityPersonnelLine is the optional escort line of a booking.
type SecurityPersonnelLine struct {
	Count    int   `json:"count"`
	Rate     int64 `json:"rate"`
	Days     int   `json:"days"`
	Subtotal int64 `json:"subtotal"`
}

type Booking struct {
	Base
	RefNumber         string                 `db:"ref_number"`
	CustomerName      string                 `db:"customer_name"`
	Phone             string                 `db:"phone"`
	Email             *string                `db:"email"`
	PickupLocation    string                 `db:"pickup_location"`
	DropoffLocation   string                 `db:"dropoff_location"`
	StartDate         time.Time              `db:"start_date"`
	EndDate           time.Time              `db:"end_date"`
	RentalDays        int                    `db:"rental_days"`
	Vehicles          []SelectedVehicleLine  `db:"vehicles"`
	SecurityPersonnel *SecurityPersonnelLine `db:"security_personnel"`
	TotalAmount       int64                  `db:"total_amount"`
	Status            BookingStatus          `db:"status"`
	PaymentStatus     PaymentStatus          `db:"payment_status"`
	Notes             *string                `db:"notes"`
}
