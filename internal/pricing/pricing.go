// Package pricing turns a booking draft into priced line items. It is pure:
// catalog rates are passed in and nothing is persisted.
package pricing

import (
	"time"

	"paramount-autos/internal/data/entity"
	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// DateLayout is the calendar date format accepted from clients.
const DateLayout = "2006-01-02"

// VehicleRate is the catalog data the calculator needs for one vehicle.
type VehicleRate struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Image       *string
	PricePerDay int64
	Available   bool
}

// RateFromVehicle projects a catalog row onto its pricing view.
func RateFromVehicle(v *entity.Vehicle) VehicleRate {
	return VehicleRate{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Image:       v.Image,
		PricePerDay: v.PricePerDay,
		Available:   v.Availability,
	}
}

// Selection is one (vehicle, quantity) pair picked by the customer.
type Selection struct {
	VehicleID uuid.UUID
	Quantity  int
}

// Draft is the immutable input of a quote.
type Draft struct {
	StartDate     time.Time
	EndDate       time.Time
	Vehicles      []Selection
	SecurityCount int
}

// Quote is the priced result of a Draft.
type Quote struct {
	Days     int
	Vehicles []entity.SelectedVehicleLine
	Security *entity.SecurityPersonnelLine
	Total    int64
}

// Calculator prices drafts with a fixed security-personnel day rate.
type Calculator struct {
	securityRate int64
}

func NewCalculator(securityRate int64) *Calculator {
	return &Calculator{securityRate: securityRate}
}

func (c *Calculator) SecurityRate() int64 {
	return c.securityRate
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, xerrors.Validation("invalid date %q", v)
	}
	return t, nil
}

// RentalDays is ceil((end - start) / 24h) with a floor of one day. An
// inverted range is rejected.
func RentalDays(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, xerrors.Validation("start and end dates are required")
	}
	if end.Before(start) {
		return 0, xerrors.Validation("end date %s is before start date %s",
			end.Format(DateLayout), start.Format(DateLayout))
	}

	diff := end.Sub(start)
	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// Quote prices d against rates. Zero-quantity selections are dropped and
// repeated vehicle ids are merged into one line in first-seen order.
func (c *Calculator) Quote(d Draft, rates map[uuid.UUID]VehicleRate) (*Quote, error) {
	days, err := RentalDays(d.StartDate, d.EndDate)
	if err != nil {
		return nil, err
	}

	if d.SecurityCount < 0 {
		return nil, xerrors.Validation("security personnel count must not be negative, got %d", d.SecurityCount)
	}

	quantities := make(map[uuid.UUID]int, len(d.Vehicles))
	var order []uuid.UUID
	for _, sel := range d.Vehicles {
		if sel.Quantity < 0 {
			return nil, xerrors.Validation("quantity for vehicle %s must not be negative, got %d", sel.VehicleID, sel.Quantity)
		}
		if sel.Quantity == 0 {
			continue
		}
		if _, seen := quantities[sel.VehicleID]; !seen {
			order = append(order, sel.VehicleID)
		}
		quantities[sel.VehicleID] += sel.Quantity
	}

	if len(order) == 0 {
		return nil, xerrors.Validation("at least one vehicle must be selected")
	}

	q := &Quote{Days: days, Vehicles: make([]entity.SelectedVehicleLine, 0, len(order))}
	for _, id := range order {
		rate, ok := rates[id]
		if !ok {
			return nil, xerrors.NotFound("vehicle %s", id)
		}
		if !rate.Available {
			return nil, xerrors.Validation("vehicle %s is not available", rate.Name)
		}
		if rate.PricePerDay <= 0 {
			return nil, xerrors.Validation("vehicle %s has no valid day rate", rate.Name)
		}

		qty := quantities[id]
		line := entity.SelectedVehicleLine{
			VehicleID:   id,
			Name:        rate.Name,
			Type:        rate.Type,
			Image:       rate.Image,
			PricePerDay: rate.PricePerDay,
			Quantity:    qty,
			Days:        days,
			Subtotal:    rate.PricePerDay * int64(qty) * int64(days),
		}
		q.Vehicles = append(q.Vehicles, line)
		q.Total += line.Subtotal
	}

	if d.SecurityCount > 0 {
		if c.securityRate <= 0 {
			return nil, xerrors.Validation("security personnel are not offered")
		}
		q.Security = &entity.SecurityPersonnelLine{
			Count:    d.SecurityCount,
			Rate:     c.securityRate,
			Days:     days,
			Subtotal: c.securityRate * int64(d.SecurityCount) * int64(days),
		}
		q.Total += q.Security.Subtotal
	}

	return q, nil
}

// LineTotal sums the subtotals of already priced lines.
func LineTotal(vehicles []entity.SelectedVehicleLine, security *entity.SecurityPersonnelLine) int64 {
	var total int64
	for _, v := range vehicles {
		total += v.Subtotal
	}
	if security != nil {
		total += security.Subtotal
	}
	return total
}
