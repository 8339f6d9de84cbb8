package entity

import "github.com/lib/pq"

// Vehicle is a rentable catalog entry. Availability is a manual toggle and
// is not derived from bookings.
type Vehicle struct {
	Base
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	PricePerDay  int64          `db:"price_per_day"`
	Availability bool           `db:"availability"`
	Image        *string        `db:"image"`
	Description  string         `db:"description"`
	Features     pq.StringArray `db:"features"`
}
