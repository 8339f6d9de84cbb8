package pricing

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"paramount-autos/pkg/xerrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hiluxID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	pradoID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	busID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func catalog() map[uuid.UUID]VehicleRate {
	return map[uuid.UUID]VehicleRate{
		hiluxID: {ID: hiluxID, Name: "Toyota Hilux", Type: "SUV", PricePerDay: 50000, Available: true},
		pradoID: {ID: pradoID, Name: "Toyota Prado", Type: "Luxury SUV", PricePerDay: 80000, Available: true},
		busID:   {ID: busID, Name: "18-Seater Bus", Type: "Bus", PricePerDay: 120000, Available: false},
	}
}

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		want    int
		wantErr bool
	}{
		{"same day floors to one", date("2024-05-01"), date("2024-05-01"), 1, false},
		{"five calendar days", date("2024-05-01"), date("2024-05-06"), 5, false},
		{"partial day rounds up", date("2024-05-01"), date("2024-05-02").Add(2 * time.Hour), 2, false},
		{"few hours is one day", date("2024-05-01"), date("2024-05-01").Add(3 * time.Hour), 1, false},
		{"inverted range", date("2024-05-06"), date("2024-05-01"), 0, true},
		{"zero start", time.Time{}, date("2024-05-01"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RentalDays(tt.start, tt.end)
			if tt.wantErr {
				assert.True(t, errors.Is(err, xerrors.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, date("2024-05-01"), d)

	d, err = ParseDate("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("01/05/2024")
	assert.True(t, errors.Is(err, xerrors.ErrValidation))
}

func TestQuoteVehiclesOnly(t *testing.T) {
	calc := NewCalculator(15000)
	q, err := calc.Quote(Draft{
		StartDate: date("2024-05-01"),
		EndDate:   date("2024-05-06"),
		Vehicles:  []Selection{{VehicleID: hiluxID, Quantity: 2}},
	}, catalog())
	require.NoError(t, err)

	assert.Equal(t, 5, q.Days)
	require.Len(t, q.Vehicles, 1)
	assert.Equal(t, "Toyota Hilux", q.Vehicles[0].Name)
	assert.Equal(t, int64(500000), q.Vehicles[0].Subtotal)
	assert.Nil(t, q.Security)
	assert.Equal(t, int64(500000), q.Total)
}

func TestQuoteWithSecurity(t *testing.T) {
	calc := NewCalculator(15000)
	q, err := calc.Quote(Draft{
		StartDate:     date("2024-05-01"),
		EndDate:       date("2024-05-06"),
		Vehicles:      []Selection{{VehicleID: hiluxID, Quantity: 2}},
		SecurityCount: 2,
	}, catalog())
	require.NoError(t, err)

	require.NotNil(t, q.Security)
	assert.Equal(t, int64(15000), q.Security.Rate)
	assert.Equal(t, 5, q.Security.Days)
	assert.Equal(t, int64(150000), q.Security.Subtotal)
	assert.Equal(t, int64(650000), q.Total)
}

func TestQuoteDropsZeroAndMergesDuplicates(t *testing.T) {
	calc := NewCalculator(15000)
	q, err := calc.Quote(Draft{
		StartDate: date("2024-05-01"),
		EndDate:   date("2024-05-03"),
		Vehicles: []Selection{
			{VehicleID: pradoID, Quantity: 1},
			{VehicleID: hiluxID, Quantity: 0},
			{VehicleID: pradoID, Quantity: 2},
		},
	}, catalog())
	require.NoError(t, err)

	require.Len(t, q.Vehicles, 1)
	assert.Equal(t, pradoID, q.Vehicles[0].VehicleID)
	assert.Equal(t, 3, q.Vehicles[0].Quantity)
	assert.Equal(t, int64(80000*3*2), q.Total)
}

func TestQuoteErrors(t *testing.T) {
	calc := NewCalculator(15000)
	base := Draft{StartDate: date("2024-05-01"), EndDate: date("2024-05-02")}

	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   error
	}{
		{"empty selection", func(d *Draft) {}, xerrors.ErrValidation},
		{"only zero quantities", func(d *Draft) { d.Vehicles = []Selection{{VehicleID: hiluxID}} }, xerrors.ErrValidation},
		{"negative quantity", func(d *Draft) { d.Vehicles = []Selection{{VehicleID: hiluxID, Quantity: -1}} }, xerrors.ErrValidation},
		{"unknown vehicle", func(d *Draft) { d.Vehicles = []Selection{{VehicleID: uuid.New(), Quantity: 1}} }, xerrors.ErrNotFound},
		{"unavailable vehicle", func(d *Draft) { d.Vehicles = []Selection{{VehicleID: busID, Quantity: 1}} }, xerrors.ErrValidation},
		{"negative security", func(d *Draft) {
			d.Vehicles = []Selection{{VehicleID: hiluxID, Quantity: 1}}
			d.SecurityCount = -2
		}, xerrors.ErrValidation},
		{"inverted dates", func(d *Draft) {
			d.Vehicles = []Selection{{VehicleID: hiluxID, Quantity: 1}}
			d.StartDate, d.EndDate = d.EndDate, d.StartDate
		}, xerrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mutate(&d)
			_, err := calc.Quote(d, catalog())
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestQuoteSecurityWithoutRate(t *testing.T) {
	_, err := NewCalculator(0).Quote(Draft{
		StartDate:     date("2024-05-01"),
		EndDate:       date("2024-05-02"),
		Vehicles:      []Selection{{VehicleID: hiluxID, Quantity: 1}},
		SecurityCount: 1,
	}, catalog())
	assert.True(t, errors.Is(err, xerrors.ErrValidation))
}

func TestQuoteTotalEqualsLineSum(t *testing.T) {
	calc := NewCalculator(15000)
	rng := rand.New(rand.NewPCG(7, 11))
	start := date("2024-01-01")

	for i := 0; i < 500; i++ {
		days := 1 + rng.IntN(60)
		d := Draft{
			StartDate:     start,
			EndDate:       start.Add(time.Duration(days) * day),
			SecurityCount: rng.IntN(6),
			Vehicles: []Selection{
				{VehicleID: hiluxID, Quantity: 1 + rng.IntN(10)},
				{VehicleID: pradoID, Quantity: rng.IntN(10)},
			},
		}

		q, err := calc.Quote(d, catalog())
		require.NoError(t, err)
		assert.Equal(t, days, q.Days)

		var want int64
		for _, line := range q.Vehicles {
			assert.Equal(t, line.PricePerDay*int64(line.Quantity)*int64(days), line.Subtotal)
			want += line.Subtotal
		}
		if q.Security != nil {
			assert.Equal(t, int64(15000)*int64(d.SecurityCount)*int64(days), q.Security.Subtotal)
			want += q.Security.Subtotal
		}
		assert.Equal(t, want, q.Total)
		assert.Equal(t, want, LineTotal(q.Vehicles, q.Security))
	}
}
