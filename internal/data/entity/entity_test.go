package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	allowed := map[[2]BookingStatus]bool{
		{BookingStatusPending, BookingStatusConfirmed}:   true,
		{BookingStatusPending, BookingStatusCancelled}:   true,
		{BookingStatusConfirmed, BookingStatusCompleted}: true,
		{BookingStatusConfirmed, BookingStatusCancelled}: true,
	}

	for _, from := range BookingStatuses {
		for _, to := range BookingStatuses {
			want := allowed[[2]BookingStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatus("ARCHIVED").IsTerminal())
	assert.False(t, BookingStatus("ARCHIVED").CanTransitionTo(BookingStatusPending))
}

func TestBookingStatusRevenue(t *testing.T) {
	assert.False(t, BookingStatusPending.IsRevenue())
	assert.True(t, BookingStatusConfirmed.IsRevenue())
	assert.True(t, BookingStatusCompleted.IsRevenue())
	assert.False(t, BookingStatusCancelled.IsRevenue())
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseBookingStatus(" confirmed ")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, s)

	_, err = ParseBookingStatus("shipped")
	assert.Error(t, err)

	p, err := ParsePaymentStatus("verified")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusVerified, p)

	_, err = ParsePaymentStatus("refunded")
	assert.Error(t, err)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin, IsActive: true}).IsAdmin())
	assert.True(t, (&User{Role: RoleSuperAdmin, IsActive: true}).IsAdmin())
	assert.False(t, (&User{Role: RoleAdmin, IsActive: false}).IsAdmin())
	assert.False(t, (&User{Role: "customer", IsActive: true}).IsAdmin())
}
