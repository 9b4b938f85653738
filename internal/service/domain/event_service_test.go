package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/service"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jazz-night-2026", Slugify("Jazz Night 2026"))
	assert.Equal(t, "rooftop-party", Slugify("  Rooftop -- Party!  "))
	assert.Equal(t, "cafe", Slugify("CAFE"))
}

func TestCreateEventRequiresHost(t *testing.T) {
	s := newServices(t)
	user := s.user(t, "alice")

	start := time.Now().AddDate(0, 0, 10)
	_, err := s.events.Create(user.ID, EventInput{
		Title:     "Not Allowed",
		Category:  model.CategoryMusic,
		StartDate: start,
		EndDate:   start,
		Capacity:  10,
	})
	assert.ErrorIs(t, err, service.ErrNotHost)
}

func TestCreateEventValidation(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	start := time.Now().AddDate(0, 0, 10)

	cases := []struct {
		name string
		in   EventInput
	}{
		{"empty title", EventInput{Category: model.CategoryMusic, StartDate: start, EndDate: start, Capacity: 5}},
		{"bad category", EventInput{Title: "X", Category: "circus", StartDate: start, EndDate: start, Capacity: 5}},
		{"end before start", EventInput{Title: "X", Category: model.CategoryMusic, StartDate: start, EndDate: start.AddDate(0, 0, -1), Capacity: 5}},
		{"negative price", EventInput{Title: "X", Category: model.CategoryMusic, StartDate: start, EndDate: start, PriceCents: -1, Capacity: 5}},
		{"zero capacity", EventInput{Title: "X", Category: model.CategoryMusic, StartDate: start, EndDate: start, Capacity: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.events.Create(host.ID, tc.in)
			assert.True(t, service.IsValidation(err))
		})
	}
}

func TestCreateEventSlugAndInventory(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 10)

	assert.Equal(t, "sunset-cruise", event.Slug)
	assert.Equal(t, 40, event.AvailableTickets)
	assert.True(t, event.IsActive)

	// duplicate title gets a disambiguated slug, not an error
	second := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 12)
	assert.NotEqual(t, event.Slug, second.Slug)
	assert.Contains(t, second.Slug, "sunset-cruise")
}

func TestUpdateEventOwnership(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	other := s.host(t, "other")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 10)

	in := EventInput{
		Title:      "Sunset Cruise Deluxe",
		Category:   model.CategoryMusic,
		StartDate:  event.StartDate,
		EndDate:    event.EndDate,
		PriceCents: 6000,
		Capacity:   40,
	}
	_, err := s.events.Update(other.ID, event.ID, in)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	updated, err := s.events.Update(host.ID, event.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Cruise Deluxe", updated.Title)
	assert.Equal(t, int64(6000), updated.PriceCents)
	// slug and ledger survive the update
	assert.Equal(t, event.Slug, updated.Slug)
	assert.Equal(t, 40, updated.AvailableTickets)
}

func TestDeactivateEvent(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	other := s.host(t, "other")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 10)

	assert.ErrorIs(t, s.events.Deactivate(other.ID, event.ID), service.ErrNotOwner)
	require.NoError(t, s.events.Deactivate(host.ID, event.ID))
	assert.False(t, s.reloadEvent(t, event.ID).IsActive)
}

func TestEventDetail(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 2, 10)
	similar := s.event(t, host.ID, "Harbor Lights", 4500, 30, 11)

	booking, err := s.bookings.Create(user.ID, event.ID, 2, event.StartDate)
	require.NoError(t, err)
	_, err = s.bookings.ConfirmPayment(user.ID, booking.ID)
	require.NoError(t, err)
	_, err = s.reviews.Add(user.ID, event.ID, 4, "lovely")
	require.NoError(t, err)

	detail, err := s.events.Detail(event.Slug)
	require.NoError(t, err)
	assert.Equal(t, event.ID, detail.Event.ID)
	assert.True(t, detail.SoldOut)
	assert.Equal(t, int64(1), detail.ReviewCount)
	assert.InDelta(t, 4.0, detail.AvgRating, 0.001)
	require.Len(t, detail.Similar, 1)
	assert.Equal(t, similar.ID, detail.Similar[0].ID)

	_, err = s.events.Detail("no-such-event")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEventImages(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	other := s.host(t, "other")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 10)

	_, err := s.events.AddImage(other.ID, event.ID, "https://img.example.com/1.jpg", true, 0)
	assert.ErrorIs(t, err, service.ErrNotOwner)
	_, err = s.events.AddImage(host.ID, event.ID, "  ", true, 0)
	assert.True(t, service.IsValidation(err))

	_, err = s.events.AddImage(host.ID, event.ID, "https://img.example.com/2.jpg", false, 1)
	require.NoError(t, err)
	_, err = s.events.AddImage(host.ID, event.ID, "https://img.example.com/1.jpg", true, 0)
	require.NoError(t, err)

	detail, err := s.events.Detail(event.Slug)
	require.NoError(t, err)
	require.Len(t, detail.Images, 2)
	// primary image sorts first
	assert.True(t, detail.Images[0].IsPrimary)
}

func TestHostDashboard(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Sunset Cruise", 5000, 40, 10)

	booking, err := s.bookings.Create(user.ID, event.ID, 2, event.StartDate)
	require.NoError(t, err)
	_, err = s.bookings.ConfirmPayment(user.ID, booking.ID)
	require.NoError(t, err)
	_, err = s.reviews.Add(user.ID, event.ID, 5, "superb")
	require.NoError(t, err)

	stats, err := s.events.HostDashboard(host.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, event.ID, stats[0].Event.ID)
	assert.Equal(t, int64(1), stats[0].BookingCount)
	assert.Equal(t, int64(1), stats[0].ReviewCount)
	assert.InDelta(t, 5.0, stats[0].AvgRating, 0.001)
}
