package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/service"
)

func TestCreateCity(t *testing.T) {
	s := newServices(t)

	city, err := s.catalog.CreateCity("New Orleans", "LA", "", true)
	require.NoError(t, err)
	assert.Equal(t, "new-orleans", city.Slug)
	assert.Equal(t, "USA", city.Country)

	_, err = s.catalog.CreateCity("New Orleans", "LA", "USA", false)
	assert.ErrorIs(t, err, service.ErrSlugTaken)
	_, err = s.catalog.CreateCity("  ", "LA", "USA", false)
	assert.True(t, service.IsValidation(err))
}

// Cities with no active events stay off the directory.
func TestCitiesListing(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	austin := s.city(t, "Austin", false)
	s.city(t, "Empty Town", false)

	start := time.Now().AddDate(0, 0, 10)
	_, err := s.events.Create(host.ID, EventInput{
		Title:      "Austin Fair",
		Category:   model.CategoryFood,
		CityID:     &austin.ID,
		StartDate:  start,
		EndDate:    start,
		PriceCents: 100,
		Capacity:   10,
	})
	require.NoError(t, err)

	cities, err := s.catalog.Cities()
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Austin", cities[0].Name)
}

func TestFeaturedCities(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	austin := s.city(t, "Austin", true)
	s.city(t, "Plain City", false)

	start := time.Now().AddDate(0, 0, 10)
	_, err := s.events.Create(host.ID, EventInput{
		Title:      "Austin Fair",
		Category:   model.CategoryFood,
		CityID:     &austin.ID,
		StartDate:  start,
		EndDate:    start,
		PriceCents: 100,
		Capacity:   10,
	})
	require.NoError(t, err)

	rows, err := s.catalog.FeaturedCities(time.Now(), 6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, austin.ID, rows[0].City.ID)
	assert.Equal(t, int64(1), rows[0].EventCount)
}

func TestCityEvents(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	austin := s.city(t, "Austin", false)

	start := time.Now().AddDate(0, 0, 10)
	event, err := s.events.Create(host.ID, EventInput{
		Title:      "Austin Fair",
		Category:   model.CategoryFood,
		CityID:     &austin.ID,
		StartDate:  start,
		EndDate:    start,
		PriceCents: 100,
		Capacity:   10,
	})
	require.NoError(t, err)

	page, err := s.catalog.CityEvents(austin.Slug, time.Now())
	require.NoError(t, err)
	assert.Equal(t, austin.ID, page.City.ID)
	require.Len(t, page.Events, 1)
	assert.Equal(t, event.ID, page.Events[0].ID)

	_, err = s.catalog.CityEvents("nowhere", time.Now())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPopularEvents(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	quiet := s.event(t, host.ID, "Quiet Gig", 1000, 20, 10)
	busy := s.event(t, host.ID, "Busy Gig", 1000, 20, 10)

	_, err := s.bookings.Create(user.ID, busy.ID, 2, busy.StartDate)
	require.NoError(t, err)

	events, err := s.catalog.PopularEvents(time.Now(), 8)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, busy.ID, events[0].ID)
	assert.Equal(t, quiet.ID, events[1].ID)
}
