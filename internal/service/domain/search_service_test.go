package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
)

// searchFixture seeds a catalog spanning categories, cities, and price
// points: jazz (7500, music, SF), marathon (5000, sports), gala (20000,
// food, SF), plus one inactive and one already-started event that must
// never surface.
type searchFixture struct {
	s        *services
	jazz     *model.Event
	marathon *model.Event
	gala     *model.Event
	city     *model.City
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	s := newServices(t)
	host := s.host(t, "host")
	city := s.city(t, "San Francisco", true)

	create := func(title string, cat model.EventCategory, cents int64, cityID *uint, daysOut int) *model.Event {
		start := time.Now().AddDate(0, 0, daysOut)
		event, err := s.events.Create(host.ID, EventInput{
			Title:      title,
			Category:   cat,
			CityID:     cityID,
			Location:   "Downtown",
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 1),
			PriceCents: cents,
			Capacity:   50,
		})
		require.NoError(t, err)
		return event
	}

	f := &searchFixture{
		s:        s,
		city:     city,
		jazz:     create("Jazz Under the Stars", model.CategoryMusic, 7500, &city.ID, 10),
		marathon: create("City Marathon", model.CategorySports, 5000, nil, 15),
		gala:     create("Harvest Gala Dinner", model.CategoryFood, 20000, &city.ID, 20),
	}

	hidden := create("Hidden Show", model.CategoryMusic, 1000, nil, 10)
	require.NoError(t, s.events.Deactivate(host.ID, hidden.ID))
	started := create("Started Yesterday", model.CategoryMusic, 1000, nil, 5)
	require.NoError(t, s.db.Model(&model.Event{}).Where("id = ?", started.ID).
		UpdateColumn("start_date", time.Now().AddDate(0, 0, -1)).Error)

	return f
}

func (f *searchFixture) search(t *testing.T, filter repository.EventFilter) *SearchPage {
	t.Helper()
	page, err := f.s.search.Search(context.Background(), filter, time.Now())
	require.NoError(t, err)
	return page
}

func ids(events []model.Event) []uint {
	out := make([]uint, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestSearchWithoutCriteriaIsEmpty(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{})
	assert.Empty(t, page.Events)
	assert.Zero(t, page.Total)
}

func TestSearchByText(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "JAZZ"})
	assert.Equal(t, []uint{f.jazz.ID}, ids(page.Events))
	assert.Equal(t, int64(1), page.Total)
}

func TestSearchByCityName(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "francisco", Sort: repository.SortPriceAsc})
	assert.Equal(t, []uint{f.jazz.ID, f.gala.ID}, ids(page.Events))
	assert.Equal(t, int64(2), page.Total)
}

func TestSearchByCategoryText(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "music"})
	assert.Equal(t, []uint{f.jazz.ID}, ids(page.Events))

	page = f.search(t, repository.EventFilter{Query: "sports"})
	assert.Equal(t, []uint{f.marathon.ID}, ids(page.Events))
}

func TestSearchLocationMatchesCityState(t *testing.T) {
	f := newSearchFixture(t)

	// marathon has no city row, so the state match cannot reach it
	page := f.search(t, repository.EventFilter{Location: "CA", Sort: repository.SortPriceAsc})
	assert.Equal(t, []uint{f.jazz.ID, f.gala.ID}, ids(page.Events))
}

func TestSearchExcludesInactiveAndPast(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "e"})
	assert.NotContains(t, ids(page.Events), uint(0))
	for _, e := range page.Events {
		assert.True(t, e.IsActive)
		assert.NotEqual(t, "Hidden Show", e.Title)
		assert.NotEqual(t, "Started Yesterday", e.Title)
	}
}

func TestSearchByCategory(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Category: model.CategorySports})
	assert.Equal(t, []uint{f.marathon.ID}, ids(page.Events))
}

func TestSearchByPriceRange(t *testing.T) {
	f := newSearchFixture(t)

	min, max := int64(6000), int64(10000)
	page := f.search(t, repository.EventFilter{MinPriceCents: &min, MaxPriceCents: &max})
	assert.Equal(t, []uint{f.jazz.ID}, ids(page.Events))
}

func TestSearchByCity(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{CitySlug: f.city.Slug, Sort: repository.SortPriceAsc})
	assert.Equal(t, []uint{f.jazz.ID, f.gala.ID}, ids(page.Events))
}

func TestSearchByDate(t *testing.T) {
	f := newSearchFixture(t)

	date := f.marathon.StartDate
	page := f.search(t, repository.EventFilter{Date: &date})
	assert.Equal(t, []uint{f.marathon.ID}, ids(page.Events))
}

func TestSearchSortByPrice(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "a", Sort: repository.SortPriceAsc})
	require.Len(t, page.Events, 3)
	assert.True(t, page.Events[0].PriceCents <= page.Events[1].PriceCents)
	assert.True(t, page.Events[1].PriceCents <= page.Events[2].PriceCents)

	page = f.search(t, repository.EventFilter{Query: "a", Sort: repository.SortPriceDesc})
	assert.Equal(t, f.gala.ID, page.Events[0].ID)
}

func TestSearchSortByPopularity(t *testing.T) {
	f := newSearchFixture(t)
	user := f.s.user(t, "alice")

	_, err := f.s.bookings.Create(user.ID, f.gala.ID, 2, f.gala.StartDate)
	require.NoError(t, err)
	_, err = f.s.bookings.Create(user.ID, f.gala.ID, 1, f.gala.StartDate)
	require.NoError(t, err)
	_, err = f.s.bookings.Create(user.ID, f.jazz.ID, 1, f.jazz.StartDate)
	require.NoError(t, err)

	page := f.search(t, repository.EventFilter{Query: "a", Sort: repository.SortPopular})
	require.Len(t, page.Events, 3)
	assert.Equal(t, f.gala.ID, page.Events[0].ID)
	assert.Equal(t, f.jazz.ID, page.Events[1].ID)
}

func TestSearchPagination(t *testing.T) {
	f := newSearchFixture(t)

	page := f.search(t, repository.EventFilter{Query: "a", PageSize: 2})
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Events, 2)
	assert.Equal(t, 2, page.TotalPages)

	second := f.search(t, repository.EventFilter{Query: "a", PageSize: 2, Page: 2})
	assert.Len(t, second.Events, 1)
}

func TestAutocomplete(t *testing.T) {
	f := newSearchFixture(t)

	suggestions, err := f.s.search.Suggest("jaz", time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz Under the Stars"}, suggestions.Events)
	assert.Empty(t, suggestions.Cities)

	suggestions, err = f.s.search.Suggest("san", time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"San Francisco"}, suggestions.Cities)

	// location prefixes suggest their events' titles
	suggestions, err = f.s.search.Suggest("down", time.Now())
	require.NoError(t, err)
	assert.Len(t, suggestions.Events, 3)

	// below the two-character threshold nothing is queried
	suggestions, err = f.s.search.Suggest(" j ", time.Now())
	require.NoError(t, err)
	assert.Empty(t, suggestions.Events)

	// the inactive event's title never surfaces
	suggestions, err = f.s.search.Suggest("hidden", time.Now())
	require.NoError(t, err)
	assert.Empty(t, suggestions.Events)
}
