package domain

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

// CityEvents is the city landing page: the city row plus its upcoming
// active events.
type CityEvents struct {
	City   *model.City
	Events []model.Event
}

// CatalogService serves the browse surfaces: city directory, featured rows,
// popularity rankings.
type CatalogService struct {
	cities repository.CityRepo
	search repository.EventSearchRepo
}

func NewCatalogService(cities repository.CityRepo, search repository.EventSearchRepo) *CatalogService {
	return &CatalogService{
		cities: cities,
		search: search,
	}
}

func (s *CatalogService) CreateCity(name, state, country string, featured bool) (*model.City, error) {
	if strings.TrimSpace(name) == "" {
		return nil, service.Invalid("name", "must not be empty")
	}
	city := &model.City{
		Name:       name,
		State:      state,
		Country:    country,
		Slug:       Slugify(name),
		IsFeatured: featured,
	}
	if city.Country == "" {
		city.Country = "USA"
	}
	if _, err := s.cities.GetBySlug(city.Slug); err == nil {
		return nil, service.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.cities.Create(city); err != nil {
		return nil, err
	}
	return city, nil
}

// Cities lists only cities that currently have at least one active event.
func (s *CatalogService) Cities() ([]model.City, error) {
	return s.cities.ListWithActiveEvents()
}

func (s *CatalogService) FeaturedCities(now time.Time, limit int) ([]repository.CityWithCount, error) {
	return s.cities.ListFeatured(dateOnly(now), limit)
}

func (s *CatalogService) CityEvents(slug string, now time.Time) (*CityEvents, error) {
	city, err := s.cities.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	events, err := s.search.ListByCity(city.ID, dateOnly(now))
	if err != nil {
		return nil, err
	}
	return &CityEvents{
		City:   city,
		Events: events,
	}, nil
}

func (s *CatalogService) FeaturedEvents(now time.Time, limit int) ([]model.Event, error) {
	return s.search.ListFeatured(dateOnly(now), limit)
}

// PopularEvents ranks upcoming active events by how many bookings they have
// drawn, newest first among ties.
func (s *CatalogService) PopularEvents(now time.Time, limit int) ([]model.Event, error) {
	return s.search.ListPopular(dateOnly(now), limit)
}
