package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

// EventInput is the host-facing create/update payload. Capacity is only read
// on create; the ceiling never moves once bookings may exist against it.
type EventInput struct {
	Title              string
	Description        string
	Category           model.EventCategory
	CityID             *uint
	Location           string
	StartDate          time.Time
	EndDate            time.Time
	PriceCents         int64
	Capacity           int
	Included           string
	ThingsToKnow       string
	CancellationPolicy string
	AgeRestriction     string
}

// EventDetail aggregates everything the event page shows in one fetch.
type EventDetail struct {
	Event       *model.Event
	Images      []model.EventImage
	AvgRating   float64
	ReviewCount int64
	Reviews     []model.Review
	Similar     []model.Event
	SoldOut     bool
}

// HostEventStats is one row of the host dashboard.
type HostEventStats struct {
	Event        model.Event
	BookingCount int64
	AvgRating    float64
	ReviewCount  int64
}

type EventService struct {
	db       *gorm.DB
	events   repository.EventRepo
	reviews  repository.ReviewRepo
	users    repository.UserRepo
	bookings repository.BookingRepo
}

func NewEventService(db *gorm.DB, events repository.EventRepo, reviews repository.ReviewRepo, users repository.UserRepo, bookings repository.BookingRepo) *EventService {
	return &EventService{
		db:       db,
		events:   events,
		reviews:  reviews,
		users:    users,
		bookings: bookings,
	}
}

func (s *EventService) Create(hostID uint, in EventInput) (*model.Event, error) {
	host, err := s.users.GetByID(hostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if !host.IsHost || !host.IsActive {
		return nil, service.ErrNotHost
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	event := &model.Event{
		HostID:             hostID,
		Title:              in.Title,
		Slug:               Slugify(in.Title),
		Description:        in.Description,
		Category:           in.Category,
		CityID:             in.CityID,
		Location:           in.Location,
		StartDate:          dateOnly(in.StartDate),
		EndDate:            dateOnly(in.EndDate),
		PriceCents:         in.PriceCents,
		Capacity:           in.Capacity,
		AvailableTickets:   in.Capacity,
		Included:           in.Included,
		ThingsToKnow:       in.ThingsToKnow,
		CancellationPolicy: in.CancellationPolicy,
		AgeRestriction:     in.AgeRestriction,
		IsActive:           true,
	}
	if _, err := s.events.GetBySlug(event.Slug); err == nil {
		// Same title twice: disambiguate instead of rejecting outright.
		event.Slug = fmt.Sprintf("%s-%d", event.Slug, time.Now().UnixNano()%100000)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.events.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update rewrites the descriptive fields of a host's own event. Capacity and
// available tickets stay untouched; the ledger owns those columns.
func (s *EventService) Update(hostID, eventID uint, in EventInput) (*model.Event, error) {
	event, err := s.getOwned(hostID, eventID)
	if err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	event.Title = in.Title
	event.Description = in.Description
	event.Category = in.Category
	event.CityID = in.CityID
	event.Location = in.Location
	event.StartDate = dateOnly(in.StartDate)
	event.EndDate = dateOnly(in.EndDate)
	event.PriceCents = in.PriceCents
	event.Included = in.Included
	event.ThingsToKnow = in.ThingsToKnow
	event.CancellationPolicy = in.CancellationPolicy
	event.AgeRestriction = in.AgeRestriction
	if err := s.events.Save(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Deactivate soft-deletes: the event drops out of search and stops taking
// reservations, but existing bookings keep pointing at it.
func (s *EventService) Deactivate(hostID, eventID uint) error {
	event, err := s.getOwned(hostID, eventID)
	if err != nil {
		return err
	}
	return s.events.SetActive(event.ID, false)
}

func (s *EventService) ListByHost(hostID uint) ([]model.Event, error) {
	return s.events.ListByHost(hostID)
}

// HostDashboard lists a host's events with their booking volume and rating
// summary.
func (s *EventService) HostDashboard(hostID uint) ([]HostEventStats, error) {
	events, err := s.events.ListByHost(hostID)
	if err != nil {
		return nil, err
	}
	stats := make([]HostEventStats, 0, len(events))
	for _, event := range events {
		count, err := s.bookings.CountByEvent(event.ID)
		if err != nil {
			return nil, err
		}
		avg, reviews, err := s.reviews.RatingSummary(event.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, HostEventStats{
			Event:        event,
			BookingCount: count,
			AvgRating:    avg,
			ReviewCount:  reviews,
		})
	}
	return stats, nil
}

func (s *EventService) BySlug(slug string) (*model.Event, error) {
	event, err := s.events.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) Detail(slug string) (*EventDetail, error) {
	event, err := s.BySlug(slug)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.reviews.RatingSummary(event.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByEvent(event.ID, 10)
	if err != nil {
		return nil, err
	}
	similar, err := s.events.ListSimilar(event.Category, event.ID, 3)
	if err != nil {
		return nil, err
	}
	images, err := s.events.ListImages(event.ID)
	if err != nil {
		return nil, err
	}
	return &EventDetail{
		Event:       event,
		Images:      images,
		AvgRating:   avg,
		ReviewCount: count,
		Reviews:     reviews,
		Similar:     similar,
		SoldOut:     event.IsSoldOut(),
	}, nil
}

// AddImage attaches an image to a host's own event.
func (s *EventService) AddImage(hostID, eventID uint, url string, primary bool, position int) (*model.EventImage, error) {
	if strings.TrimSpace(url) == "" {
		return nil, service.Invalid("url", "must not be empty")
	}
	event, err := s.getOwned(hostID, eventID)
	if err != nil {
		return nil, err
	}
	image := &model.EventImage{
		EventID:   event.ID,
		URL:       url,
		IsPrimary: primary,
		Position:  position,
	}
	if err := s.events.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *EventService) getOwned(hostID, eventID uint) (*model.Event, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if event.HostID != hostID {
		return nil, service.ErrNotOwner
	}
	return event, nil
}

func validateEventInput(in EventInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return service.Invalid("title", "must not be empty")
	}
	if !in.Category.Valid() {
		return service.Invalid("category", "unknown category")
	}
	if in.EndDate.Before(in.StartDate) {
		return service.Invalid("end_date", "must not precede start_date")
	}
	if in.PriceCents < 0 {
		return service.Invalid("price", "must not be negative")
	}
	if in.Capacity < 1 {
		return service.Invalid("capacity", "must be at least one")
	}
	return nil
}

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
