package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDateAsc   = "date"
	SortPopular   = "popularity"
)

// EventFilter carries the parsed search parameters. Zero-valued fields are
// not applied; price bounds use pointers so zero cents stays expressible.
type EventFilter struct {
	Query         string
	Location      string
	Category      model.EventCategory
	CitySlug      string
	Date          *time.Time
	MinPriceCents *int64
	MaxPriceCents *int64
	Sort          string
	Page          int
	PageSize      int
}

// HasCriteria reports whether any filter beyond sort and paging is set.
func (f EventFilter) HasCriteria() bool {
	return f.Query != "" || f.Location != "" || f.Category != "" ||
		f.CitySlug != "" || f.Date != nil ||
		f.MinPriceCents != nil || f.MaxPriceCents != nil
}

type EventSearchRepo interface {
	Search(filter EventFilter, today time.Time) ([]model.Event, int64, error)
	Autocomplete(prefix string, today time.Time, limit int) ([]string, error)
	ListFeatured(today time.Time, limit int) ([]model.Event, error)
	ListPopular(today time.Time, limit int) ([]model.Event, error)
	ListByCity(cityID uint, today time.Time) ([]model.Event, error)
}

type eventSearchGorm struct {
	db *gorm.DB
}

var _ EventSearchRepo = (*eventSearchGorm)(nil)

func NewEventSearchGorm(db *gorm.DB) *eventSearchGorm {
	return &eventSearchGorm{
		db: db,
	}
}

// base restricts every search to active events that have not started yet.
func (r *eventSearchGorm) base(today time.Time) *gorm.DB {
	return r.db.Model(&model.Event{}).
		Where("events.is_active = ? AND events.start_date >= ?", true, today)
}

func (r *eventSearchGorm) apply(q *gorm.DB, filter EventFilter) *gorm.DB {
	// the text filters reach into the city row; join once for both
	if filter.Query != "" || filter.Location != "" {
		q = q.Joins("LEFT JOIN cities ON cities.id = events.city_id")
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ? OR LOWER(events.location) LIKE ? OR LOWER(cities.name) LIKE ? OR LOWER(events.category) LIKE ?",
			like, like, like, like, like)
	}
	if filter.Location != "" {
		like := "%" + strings.ToLower(filter.Location) + "%"
		q = q.Where("LOWER(events.location) LIKE ? OR LOWER(cities.name) LIKE ? OR LOWER(cities.state) LIKE ?",
			like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("events.category = ?", filter.Category)
	}
	if filter.CitySlug != "" {
		q = q.Where("events.city_id IN (?)",
			r.db.Model(&model.City{}).Select("id").Where("slug = ?", filter.CitySlug))
	}
	if filter.Date != nil {
		q = q.Where("events.start_date <= ? AND events.end_date >= ?", *filter.Date, *filter.Date)
	}
	if filter.MinPriceCents != nil {
		q = q.Where("events.price_cents >= ?", *filter.MinPriceCents)
	}
	if filter.MaxPriceCents != nil {
		q = q.Where("events.price_cents <= ?", *filter.MaxPriceCents)
	}
	return q
}

// Search runs the filter twice, once for the total and once for the page,
// the count query skipping the order/group machinery.
func (r *eventSearchGorm) Search(filter EventFilter, today time.Time) ([]model.Event, int64, error) {
	var total int64
	if err := r.apply(r.base(today), filter).Distinct("events.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	// joins below would otherwise leak bookings/cities columns into the scan
	q := r.apply(r.base(today), filter).Select("events.*").Preload("City")
	switch filter.Sort {
	case SortPriceAsc:
		q = q.Order("events.price_cents ASC")
	case SortPriceDesc:
		q = q.Order("events.price_cents DESC")
	case SortDateAsc:
		q = q.Order("events.start_date ASC")
	case SortPopular:
		q = q.Joins("LEFT JOIN bookings ON bookings.event_id = events.id").
			Group("events.id").
			Order("COUNT(bookings.id) DESC, events.created_at DESC")
	default:
		q = q.Order("events.created_at DESC")
	}

	var events []model.Event
	err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Autocomplete suggests titles of upcoming active events whose title or
// location starts with the prefix.
func (r *eventSearchGorm) Autocomplete(prefix string, today time.Time, limit int) ([]string, error) {
	var titles []string
	like := strings.ToLower(prefix) + "%"
	err := r.base(today).
		Where("LOWER(events.title) LIKE ? OR LOWER(events.location) LIKE ?", like, like).
		Order("events.title ASC").
		Limit(limit).
		Pluck("events.title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *eventSearchGorm) ListFeatured(today time.Time, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.base(today).
		Where("events.is_featured = ?", true).
		Preload("City").
		Order("events.start_date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventSearchGorm) ListPopular(today time.Time, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.base(today).
		Select("events.*").
		Joins("LEFT JOIN bookings ON bookings.event_id = events.id").
		Group("events.id").
		Order("COUNT(bookings.id) DESC, events.created_at DESC").
		Preload("City").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventSearchGorm) ListByCity(cityID uint, today time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.base(today).
		Where("events.city_id = ?", cityID).
		Preload("City").
		Order("events.start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
