package model

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:150;not null;uniqueIndex"`
	Email     string `gorm:"size:254;not null;uniqueIndex"`
	IsHost    bool   `gorm:"not null;default:false"`
	Phone     string `gorm:"size:15"`
	Bio       string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

type City struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null;uniqueIndex"`
	State      string `gorm:"size:100;not null"`
	Country    string `gorm:"size:100;not null;default:USA"`
	Slug       string `gorm:"size:100;not null;uniqueIndex"`
	IsFeatured bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

type EventCategory string

const (
	CategoryMusic    EventCategory = "music"
	CategorySports   EventCategory = "sports"
	CategoryArts     EventCategory = "arts"
	CategoryFood     EventCategory = "food"
	CategoryBusiness EventCategory = "business"
	CategoryTech     EventCategory = "tech"
	CategoryWellness EventCategory = "wellness"
)

func (c EventCategory) Valid() bool {
	switch c {
	case CategoryMusic, CategorySports, CategoryArts, CategoryFood,
		CategoryBusiness, CategoryTech, CategoryWellness:
		return true
	}
	return false
}

// Event is the bookable catalog entry. Capacity is the immutable business
// ceiling; AvailableTickets starts at Capacity and is mutated only through
// the conditional updates in the event repository.
type Event struct {
	ID                 uint          `gorm:"primaryKey"`
	HostID             uint          `gorm:"not null;index"`
	Title              string        `gorm:"size:200;not null"`
	Slug               string        `gorm:"size:200;not null;uniqueIndex"`
	Description        string        `gorm:"type:text"`
	Category           EventCategory `gorm:"type:varchar(50);not null;index:idx_events_category_active"`
	CityID             *uint         `gorm:"index:idx_events_city_active"`
	Location           string        `gorm:"size:200"`
	StartDate          time.Time     `gorm:"not null;index:idx_events_start_active"`
	EndDate            time.Time     `gorm:"not null"`
	PriceCents         int64         `gorm:"not null"`
	Capacity           int           `gorm:"not null"`
	AvailableTickets   int           `gorm:"not null"`
	Included           string        `gorm:"type:text"`
	ThingsToKnow       string        `gorm:"type:text"`
	CancellationPolicy string        `gorm:"type:text"`
	AgeRestriction     string        `gorm:"size:100"`
	IsActive           bool          `gorm:"not null;default:true;index:idx_events_category_active;index:idx_events_start_active;index:idx_events_city_active"`
	IsFeatured         bool          `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	City *City `gorm:"foreignKey:CityID"`
}

func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets <= 0
}

type EventImage struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	URL       string `gorm:"size:500;not null"`
	IsPrimary bool   `gorm:"not null;default:false"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses are the statuses that hold tickets against an
// event's inventory.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID              uint          `gorm:"primaryKey"`
	UserID          uint          `gorm:"not null;index"`
	EventID         uint          `gorm:"not null;index"`
	Tickets         int           `gorm:"not null"`
	EventDate       time.Time     `gorm:"not null"`
	TotalPriceCents int64         `gorm:"not null"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:pending;index"`
	PaymentRef      string        `gorm:"size:100"`
	IsPaid          bool          `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_user_event"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_reviews_user_event"`
	BookingID *uint  `gorm:"uniqueIndex"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorites_user_event"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_favorites_user_event"`
	CreatedAt time.Time
}
