package domain

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventum-app/eventum/internal/cache"
	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
)

// services bundles everything the tests wire against a fresh in-memory
// database. The pool is pinned to a single connection so the shared :memory:
// database survives and concurrent transactions serialize deterministically.
type services struct {
	db        *gorm.DB
	users     *UserService
	events    *EventService
	bookings  *BookingService
	inventory *InventoryService
	reviews   *ReviewService
	favorites *FavoriteService
	catalog   *CatalogService
	search    *SearchService

	eventRepo   repository.EventRepo
	bookingRepo repository.BookingRepo
}

func newServices(t *testing.T) *services {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.City{},
		&model.Event{},
		&model.EventImage{},
		&model.Booking{},
		&model.Review{},
		&model.Favorite{},
	))

	userRepo := repository.NewUserRepoGorm(db)
	eventRepo := repository.NewEventRepoGorm(db)
	bookingRepo := repository.NewBookingRepoGorm(db)
	cityRepo := repository.NewCityRepoGorm(db)
	reviewRepo := repository.NewReviewRepoGorm(db)
	favoriteRepo := repository.NewFavoriteRepoGorm(db)
	searchRepo := repository.NewEventSearchGorm(db)

	inventory := NewInventoryService(eventRepo, bookingRepo)

	return &services{
		db:          db,
		users:       NewUserService(db, userRepo, eventRepo, bookingRepo, inventory),
		events:      NewEventService(db, eventRepo, reviewRepo, userRepo, bookingRepo),
		bookings:    NewBookingService(db, bookingRepo, eventRepo, inventory),
		inventory:   inventory,
		reviews:     NewReviewService(reviewRepo, bookingRepo, eventRepo),
		favorites:   NewFavoriteService(favoriteRepo, eventRepo),
		catalog:     NewCatalogService(cityRepo, searchRepo),
		search:      NewSearchService(searchRepo, cityRepo, cache.New(nil, nil)),
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *services) user(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := s.users.Register(username, username+"@example.com", false)
	require.NoError(t, err)
	return user
}

func (s *services) host(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := s.users.Register(username, username+"@example.com", true)
	require.NoError(t, err)
	return user
}

func (s *services) city(t *testing.T, name string, featured bool) *model.City {
	t.Helper()
	city, err := s.catalog.CreateCity(name, "CA", "USA", featured)
	require.NoError(t, err)
	return city
}

// event creates an active event starting daysOut days from now and running
// for two days.
func (s *services) event(t *testing.T, hostID uint, title string, priceCents int64, capacity, daysOut int) *model.Event {
	t.Helper()
	start := time.Now().AddDate(0, 0, daysOut)
	event, err := s.events.Create(hostID, EventInput{
		Title:      title,
		Category:   model.CategoryMusic,
		Location:   "Main Hall",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2),
		PriceCents: priceCents,
		Capacity:   capacity,
	})
	require.NoError(t, err)
	return event
}

func (s *services) reloadEvent(t *testing.T, id uint) *model.Event {
	t.Helper()
	event, err := s.eventRepo.GetByID(id)
	require.NoError(t, err)
	return event
}

func (s *services) reloadBooking(t *testing.T, id uint) *model.Booking {
	t.Helper()
	booking, err := s.bookingRepo.GetByID(id)
	require.NoError(t, err)
	return booking
}
