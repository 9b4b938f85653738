package app

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventum-app/eventum/config"
	"github.com/eventum-app/eventum/internal/cache"
	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/mq"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service/domain"
	"github.com/eventum-app/eventum/internal/service/workflow"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.Cache
	Logger *zap.Logger
	MQConn *amqp.Connection

	UserRepo     repository.UserRepo
	EventRepo    repository.EventRepo
	BookingRepo  repository.BookingRepo
	CityRepo     repository.CityRepo
	ReviewRepo   repository.ReviewRepo
	FavoriteRepo repository.FavoriteRepo
	SearchRepo   repository.EventSearchRepo

	InventoryService *domain.InventoryService
	BookingService   *domain.BookingService
	EventService     *domain.EventService
	CatalogService   *domain.CatalogService
	ReviewService    *domain.ReviewService
	FavoriteService  *domain.FavoriteService
	SearchService    *domain.SearchService
	UserService      *domain.UserService

	BookingWorkflow      *workflow.BookingWorkflow
	NotificationWorkflow *workflow.NotificationWorkflow
}

func New(config *config.Config, db *gorm.DB, redisClient *redis.Client, mqConn *amqp.Connection, logger *zap.Logger) *App {
	pageCache := cache.New(redisClient, logger)

	userRepo := repository.NewUserRepoGorm(db)
	eventRepo := repository.NewEventRepoGorm(db)
	bookingRepo := repository.NewBookingRepoGorm(db)
	cityRepo := repository.NewCityRepoGorm(db)
	reviewRepo := repository.NewReviewRepoGorm(db)
	favoriteRepo := repository.NewFavoriteRepoGorm(db)
	searchRepo := repository.NewEventSearchGorm(db)

	inventoryService := domain.NewInventoryService(eventRepo, bookingRepo)
	bookingService := domain.NewBookingService(db, bookingRepo, eventRepo, inventoryService)
	eventService := domain.NewEventService(db, eventRepo, reviewRepo, userRepo, bookingRepo)
	catalogService := domain.NewCatalogService(cityRepo, searchRepo)
	reviewService := domain.NewReviewService(reviewRepo, bookingRepo, eventRepo)
	favoriteService := domain.NewFavoriteService(favoriteRepo, eventRepo)
	searchService := domain.NewSearchService(searchRepo, cityRepo, pageCache)
	userService := domain.NewUserService(db, userRepo, eventRepo, bookingRepo, inventoryService)

	bookingWorkflow := workflow.NewBookingWorkflow(bookingService, mqConn, logger)
	notificationWorkflow := workflow.NewNotificationWorkflow(logger)

	return &App{
		Config: config,

		DB:     db,
		Cache:  pageCache,
		Logger: logger,
		MQConn: mqConn,

		UserRepo:     userRepo,
		EventRepo:    eventRepo,
		BookingRepo:  bookingRepo,
		CityRepo:     cityRepo,
		ReviewRepo:   reviewRepo,
		FavoriteRepo: favoriteRepo,
		SearchRepo:   searchRepo,

		InventoryService: inventoryService,
		BookingService:   bookingService,
		EventService:     eventService,
		CatalogService:   catalogService,
		ReviewService:    reviewService,
		FavoriteService:  favoriteService,
		SearchService:    searchService,
		UserService:      userService,

		BookingWorkflow:      bookingWorkflow,
		NotificationWorkflow: notificationWorkflow,
	}
}

func (app *App) Init() error {
	if err := app.DB.AutoMigrate(
		&model.User{},
		&model.City{},
		&model.Event{},
		&model.EventImage{},
		&model.Booking{},
		&model.Review{},
		&model.Favorite{},
	); err != nil {
		return err
	}

	if app.MQConn != nil {
		if err := mq.InitQueues(app.MQConn); err != nil {
			return err
		}
		if err := app.BookingWorkflow.Start(app.MQConn); err != nil {
			return err
		}
		if err := app.NotificationWorkflow.Start(app.MQConn); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) Close() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
