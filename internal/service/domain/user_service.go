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

type UserService struct {
	db        *gorm.DB
	users     repository.UserRepo
	events    repository.EventRepo
	bookings  repository.BookingRepo
	inventory *InventoryService
}

func NewUserService(db *gorm.DB, users repository.UserRepo, events repository.EventRepo, bookings repository.BookingRepo, inventory *InventoryService) *UserService {
	return &UserService{
		db:        db,
		users:     users,
		events:    events,
		bookings:  bookings,
		inventory: inventory,
	}
}

func (s *UserService) Register(username, email string, isHost bool) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, service.Invalid("username", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, service.Invalid("email", "must be a valid address")
	}
	if _, err := s.users.GetByUsername(username); err == nil {
		return nil, service.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		IsHost:   isHost,
		IsActive: true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Deactivate closes the account and unwinds its open commitments in one
// transaction: hosted events go inactive, and the user's upcoming pending or
// confirmed bookings are cancelled with their tickets released.
func (s *UserService) Deactivate(userID uint, now time.Time) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		bookings := s.bookings.WithTx(tx)
		inventory := s.inventory.WithTx(tx)

		if err := users.SetActive(user.ID, false); err != nil {
			return err
		}
		if user.IsHost {
			if err := s.events.WithTx(tx).DeactivateByHost(user.ID); err != nil {
				return err
			}
		}
		upcoming, err := bookings.ListUpcomingActiveByUser(user.ID, dateOnly(now))
		if err != nil {
			return err
		}
		for _, b := range upcoming {
			ok, err := bookings.MarkCancelled(b.ID)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := inventory.Release(b.EventID, b.Tickets); err != nil {
				return err
			}
		}
		return nil
	})
}
