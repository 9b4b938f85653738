package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

type FavoriteService struct {
	favorites repository.FavoriteRepo
	events    repository.EventRepo
}

func NewFavoriteService(favorites repository.FavoriteRepo, events repository.EventRepo) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		events:    events,
	}
}

// Toggle flips the favorite state and reports whether the event is a
// favorite afterwards.
func (s *FavoriteService) Toggle(userID, eventID uint) (bool, error) {
	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, service.ErrNotFound
		}
		return false, err
	}
	removed, err := s.favorites.Delete(userID, eventID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	err = s.favorites.Create(&model.Favorite{
		UserID:  userID,
		EventID: eventID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) IsFavorite(userID, eventID uint) (bool, error) {
	return s.favorites.Exists(userID, eventID)
}

func (s *FavoriteService) ListByUser(userID uint) ([]model.Favorite, error) {
	return s.favorites.ListByUser(userID)
}
