package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventum-app/eventum/internal/service"
)

func TestReviewRequiresQualifyingBooking(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Pottery Class", 4000, 10, 10)

	// no booking at all
	_, err := s.reviews.Add(user.ID, event.ID, 5, "great")
	assert.ErrorIs(t, err, service.ErrNotEligible)

	// a pending booking does not qualify
	booking, err := s.bookings.Create(user.ID, event.ID, 1, event.StartDate)
	require.NoError(t, err)
	_, err = s.reviews.Add(user.ID, event.ID, 5, "great")
	assert.ErrorIs(t, err, service.ErrNotEligible)

	// confirmed does
	_, err = s.bookings.ConfirmPayment(user.ID, booking.ID)
	require.NoError(t, err)
	review, err := s.reviews.Add(user.ID, event.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	// the review links back to the qualifying booking
	require.NotNil(t, review.BookingID)
	assert.Equal(t, booking.ID, *review.BookingID)
}

func TestReviewOncePerUserAndEvent(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Pottery Class", 4000, 10, 10)
	booking, err := s.bookings.Create(user.ID, event.ID, 1, event.StartDate)
	require.NoError(t, err)
	_, err = s.bookings.ConfirmPayment(user.ID, booking.ID)
	require.NoError(t, err)

	_, err = s.reviews.Add(user.ID, event.ID, 4, "good")
	require.NoError(t, err)
	_, err = s.reviews.Add(user.ID, event.ID, 2, "changed my mind")
	assert.ErrorIs(t, err, service.ErrDuplicateReview)
}

func TestReviewRatingBounds(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Pottery Class", 4000, 10, 10)

	_, err := s.reviews.Add(user.ID, event.ID, 0, "")
	assert.True(t, service.IsValidation(err))
	_, err = s.reviews.Add(user.ID, event.ID, 6, "")
	assert.True(t, service.IsValidation(err))
	_, err = s.reviews.Add(user.ID, 9999, 3, "")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestReviewSummary(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	event := s.event(t, host.ID, "Pottery Class", 4000, 10, 10)

	for i, rating := range []int{5, 3} {
		user := s.user(t, "reviewer"+string(rune('a'+i)))
		booking, err := s.bookings.Create(user.ID, event.ID, 1, event.StartDate)
		require.NoError(t, err)
		_, err = s.bookings.ConfirmPayment(user.ID, booking.ID)
		require.NoError(t, err)
		_, err = s.reviews.Add(user.ID, event.ID, rating, "")
		require.NoError(t, err)
	}

	block, err := s.reviews.ForEvent(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), block.ReviewCount)
	assert.InDelta(t, 4.0, block.AvgRating, 0.001)
	assert.Len(t, block.Reviews, 2)
}

func TestFavoriteToggle(t *testing.T) {
	s := newServices(t)
	host := s.host(t, "host")
	user := s.user(t, "alice")
	event := s.event(t, host.ID, "Pottery Class", 4000, 10, 10)

	favorited, err := s.favorites.Toggle(user.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	exists, err := s.favorites.IsFavorite(user.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	favorited, err = s.favorites.Toggle(user.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	list, err := s.favorites.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.favorites.Toggle(user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
