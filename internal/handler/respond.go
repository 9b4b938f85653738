package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/service"
)

// respondError maps domain errors onto HTTP statuses. Business-rule refusals
// are 409s, gating failures 403s, bad input 400s; anything unrecognized is a
// 500 with a generic body.
func respondError(ctx *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request",
			"field":  ve.Field,
			"detail": ve.Message,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(404, gin.H{
			"error": "Not found",
		})
	case errors.Is(err, service.ErrInsufficientInventory),
		errors.Is(err, service.ErrEventInactive),
		errors.Is(err, service.ErrCancellationWindowClosed),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrNotConfirmed),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUsernameTaken):
		ctx.JSON(409, gin.H{
			"error":   "Conflict",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrNotEligible),
		errors.Is(err, service.ErrNotHost),
		errors.Is(err, service.ErrNotOwner):
		ctx.JSON(403, gin.H{
			"error":   "Forbidden",
			"message": err.Error(),
		})
	default:
		ctx.JSON(500, gin.H{
			"error":   "Internal server error",
			"message": "Something went wrong, please try again later",
		})
	}
}
