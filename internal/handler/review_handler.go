package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
)

type ReviewHandler struct {
	app *app.App
}

func NewReviewHandler(app *app.App) *ReviewHandler {
	return &ReviewHandler{
		app: app,
	}
}

func (h *ReviewHandler) HandleAdd(ctx *gin.Context) {
	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	event, err := h.app.EventService.BySlug(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	review, err := h.app.ReviewService.Add(req.UserID, event.ID, req.Rating, req.Comment)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"review_id": review.ID,
		"rating":    review.Rating,
	})
}

func (h *ReviewHandler) HandleList(ctx *gin.Context) {
	event, err := h.app.EventService.BySlug(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	block, err := h.app.ReviewService.ForEvent(event.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"reviews":      toReviewResponses(block.Reviews),
		"avg_rating":   block.AvgRating,
		"review_count": block.ReviewCount,
	})
}

func (h *ReviewHandler) HandleToggleFavorite(ctx *gin.Context) {
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	event, err := h.app.EventService.BySlug(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	favorited, err := h.app.FavoriteService.Toggle(req.UserID, event.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"favorited": favorited,
	})
}

type ReviewRequest struct {
	UserID  uint   `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
