package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/service"
	"github.com/eventum-app/eventum/internal/service/domain"
)

type EventHandler struct {
	app *app.App
}

func NewEventHandler(app *app.App) *EventHandler {
	return &EventHandler{
		app: app,
	}
}

func (h *EventHandler) HandleCreate(ctx *gin.Context) {
	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondError(ctx, err)
		return
	}
	event, err := h.app.EventService.Create(req.HostID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, toEventResponse(event))
}

func (h *EventHandler) HandleUpdate(ctx *gin.Context) {
	var req EventRequest
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
	in, err := req.toInput()
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := h.app.EventService.Update(req.HostID, event.ID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, toEventResponse(updated))
}

func (h *EventHandler) HandleDeactivate(ctx *gin.Context) {
	var req HostRequest
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
	if err := h.app.EventService.Deactivate(req.HostID, event.ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Event deactivated",
	})
}

func (h *EventHandler) HandleDetail(ctx *gin.Context) {
	detail, err := h.app.EventService.Detail(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	images := make([]gin.H, 0, len(detail.Images))
	for _, img := range detail.Images {
		images = append(images, gin.H{
			"url":        img.URL,
			"is_primary": img.IsPrimary,
			"position":   img.Position,
		})
	}
	ctx.JSON(200, gin.H{
		"event":        toEventResponse(detail.Event),
		"images":       images,
		"avg_rating":   detail.AvgRating,
		"review_count": detail.ReviewCount,
		"reviews":      toReviewResponses(detail.Reviews),
		"similar":      toEventResponses(detail.Similar),
		"sold_out":     detail.SoldOut,
	})
}

func (h *EventHandler) HandleAddImage(ctx *gin.Context) {
	var req ImageRequest
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
	image, err := h.app.EventService.AddImage(req.HostID, event.ID, req.URL, req.IsPrimary, req.Position)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"image_id": image.ID,
	})
}

func (h *EventHandler) HandleAvailability(ctx *gin.Context) {
	event, err := h.app.EventService.BySlug(ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"event_id":          event.ID,
		"capacity":          event.Capacity,
		"available_tickets": event.AvailableTickets,
		"sold_out":          event.IsSoldOut(),
	})
}

func (h *EventHandler) HandleFeatured(ctx *gin.Context) {
	events, err := h.app.CatalogService.FeaturedEvents(time.Now(), 8)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"events": toEventResponses(events),
	})
}

func (h *EventHandler) HandlePopular(ctx *gin.Context) {
	events, err := h.app.CatalogService.PopularEvents(time.Now(), 8)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"events": toEventResponses(events),
	})
}

type HostRequest struct {
	HostID uint `json:"host_id"`
}

type ImageRequest struct {
	HostID    uint   `json:"host_id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	Position  int    `json:"position"`
}

type EventRequest struct {
	HostID             uint   `json:"host_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	CityID             *uint  `json:"city_id"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	PriceCents         int64  `json:"price_cents"`
	Capacity           int    `json:"capacity"`
	Included           string `json:"included"`
	ThingsToKnow       string `json:"things_to_know"`
	CancellationPolicy string `json:"cancellation_policy"`
	AgeRestriction     string `json:"age_restriction"`
}

func (r EventRequest) toInput() (domain.EventInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return domain.EventInput{}, service.Invalid("start_date", "must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return domain.EventInput{}, service.Invalid("end_date", "must be YYYY-MM-DD")
	}
	return domain.EventInput{
		Title:              r.Title,
		Description:        r.Description,
		Category:           model.EventCategory(r.Category),
		CityID:             r.CityID,
		Location:           r.Location,
		StartDate:          start,
		EndDate:            end,
		PriceCents:         r.PriceCents,
		Capacity:           r.Capacity,
		Included:           r.Included,
		ThingsToKnow:       r.ThingsToKnow,
		CancellationPolicy: r.CancellationPolicy,
		AgeRestriction:     r.AgeRestriction,
	}, nil
}
