package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

type SearchHandler struct {
	app *app.App
}

func NewSearchHandler(app *app.App) *SearchHandler {
	return &SearchHandler{
		app: app,
	}
}

func (h *SearchHandler) HandleSearch(ctx *gin.Context) {
	filter, err := parseFilter(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := h.app.SearchService.Search(ctx.Request.Context(), filter, time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"events":      toEventResponses(page.Events),
		"total":       page.Total,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
	})
}

func (h *SearchHandler) HandleAutocomplete(ctx *gin.Context) {
	suggestions, err := h.app.SearchService.Suggest(ctx.Query("q"), time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"events": suggestions.Events,
		"cities": suggestions.Cities,
	})
}

func parseFilter(ctx *gin.Context) (repository.EventFilter, error) {
	filter := repository.EventFilter{
		Query:    ctx.Query("q"),
		Location: ctx.Query("location"),
		CitySlug: ctx.Query("city"),
		Sort:     ctx.Query("sort"),
	}
	if cat := ctx.Query("category"); cat != "" && cat != "all" {
		category := model.EventCategory(cat)
		if !category.Valid() {
			return filter, service.Invalid("category", "unknown category")
		}
		filter.Category = category
	}
	if raw := ctx.Query("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, service.Invalid("date", "must be YYYY-MM-DD")
		}
		filter.Date = &date
	}
	if raw := ctx.Query("min_price"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cents < 0 {
			return filter, service.Invalid("min_price", "must be a non-negative integer of cents")
		}
		filter.MinPriceCents = &cents
	}
	if raw := ctx.Query("max_price"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cents < 0 {
			return filter, service.Invalid("max_price", "must be a non-negative integer of cents")
		}
		filter.MaxPriceCents = &cents
	}
	if raw := ctx.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, service.Invalid("page", "must be a positive integer")
		}
		filter.Page = page
	}
	return filter, nil
}
