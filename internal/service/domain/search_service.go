package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventum-app/eventum/internal/cache"
	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
)

// SearchPage is one page of search results with paging metadata.
type SearchPage struct {
	Events     []model.Event `json:"events"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// Autocomplete bundles the suggestion sources: event titles and city names.
type Autocomplete struct {
	Events []string `json:"events"`
	Cities []string `json:"cities"`
}

type SearchService struct {
	search repository.EventSearchRepo
	cities repository.CityRepo
	cache  *cache.Cache
}

func NewSearchService(search repository.EventSearchRepo, cities repository.CityRepo, pageCache *cache.Cache) *SearchService {
	return &SearchService{
		search: search,
		cities: cities,
		cache:  pageCache,
	}
}

// Search runs the filter against upcoming active events. A filter with no
// criteria returns an empty page immediately; browsing lives on the catalog
// endpoints, not on a bare search.
func (s *SearchService) Search(ctx context.Context, filter repository.EventFilter, now time.Time) (*SearchPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 12
	}
	if !filter.HasCriteria() {
		return &SearchPage{
			Events:   []model.Event{},
			Page:     filter.Page,
			PageSize: filter.PageSize,
		}, nil
	}

	today := dateOnly(now)
	key := cache.SearchKey(canonicalFilter(filter, today))
	var page SearchPage
	if s.cache.GetJSON(ctx, key, &page) {
		return &page, nil
	}

	events, total, err := s.search.Search(filter, today)
	if err != nil {
		return nil, err
	}
	page = SearchPage{
		Events:     events,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
	}
	s.cache.SetJSON(ctx, key, &page)
	return &page, nil
}

// Suggest returns up to five event titles and three city names for a prefix
// of at least two characters.
func (s *SearchService) Suggest(prefix string, now time.Time) (*Autocomplete, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < 2 {
		return &Autocomplete{Events: []string{}, Cities: []string{}}, nil
	}
	titles, err := s.search.Autocomplete(prefix, dateOnly(now), 5)
	if err != nil {
		return nil, err
	}
	names, err := s.cities.NamesByPrefix(prefix, 3)
	if err != nil {
		return nil, err
	}
	return &Autocomplete{Events: titles, Cities: names}, nil
}

// canonicalFilter flattens the filter into a deterministic string for the
// cache key. The day is part of the key so pages expire at midnight even if
// a stale entry outlives its TTL.
func canonicalFilter(f repository.EventFilter, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "q=%s|loc=%s|cat=%s|city=%s|", strings.ToLower(f.Query), strings.ToLower(f.Location), f.Category, f.CitySlug)
	if f.Date != nil {
		fmt.Fprintf(&b, "date=%s|", f.Date.Format("2006-01-02"))
	}
	if f.MinPriceCents != nil {
		fmt.Fprintf(&b, "min=%d|", *f.MinPriceCents)
	}
	if f.MaxPriceCents != nil {
		fmt.Fprintf(&b, "max=%d|", *f.MaxPriceCents)
	}
	fmt.Fprintf(&b, "sort=%s|page=%d|size=%d|day=%s", f.Sort, f.Page, f.PageSize, today.Format("2006-01-02"))
	return b.String()
}
