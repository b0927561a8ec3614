// Package content serves the site's navigation projections and relays
// visitor form submissions to the platform API.
package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/axiom-software-co/sitenav/internal/content/metrics"
	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/core/navigation"
)

// PlatformAPI is the subset of the platform client used to build projections.
type PlatformAPI interface {
	ListServices(ctx context.Context, pageSize int, category string) ([]domain.Service, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListNews(ctx context.Context, pageSize int) ([]domain.NewsArticle, error)
	ListResearch(ctx context.Context, pageSize int) ([]domain.ResearchArticle, error)
}

// NavCache stores built projections with a freshness window. A stale
// entry is still returned so it can back a fallback when the platform
// is unreachable.
type NavCache interface {
	GetNavigation(ctx context.Context) (*domain.NavigationData, bool, error)
	SetNavigation(ctx context.Context, nav *domain.NavigationData) error
	GetServicesPage(ctx context.Context, category string) (*domain.ServicesPage, bool, error)
	SetServicesPage(ctx context.Context, category string, page *domain.ServicesPage) error
}

// Loader builds navigation projections from platform data. Lookups hit
// the cache first; on rebuild failure a stale cached copy is served, and
// with no copy at all the projections degrade to typed empty payloads.
type Loader struct {
	api      PlatformAPI
	cache    NavCache
	pageSize int
}

// NewLoader creates a projection loader. cache may be nil when no cache
// is configured.
func NewLoader(api PlatformAPI, cache NavCache, pageSize int) *Loader {
	return &Loader{api: api, cache: cache, pageSize: pageSize}
}

// Navigation returns the full navigation payload. It never fails: when
// the platform is unreachable it falls back to a stale cached copy, or
// to an empty degraded payload when none exists.
func (l *Loader) Navigation(ctx context.Context) domain.NavigationData {
	var stale *domain.NavigationData
	if l.cache != nil {
		cached, fresh, err := l.cache.GetNavigation(ctx)
		switch {
		case err != nil:
			slog.Warn("Navigation cache lookup failed", "error", err)
			metrics.CacheOps.WithLabelValues("error").Inc()
		case cached != nil && fresh:
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return *cached
		case cached != nil:
			metrics.CacheOps.WithLabelValues("stale").Inc()
			stale = cached
		default:
			metrics.CacheOps.WithLabelValues("miss").Inc()
		}
	}

	data, err := l.buildNavigation(ctx)
	if err != nil {
		if stale != nil {
			slog.Warn("Navigation rebuild failed, serving stale copy", "error", err)
			metrics.NavigationBuilds.WithLabelValues("stale").Inc()
			return *stale
		}
		slog.Error("Navigation rebuild failed, serving degraded payload", "error", err)
		metrics.NavigationBuilds.WithLabelValues("degraded").Inc()
		return emptyNavigation()
	}

	metrics.NavigationBuilds.WithLabelValues("ok").Inc()
	l.storeNavigation(ctx, data)
	return *data
}

// Refresh rebuilds the navigation payload from live platform data and
// stores it, bypassing any cached copy.
func (l *Loader) Refresh(ctx context.Context) (domain.NavigationData, error) {
	data, err := l.buildNavigation(ctx)
	if err != nil {
		return domain.NavigationData{}, err
	}
	metrics.NavigationBuilds.WithLabelValues("ok").Inc()
	l.storeNavigation(ctx, data)
	return *data, nil
}

// ServicesPage returns the grouped service listing, optionally filtered
// by category slug. Same fallback behavior as Navigation.
func (l *Loader) ServicesPage(ctx context.Context, category string) domain.ServicesPage {
	var stale *domain.ServicesPage
	if l.cache != nil {
		cached, fresh, err := l.cache.GetServicesPage(ctx, category)
		switch {
		case err != nil:
			slog.Warn("Services cache lookup failed", "category", category, "error", err)
			metrics.CacheOps.WithLabelValues("error").Inc()
		case cached != nil && fresh:
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return *cached
		case cached != nil:
			metrics.CacheOps.WithLabelValues("stale").Inc()
			stale = cached
		default:
			metrics.CacheOps.WithLabelValues("miss").Inc()
		}
	}

	page, err := l.buildServicesPage(ctx, category)
	if err != nil {
		if stale != nil {
			slog.Warn("Services rebuild failed, serving stale copy", "category", category, "error", err)
			metrics.NavigationBuilds.WithLabelValues("stale").Inc()
			return *stale
		}
		slog.Error("Services rebuild failed, serving degraded payload", "category", category, "error", err)
		metrics.NavigationBuilds.WithLabelValues("degraded").Inc()
		return domain.ServicesPage{Sections: []domain.MenuSection{}, Status: domain.DataStatusDegraded}
	}

	metrics.NavigationBuilds.WithLabelValues("ok").Inc()
	if l.cache != nil {
		if err := l.cache.SetServicesPage(ctx, category, page); err != nil {
			slog.Warn("Failed to cache services page", "category", category, "error", err)
		}
	}
	return *page
}

// News returns published news entries. On failure it reports a degraded
// status with an empty list instead of an error.
func (l *Loader) News(ctx context.Context) ([]domain.NewsArticle, domain.DataStatus) {
	articles, err := l.api.ListNews(ctx, l.pageSize)
	if err != nil {
		slog.Warn("News fetch failed, serving empty list", "error", err)
		return []domain.NewsArticle{}, domain.DataStatusDegraded
	}
	if articles == nil {
		articles = []domain.NewsArticle{}
	}
	return articles, domain.DataStatusOK
}

// Research returns published research entries, with the same fail-soft
// contract as News.
func (l *Loader) Research(ctx context.Context) ([]domain.ResearchArticle, domain.DataStatus) {
	articles, err := l.api.ListResearch(ctx, l.pageSize)
	if err != nil {
		slog.Warn("Research fetch failed, serving empty list", "error", err)
		return []domain.ResearchArticle{}, domain.DataStatusDegraded
	}
	if articles == nil {
		articles = []domain.ResearchArticle{}
	}
	return articles, domain.DataStatusOK
}

func (l *Loader) buildNavigation(ctx context.Context) (*domain.NavigationData, error) {
	services, err := l.api.ListServices(ctx, l.pageSize, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	categories, err := l.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	buckets := navigation.Group(services, categories)
	return &domain.NavigationData{
		Menu:     navigation.MenuSections(buckets),
		Footer:   navigation.FooterSections(buckets),
		Featured: navigation.BuildFeaturedPair(buckets, categories),
		Status:   domain.DataStatusOK,
	}, nil
}

func (l *Loader) buildServicesPage(ctx context.Context, category string) (*domain.ServicesPage, error) {
	services, err := l.api.ListServices(ctx, l.pageSize, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	categories, err := l.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	buckets := navigation.Group(services, categories)
	return &domain.ServicesPage{
		Sections: navigation.MenuSections(buckets),
		Status:   domain.DataStatusOK,
	}, nil
}

func (l *Loader) storeNavigation(ctx context.Context, data *domain.NavigationData) {
	if l.cache == nil {
		return
	}
	if err := l.cache.SetNavigation(ctx, data); err != nil {
		slog.Warn("Failed to cache navigation data", "error", err)
	}
}

// emptyNavigation is the degraded payload served when no data source is
// available. Slices stay non-nil so consumers always see arrays.
func emptyNavigation() domain.NavigationData {
	return domain.NavigationData{
		Menu:     []domain.MenuSection{},
		Footer:   []domain.FooterSection{},
		Featured: navigation.BuildFeaturedPair(nil, nil),
		Status:   domain.DataStatusDegraded,
	}
}
