// Package navigation builds the site's navigation projections from the
// service catalog published by the platform API.
//
// Services are distributed into category buckets, ordered for display,
// and projected into the shapes the frontend consumes: dropdown menu
// sections, footer link groups and the hero section's featured pair.
// Grouping is a pure transformation; inputs are never mutated and the
// same inputs always produce the same projections.
package navigation

import (
	"sort"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
)

// FallbackBucket collects services whose category cannot be resolved.
const FallbackBucket = "Other Services"

// Bucket holds the services displayed under one category name, ordered
// featured first, then alphabetically by title.
type Bucket struct {
	Name     string
	Services []domain.Service
}

// Group distributes services into category buckets. Category resolution
// tries the categoryId lookup first, then the category name embedded on
// the service record, then falls back to FallbackBucket. Buckets without
// services are dropped.
func Group(services []domain.Service, categories []domain.Category) []Bucket {
	nameByID := make(map[string]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}

	grouped := make(map[string][]domain.Service)
	for _, s := range services {
		name := bucketName(s, nameByID)
		grouped[name] = append(grouped[name], s)
	}

	buckets := make([]Bucket, 0, len(grouped))
	for name, svcs := range grouped {
		sortServices(svcs)
		buckets = append(buckets, Bucket{Name: name, Services: svcs})
	}
	sortBuckets(buckets)

	return buckets
}

func bucketName(s domain.Service, nameByID map[string]string) string {
	if s.CategoryID != "" {
		if name, ok := nameByID[s.CategoryID]; ok && name != "" {
			return name
		}
	}
	if s.Category != nil && s.Category.Name != "" {
		return s.Category.Name
	}
	return FallbackBucket
}

// sortServices orders a bucket in place: featured services first, then
// alphabetically by title. The slice is owned by the bucket, never by
// the caller.
func sortServices(svcs []domain.Service) {
	sort.SliceStable(svcs, func(i, j int) bool {
		if svcs[i].Featured != svcs[j].Featured {
			return svcs[i].Featured
		}
		return svcs[i].Title < svcs[j].Title
	})
}
