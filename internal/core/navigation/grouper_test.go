package navigation

import (
	"reflect"
	"testing"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
)

func bucketNames(buckets []Bucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names
}

func serviceTitles(b Bucket) []string {
	titles := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		titles = append(titles, s.Title)
	}
	return titles
}

func findBucket(t *testing.T, buckets []Bucket, name string) Bucket {
	t.Helper()
	for _, b := range buckets {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("Bucket %q not found in %v", name, bucketNames(buckets))
	return Bucket{}
}

func TestGroup_CategoryResolution(t *testing.T) {
	categories := []domain.Category{
		{ID: "c-1", Name: "Primary Care"},
		{ID: "c-2", Name: "Cardiology"},
	}

	tests := []struct {
		name       string
		service    domain.Service
		wantBucket string
	}{
		{
			name:       "categoryId lookup wins",
			service:    domain.Service{ID: "s-1", Title: "Checkups", CategoryID: "c-2", Category: &domain.CategoryRef{ID: "c-2", Name: "Dermatology"}},
			wantBucket: "Cardiology",
		},
		{
			name:       "unmatched categoryId falls back to embedded name",
			service:    domain.Service{ID: "s-2", Title: "Skin Exams", CategoryID: "c-99", Category: &domain.CategoryRef{ID: "c-99", Name: "Dermatology"}},
			wantBucket: "Dermatology",
		},
		{
			name:       "embedded name used when categoryId empty",
			service:    domain.Service{ID: "s-3", Title: "Nutrition", Category: &domain.CategoryRef{Name: "Wellness"}},
			wantBucket: "Wellness",
		},
		{
			name:       "no category information falls back to sentinel",
			service:    domain.Service{ID: "s-4", Title: "Mystery Service"},
			wantBucket: FallbackBucket,
		},
		{
			name:       "embedded ref without name falls back to sentinel",
			service:    domain.Service{ID: "s-5", Title: "Unnamed", CategoryID: "c-99", Category: &domain.CategoryRef{ID: "c-99"}},
			wantBucket: FallbackBucket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := Group([]domain.Service{tt.service}, categories)
			if len(buckets) != 1 {
				t.Fatalf("Expected 1 bucket, got %v", bucketNames(buckets))
			}
			if buckets[0].Name != tt.wantBucket {
				t.Errorf("Expected bucket %q, got %q", tt.wantBucket, buckets[0].Name)
			}
		})
	}
}

func TestGroup_FeaturedFirstThenAlphabetical(t *testing.T) {
	categories := []domain.Category{{ID: "c-1", Name: "Primary Care"}}
	services := []domain.Service{
		{ID: "s-1", Title: "Zebra Screening", CategoryID: "c-1"},
		{ID: "s-2", Title: "Mango Therapy", CategoryID: "c-1", Featured: true},
		{ID: "s-3", Title: "Apple Checkup", CategoryID: "c-1"},
		{ID: "s-4", Title: "Banana Consult", CategoryID: "c-1", Featured: true},
	}

	buckets := Group(services, categories)
	got := serviceTitles(findBucket(t, buckets, "Primary Care"))
	want := []string{"Banana Consult", "Mango Therapy", "Apple Checkup", "Zebra Screening"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}

func TestGroup_BucketOrdering(t *testing.T) {
	categories := []domain.Category{
		{ID: "c-1", Name: "Rehabilitation"},
		{ID: "c-2", Name: "Primary Care"},
		{ID: "c-3", Name: "Wellness Arts"},
		{ID: "c-4", Name: "Acupuncture"},
	}
	services := []domain.Service{
		{ID: "s-1", Title: "Physio", CategoryID: "c-1"},
		{ID: "s-2", Title: "Checkups", CategoryID: "c-2"},
		{ID: "s-3", Title: "Yoga", CategoryID: "c-3"},
		{ID: "s-4", Title: "Needles", CategoryID: "c-4"},
		{ID: "s-5", Title: "Mystery"},
	}

	buckets := Group(services, categories)
	got := bucketNames(buckets)
	// Preferred categories first in fixed order, unknown ones
	// alphabetically after, fallback always last.
	want := []string{"Primary Care", "Rehabilitation", "Acupuncture", "Wellness Arts", FallbackBucket}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected bucket order %v, got %v", want, got)
	}
}

func TestGroup_DropsEmptyCategories(t *testing.T) {
	categories := []domain.Category{
		{ID: "c-1", Name: "Primary Care"},
		{ID: "c-2", Name: "Cardiology"},
	}
	services := []domain.Service{
		{ID: "s-1", Title: "Checkups", CategoryID: "c-1"},
	}

	buckets := Group(services, categories)
	if len(buckets) != 1 || buckets[0].Name != "Primary Care" {
		t.Errorf("Expected only Primary Care, got %v", bucketNames(buckets))
	}
}

func TestGroup_EveryServiceInExactlyOneBucket(t *testing.T) {
	categories := []domain.Category{
		{ID: "c-1", Name: "Primary Care"},
		{ID: "c-2", Name: "Cardiology"},
	}
	services := []domain.Service{
		{ID: "s-1", Title: "A", CategoryID: "c-1"},
		{ID: "s-2", Title: "B", CategoryID: "c-2"},
		{ID: "s-3", Title: "C", CategoryID: "c-404", Category: &domain.CategoryRef{Name: "Dermatology"}},
		{ID: "s-4", Title: "D"},
		{ID: "s-5", Title: "E", CategoryID: "c-1", Featured: true},
	}

	buckets := Group(services, categories)

	seen := map[string]int{}
	total := 0
	for _, b := range buckets {
		for _, s := range b.Services {
			seen[s.ID]++
			total++
		}
	}
	if total != len(services) {
		t.Errorf("Expected %d placed services, got %d", len(services), total)
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("Service %s appears %d times", id, n)
		}
	}
}

func TestGroup_DeterministicAndNonMutating(t *testing.T) {
	categories := []domain.Category{
		{ID: "c-1", Name: "Primary Care"},
		{ID: "c-2", Name: "Cardiology"},
	}
	services := []domain.Service{
		{ID: "s-1", Title: "Zeta", CategoryID: "c-2"},
		{ID: "s-2", Title: "Alpha", CategoryID: "c-2", Featured: true},
		{ID: "s-3", Title: "Beta", CategoryID: "c-1"},
		{ID: "s-4", Title: "Orphan"},
	}

	servicesCopy := make([]domain.Service, len(services))
	copy(servicesCopy, services)
	categoriesCopy := make([]domain.Category, len(categories))
	copy(categoriesCopy, categories)

	first := Group(services, categories)
	second := Group(services, categories)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Grouping is not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
	if !reflect.DeepEqual(services, servicesCopy) {
		t.Errorf("Input services mutated: %v", services)
	}
	if !reflect.DeepEqual(categories, categoriesCopy) {
		t.Errorf("Input categories mutated: %v", categories)
	}
}

func TestGroup_EmptyInputs(t *testing.T) {
	if buckets := Group(nil, nil); len(buckets) != 0 {
		t.Errorf("Expected no buckets, got %v", bucketNames(buckets))
	}

	categories := []domain.Category{{ID: "c-1", Name: "Primary Care"}}
	if buckets := Group(nil, categories); len(buckets) != 0 {
		t.Errorf("Expected no buckets for empty services, got %v", bucketNames(buckets))
	}
}
