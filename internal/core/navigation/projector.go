package navigation

import "github.com/axiom-software-co/sitenav/internal/core/domain"

// Placeholder names rendered when the featured categories are not
// configured upstream.
const (
	PlaceholderPrimary   = "Featured Category 1"
	PlaceholderSecondary = "Featured Category 2"
)

// MenuSections projects buckets into dropdown menu sections.
func MenuSections(buckets []Bucket) []domain.MenuSection {
	sections := make([]domain.MenuSection, 0, len(buckets))
	for _, b := range buckets {
		items := make([]domain.NavItem, 0, len(b.Services))
		for _, s := range b.Services {
			items = append(items, navItem(s))
		}
		sections = append(sections, domain.MenuSection{Category: b.Name, Items: items})
	}
	return sections
}

// FooterSections projects buckets into footer link groups. Names carry
// the full service title, truncation belongs to the renderer.
func FooterSections(buckets []Bucket) []domain.FooterSection {
	sections := make([]domain.FooterSection, 0, len(buckets))
	for _, b := range buckets {
		links := make([]domain.FooterLink, 0, len(b.Services))
		for _, s := range b.Services {
			links = append(links, domain.FooterLink{Name: s.Title, Href: serviceURL(s)})
		}
		sections = append(sections, domain.FooterSection{Category: b.Name, Links: links})
	}
	return sections
}

// BuildFeaturedPair resolves the hero section's two featured categories
// from their flags; the first category carrying each flag wins. When
// either flag is missing both slots degrade to placeholders so the hero
// always renders a consistent pair.
func BuildFeaturedPair(buckets []Bucket, categories []domain.Category) domain.FeaturedPair {
	var primary, secondary *domain.Category
	for i := range categories {
		c := &categories[i]
		if primary == nil && c.Featured1 {
			primary = c
		}
		if secondary == nil && c.Featured2 {
			secondary = c
		}
	}

	if primary == nil || secondary == nil {
		return domain.FeaturedPair{
			Primary: domain.FeaturedSlot{
				CategoryName: PlaceholderPrimary,
				Services:     []domain.NavItem{},
			},
			Secondary: domain.FeaturedSlot{
				CategoryName: PlaceholderSecondary,
				Services:     []domain.NavItem{},
			},
		}
	}

	return domain.FeaturedPair{
		Primary:   featuredSlot(*primary, buckets),
		Secondary: featuredSlot(*secondary, buckets),
	}
}

// featuredSlot collects the nav items of the bucket matching the
// category. A flagged category without services yields an empty slot
// under its real name.
func featuredSlot(category domain.Category, buckets []Bucket) domain.FeaturedSlot {
	slot := domain.FeaturedSlot{
		CategoryName: category.Name,
		Services:     []domain.NavItem{},
	}
	for _, b := range buckets {
		if b.Name != category.Name {
			continue
		}
		for _, s := range b.Services {
			slot.Services = append(slot.Services, navItem(s))
		}
		break
	}
	return slot
}

func navItem(s domain.Service) domain.NavItem {
	return domain.NavItem{
		Title:       s.Title,
		URL:         serviceURL(s),
		Description: s.Description,
	}
}

// serviceURL builds the site route for a service detail page.
func serviceURL(s domain.Service) string {
	if s.Slug != "" {
		return "/services/" + s.Slug
	}
	return "/services/" + s.ID
}
