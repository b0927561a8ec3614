package domain

// NavItem is a single rendered navigation entry for a service.
type NavItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// MenuSection groups the menu entries of one category.
type MenuSection struct {
	Category string    `json:"category"`
	Items    []NavItem `json:"items"`
}

// FooterLink is a single footer entry for a service.
type FooterLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// FooterSection groups the footer links of one category.
type FooterSection struct {
	Category string       `json:"category"`
	Links    []FooterLink `json:"links"`
}

// FeaturedSlot holds the services shown for one featured category.
type FeaturedSlot struct {
	CategoryName string    `json:"categoryName"`
	Services     []NavItem `json:"services"`
}

// FeaturedPair is the hero section's pair of featured categories.
type FeaturedPair struct {
	Primary   FeaturedSlot `json:"primary"`
	Secondary FeaturedSlot `json:"secondary"`
}

type DataStatus string

const (
	DataStatusOK       DataStatus = "ok"
	DataStatusDegraded DataStatus = "degraded"
)

// NavigationData is the full site navigation payload served to the frontend.
// Status tells the consumer whether the projections were built from live
// platform data or are empty fallbacks after an upstream failure.
type NavigationData struct {
	Menu     []MenuSection   `json:"menu"`
	Footer   []FooterSection `json:"footer"`
	Featured FeaturedPair    `json:"featured"`
	Status   DataStatus      `json:"status"`
}

// ServicesPage is the grouped service listing payload.
type ServicesPage struct {
	Sections []MenuSection `json:"sections"`
	Status   DataStatus    `json:"status"`
}
