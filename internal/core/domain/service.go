package domain

// Service represents a published clinic service offering
type Service struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	CategoryID    string       `json:"categoryId"`
	Category      *CategoryRef `json:"category,omitempty"`
	Featured      bool         `json:"featured"`
	DeliveryModes []string     `json:"deliveryModes,omitempty"`
}

// CategoryRef is the category summary embedded on a service record.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
