package domain

// Category represents a service category as published by the platform API
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Featured1   bool   `json:"featured1"`
	Featured2   bool   `json:"featured2"`
}
