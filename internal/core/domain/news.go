package domain

// NewsArticle represents a published news or announcement entry
type NewsArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"publishedAt"`
	Featured    bool   `json:"featured"`
}
