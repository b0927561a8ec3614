package domain

// ResearchArticle represents a published research or study summary entry
type ResearchArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Abstract    string `json:"abstract"`
	PublishedAt string `json:"publishedAt"`
	Featured    bool   `json:"featured"`
}
