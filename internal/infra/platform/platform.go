// Package platform adapts the upstream platform REST API to domain types.
package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
	"github.com/axiom-software-co/sitenav/internal/infra/rest"
)

// Client fetches catalog content from the platform API and relays
// visitor form submissions to it.
type Client struct {
	rest *rest.Client
}

// NewClient creates a platform API client on top of the REST transport.
func NewClient(rc *rest.Client) *Client {
	return &Client{rest: rc}
}

// listResponse is the platform's collection envelope.
type listResponse[T any] struct {
	Data    []T      `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// itemResponse is the platform's single-item envelope.
type itemResponse[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// serviceRecord is the wire shape of a published service.
type serviceRecord struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"categoryId"`
	Category      *categoryRecord `json:"category"`
	Featured      bool            `json:"featured"`
	DeliveryModes []string        `json:"deliveryModes"`
}

// categoryRecord is the wire shape of a service category.
type categoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Featured1   bool   `json:"featured1"`
	Featured2   bool   `json:"featured2"`
}

// newsRecord is the wire shape of a news entry.
type newsRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"publishedAt"`
	Featured    bool   `json:"featured"`
}

// researchRecord is the wire shape of a research entry.
type researchRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Abstract    string `json:"abstract"`
	PublishedAt string `json:"publishedAt"`
	Featured    bool   `json:"featured"`
}

// receiptRecord is the acknowledgment returned for accepted submissions.
type receiptRecord struct {
	ID string `json:"id"`
}

func (r serviceRecord) toDomain() domain.Service {
	s := domain.Service{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		Featured:      r.Featured,
		DeliveryModes: r.DeliveryModes,
	}
	if r.Category != nil {
		s.Category = &domain.CategoryRef{ID: r.Category.ID, Name: r.Category.Name}
	}
	return s
}

func (r categoryRecord) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Featured1:   r.Featured1,
		Featured2:   r.Featured2,
	}
}

func (r newsRecord) toDomain() domain.NewsArticle {
	return domain.NewsArticle{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Summary:     r.Summary,
		PublishedAt: r.PublishedAt,
		Featured:    r.Featured,
	}
}

func (r researchRecord) toDomain() domain.ResearchArticle {
	return domain.ResearchArticle{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Abstract:    r.Abstract,
		PublishedAt: r.PublishedAt,
		Featured:    r.Featured,
	}
}

// ListServices fetches published services, optionally filtered by
// category slug.
func (c *Client) ListServices(ctx context.Context, pageSize int, category string) ([]domain.Service, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	if category != "" {
		q.Set("category", category)
	}

	env, err := rest.Do[listResponse[serviceRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/services",
		Query:  q,
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("list services: platform reported failure: %s", env.Message)
	}

	services := make([]domain.Service, 0, len(env.Data))
	for _, r := range env.Data {
		services = append(services, r.toDomain())
	}
	return services, nil
}

// ListCategories fetches the published service categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	env, err := rest.Do[listResponse[categoryRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/services/categories",
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("list categories: platform reported failure: %s", env.Message)
	}

	categories := make([]domain.Category, 0, len(env.Data))
	for _, r := range env.Data {
		categories = append(categories, r.toDomain())
	}
	return categories, nil
}

// ListNews fetches published news entries, newest first.
func (c *Client) ListNews(ctx context.Context, pageSize int) ([]domain.NewsArticle, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	env, err := rest.Do[listResponse[newsRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/news",
		Query:  q,
	})
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("list news: platform reported failure: %s", env.Message)
	}

	articles := make([]domain.NewsArticle, 0, len(env.Data))
	for _, r := range env.Data {
		articles = append(articles, r.toDomain())
	}
	return articles, nil
}

// ListResearch fetches published research entries, newest first.
func (c *Client) ListResearch(ctx context.Context, pageSize int) ([]domain.ResearchArticle, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	env, err := rest.Do[listResponse[researchRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/research",
		Query:  q,
	})
	if err != nil {
		return nil, fmt.Errorf("list research: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("list research: platform reported failure: %s", env.Message)
	}

	articles := make([]domain.ResearchArticle, 0, len(env.Data))
	for _, r := range env.Data {
		articles = append(articles, r.toDomain())
	}
	return articles, nil
}

// SubmitContact relays a contact form submission to the platform.
func (c *Client) SubmitContact(ctx context.Context, form domain.ContactRequest) error {
	env, err := rest.Do[itemResponse[receiptRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodPost,
		Path:   "/contacts",
		Body:   form,
	})
	if err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("submit contact: platform reported failure: %s", env.Message)
	}
	return nil
}

// SubscribeNewsletter relays a newsletter signup to the platform.
func (c *Client) SubscribeNewsletter(ctx context.Context, signup domain.NewsletterSignup) error {
	env, err := rest.Do[itemResponse[receiptRecord]](ctx, c.rest, rest.Request{
		Method: http.MethodPost,
		Path:   "/newsletter",
		Body:   signup,
	})
	if err != nil {
		return fmt.Errorf("subscribe newsletter: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("subscribe newsletter: platform reported failure: %s", env.Message)
	}
	return nil
}
