package news

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/models"
	"github.com/prajanews/cms-backend/internal/storage"
)

// ErrInvalid marks a validation failure on a write path. Handlers map
// it to a 400.
var ErrInvalid = errors.New("invalid input")

const maxDescriptionLength = 500

// Service owns the article read and write paths: discovery, slug
// fetches with their view-count side effect, creation and field-merge
// updates with slug assignment, and the dashboard aggregate.
type Service struct {
	store    storage.Store
	compiler *Compiler
	now      func() time.Time
}

func NewService(store storage.Store) *Service {
	return &Service{
		store:    store,
		compiler: NewCompiler(NewResolver(store)),
		now:      time.Now,
	}
}

type CreateNewsInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Image       string   `json:"image"`
	BannerImage string   `json:"bannerImage"`
	State       string   `json:"state"`
	District    string   `json:"district"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	IsTopStory  bool     `json:"isTopStory"`
	IsTrending  bool     `json:"isTrending"`
	IsBanner    bool     `json:"isBanner"`
}

// UpdateNewsInput merges field-by-field: nil keeps the stored value.
// State and District additionally treat an explicit empty string as
// "clear to national scope".
type UpdateNewsInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Image       *string   `json:"image"`
	BannerImage *string   `json:"bannerImage"`
	State       *string   `json:"state"`
	District    *string   `json:"district"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Status      *string   `json:"status"`
	IsTopStory  *bool     `json:"isTopStory"`
	IsTrending  *bool     `json:"isTrending"`
	IsBanner    *bool     `json:"isBanner"`
}

func (s *Service) Create(ctx context.Context, in CreateNewsInput, authorID uuid.UUID) (*models.News, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalid)
	}
	if in.Image == "" {
		return nil, fmt.Errorf("%w: image is required", ErrInvalid)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if len(in.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalid, maxDescriptionLength)
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	n := models.NewNews()
	n.Title = title
	n.Description = strings.TrimSpace(in.Description)
	n.Content = in.Content
	n.Image = in.Image
	n.BannerImage = in.BannerImage
	n.Tags = normalizeTags(in.Tags)
	n.Status = status
	n.IsTopStory = in.IsTopStory
	n.IsTrending = in.IsTrending
	n.IsBanner = in.IsBanner
	n.AuthorID = &authorID

	var err error
	if n.StateID, err = optionalID(in.State); err != nil {
		return nil, err
	}
	if n.DistrictID, err = optionalID(in.District); err != nil {
		return nil, err
	}
	if n.CategoryID, err = optionalID(in.Category); err != nil {
		return nil, err
	}

	if n.Slug, err = s.uniqueSlug(ctx, title); err != nil {
		return nil, err
	}

	if status == models.StatusPublished {
		t := s.now()
		n.PublishedAt = &t
	}

	if err := s.store.CreateNews(ctx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	return n, nil
}

// Update merges the provided fields over the stored article. Returns
// (nil, nil) when the article does not exist. The slug is regenerated
// only when the title actually changes; the publication timestamp is
// stamped the first time status reaches "published" and never again.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateNewsInput) (*models.News, error) {
	n, err := s.store.GetNews(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		if title != n.Title {
			n.Title = title
			if n.Slug, err = s.uniqueSlug(ctx, title); err != nil {
				return nil, err
			}
		}
	}
	if in.Description != nil {
		if len(*in.Description) > maxDescriptionLength {
			return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalid, maxDescriptionLength)
		}
		n.Description = strings.TrimSpace(*in.Description)
	}
	if in.Content != nil && *in.Content != "" {
		n.Content = *in.Content
	}
	if in.Image != nil && *in.Image != "" {
		n.Image = *in.Image
	}
	if in.BannerImage != nil {
		n.BannerImage = *in.BannerImage
	}

	if in.State != nil {
		if *in.State == "" {
			n.StateID = nil
		} else if n.StateID, err = optionalID(*in.State); err != nil {
			return nil, err
		}
	}
	if in.District != nil {
		if *in.District == "" {
			n.DistrictID = nil
		} else if n.DistrictID, err = optionalID(*in.District); err != nil {
			return nil, err
		}
	}
	if in.Category != nil && *in.Category != "" {
		if n.CategoryID, err = optionalID(*in.Category); err != nil {
			return nil, err
		}
	}

	if in.Tags != nil {
		n.Tags = normalizeTags(*in.Tags)
	}
	if in.Status != nil && *in.Status != "" {
		if !validStatus(*in.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, *in.Status)
		}
		n.Status = *in.Status
		if n.Status == models.StatusPublished && n.PublishedAt == nil {
			t := s.now()
			n.PublishedAt = &t
		}
	}
	if in.IsTopStory != nil {
		n.IsTopStory = *in.IsTopStory
	}
	if in.IsTrending != nil {
		n.IsTrending = *in.IsTrending
	}
	if in.IsBanner != nil {
		n.IsBanner = *in.IsBanner
	}

	n.UpdatedAt = s.now()

	if err := s.store.UpdateNews(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}

	return n, nil
}

// Delete removes an article. The bool reports whether it existed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.store.GetNews(ctx, id)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, nil
	}
	return true, s.store.DeleteNews(ctx, id)
}

// Discover runs the public listing: compile the filter, query once,
// cap at 100. An unresolved taxonomy filter yields an empty list.
func (s *Service) Discover(ctx context.Context, p DiscoveryParams) ([]*models.News, error) {
	filter, err := s.compiler.Compile(ctx, p)
	if errors.Is(err, ErrNoMatch) {
		return []*models.News{}, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListNews(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.News{}
	}
	return items, nil
}

// GetBySlug fetches one published article and fires the view-count
// increment off the request's critical path. A failed increment is
// logged and never surfaced.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	n, err := s.store.GetNewsBySlug(ctx, slug, true)
	if err != nil || n == nil {
		return n, err
	}

	go func(id uuid.UUID) {
		if err := s.store.IncrementNewsViews(context.Background(), id); err != nil {
			log.Printf("Failed to increment views for news %s: %v", id, err)
		}
	}(n.ID)

	n.Views++
	return n, nil
}

// GetByID is the editorial fetch: any status, no view-count side effect.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	return s.store.GetNews(ctx, id)
}

// AdminList is the CMS listing: optional status filter ("all" or empty
// matches every status), optional title/description search, newest
// created first.
func (s *Service) AdminList(ctx context.Context, status, search string) ([]*models.News, error) {
	filter := storage.NewsFilter{SortByCreated: true}
	if status != "" && status != "all" {
		filter.Status = status
	}
	filter.Search = search

	items, err := s.store.ListNews(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.News{}
	}
	return items, nil
}

// Stats gathers the dashboard aggregate as a snapshot at call time.
func (s *Service) Stats(ctx context.Context) (*storage.DashboardStats, error) {
	return s.store.GetDashboardStats(ctx)
}

// uniqueSlug derives a slug for the title and verifies it against the
// store, retrying with a finer-grained disambiguator on collision.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	candidate := Slugify(title, s.now())
	for attempt := 0; attempt < 5; attempt++ {
		exists, err := s.store.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = Slugify(title, s.now()) + "-" + strconv.FormatInt(s.now().UnixNano()%1_000_000, 10)
	}
	return "", fmt.Errorf("could not assign a unique slug for %q", title)
}

func validStatus(status string) bool {
	switch status {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return true
	}
	return false
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func optionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed identifier %q", ErrInvalid, raw)
	}
	return &id, nil
}
