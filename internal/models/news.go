package models

import (
	"time"

	"github.com/google/uuid"
)

// Article lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// News is a single article. Taxonomy fields hold identifiers only; the
// display projections (State, District, Category, Author) are filled in
// by the store's read-side join and may be nil when a reference is unset
// or dangles after a taxonomy delete.
type News struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content"`
	Image       string     `json:"image"`
	BannerImage string     `json:"bannerImage,omitempty"`
	StateID     *uuid.UUID `json:"stateId,omitempty"`
	DistrictID  *uuid.UUID `json:"districtId,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status"`
	IsTopStory  bool       `json:"isTopStory"`
	IsTrending  bool       `json:"isTrending"`
	IsBanner    bool       `json:"isBanner"`
	Views       int64      `json:"views"`
	AuthorID    *uuid.UUID `json:"authorId,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	State    *StateRef    `json:"state,omitempty"`
	District *DistrictRef `json:"district,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
	Author   *AuthorRef   `json:"author,omitempty"`
}

// StateRef is the display projection of a State on a populated article.
type StateRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

type DistrictRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewNews creates a news article with generated UUID and timestamps
func NewNews() *News {
	now := time.Now()
	return &News{
		ID:        uuid.New(),
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
