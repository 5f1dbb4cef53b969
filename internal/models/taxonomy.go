package models

import (
	"time"

	"github.com/google/uuid"
)

// Category types.
const (
	CategoryTypeNews    = "news"
	CategoryTypeGeneral = "general"
)

type State struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type District struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"stateId"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on reads, nil when the owning state was deleted.
	State *StateRef `json:"state,omitempty"`
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewState creates a state with generated UUID and timestamps
func NewState() *State {
	now := time.Now()
	return &State{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDistrict creates a district with generated UUID and timestamps
func NewDistrict() *District {
	now := time.Now()
	return &District{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCategory creates a category with generated UUID and timestamps
func NewCategory() *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Type:      CategoryTypeNews,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
